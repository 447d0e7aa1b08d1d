package insights

import "time"

// Series serie densa lista para graficar.
type Series struct {
	Labels []string
	Data   []float64
}

// FillSeries convierte un mapa disperso (clave = BucketKey del inicio del bucket)
// en una serie densa: un punto por bucket, 0 donde no hay dato.
func FillSeries(sparse map[string]float64, buckets []time.Time, g Granularity) Series {
	s := Series{
		Labels: make([]string, 0, len(buckets)),
		Data:   make([]float64, 0, len(buckets)),
	}
	for _, b := range buckets {
		s.Labels = append(s.Labels, Label(b, g))
		s.Data = append(s.Data, sparse[BucketKey(b)])
	}
	return s
}
