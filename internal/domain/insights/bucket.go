package insights

import (
	"fmt"
	"time"
)

// Granularity tamaño del bucket de calendario.
type Granularity int

const (
	Day Granularity = iota
	Week
	Month
)

func (g Granularity) String() string {
	switch g {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	default:
		return fmt.Sprintf("granularity(%d)", int(g))
	}
}

// Truncate devuelve el inicio del bucket que contiene t, en la zona de t.
// Las semanas empiezan el lunes (semana ISO).
func Truncate(t time.Time, g Granularity) time.Time {
	y, m, d := t.Date()
	switch g {
	case Week:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
}

// Next devuelve el inicio del bucket siguiente. start debe estar truncado.
func Next(start time.Time, g Granularity) time.Time {
	switch g {
	case Week:
		return start.AddDate(0, 0, 7)
	case Month:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// Buckets lista, en orden, el inicio de cada bucket desde el que contiene start
// hasta el que contiene end (ambos inclusive). Vacío si start es posterior a end.
func Buckets(start, end time.Time, g Granularity) []time.Time {
	if start.After(end) {
		return []time.Time{}
	}
	var out []time.Time
	for cur := Truncate(start, g); !cur.After(end); cur = Next(cur, g) {
		out = append(out, cur)
	}
	return out
}

// BucketKey clave estable para mapas dispersos (independiente del puntero de Location).
func BucketKey(start time.Time) string {
	return start.Format("2006-01-02")
}

// Label etiqueta de eje para el bucket: "Jan 02", "Wk 42 (Oct 13)" o "Oct 2026".
func Label(start time.Time, g Granularity) string {
	switch g {
	case Week:
		_, wk := start.ISOWeek()
		return fmt.Sprintf("Wk %d (%s)", wk, start.Format("Jan 02"))
	case Month:
		return MonthLabel(start)
	default:
		return start.Format("Jan 02")
	}
}

// MonthLabel etiqueta "Jan 2006" usada por gráficas y tablas de tendencia.
func MonthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}
