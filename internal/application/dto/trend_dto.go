package dto

import (
	"bytes"
	"encoding/json"
)

// TrendRowDTO fila {"period": ..., <métrica>: valor, ...} con las claves en el orden pedido.
type TrendRowDTO struct {
	Period string
	Keys   []string
	Values map[string]any
}

// MarshalJSON escribe period primero y luego las métricas en el orden de Keys.
func (r TrendRowDTO) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"period":`)
	p, err := json.Marshal(r.Period)
	if err != nil {
		return nil, err
	}
	buf.Write(p)
	for _, k := range r.Keys {
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.Values[k])
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SalesTrendsDTO respuesta de las dos variantes de tendencia mensual.
type SalesTrendsDTO struct {
	Data         []TrendRowDTO `json:"data"`
	MetricsOrder []string      `json:"metrics_order"`
}

// TrendMetricOptionDTO entrada del catálogo del modal de tendencias.
type TrendMetricOptionDTO struct {
	Name     string `json:"name"`
	Key      string `json:"key"`
	Selected bool   `json:"selected"`
}

// TrendModalDTO datos del modal de tendencias históricas.
type TrendModalDTO struct {
	CurrentMetrics []string               `json:"current_metrics"`
	Options        []TrendMetricOptionDTO `json:"options"`
}

// ProfitTrendDTO arreglos paralelos del rollup mensual.
type ProfitTrendDTO struct {
	Labels  []string  `json:"labels"`
	Profit  []float64 `json:"profit"`
	Revenue []float64 `json:"revenue"`
	COGS    []float64 `json:"cogs"`
}
