package insights

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Etiquetas de advertencia, en orden de prioridad.
const (
	TagLowAndNotSelling = "Running Low & Not Selling"
	TagLowStock         = "Running Low"
	TagNotSelling       = "Not Selling"
)

// AttentionProduct producto candidato con los dos predicados ya evaluados.
type AttentionProduct struct {
	ProductID         string
	Name              string
	Barcode           string
	Stock             int64
	LowStockThreshold int64
	Price             decimal.Decimal
	LowStock          bool // stock <= umbral
	NotSelling        bool // stock > 0 y sin venta pagada en la ventana
	Tag               string
	Priority          int
}

// ClassifyAttention etiqueta y prioridad (0 = más urgente). Sin predicados: "" y 3.
func ClassifyAttention(lowStock, notSelling bool) (string, int) {
	switch {
	case lowStock && notSelling:
		return TagLowAndNotSelling, 0
	case lowStock:
		return TagLowStock, 1
	case notSelling:
		return TagNotSelling, 2
	default:
		return "", 3
	}
}

// RankAttention descarta productos sin ningún predicado, asigna etiqueta y ordena por
// prioridad, luego stock ascendente, luego nombre.
func RankAttention(items []AttentionProduct) []AttentionProduct {
	out := make([]AttentionProduct, 0, len(items))
	for _, it := range items {
		if !it.LowStock && !it.NotSelling {
			continue
		}
		it.Tag, it.Priority = ClassifyAttention(it.LowStock, it.NotSelling)
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Stock != b.Stock {
			return a.Stock < b.Stock
		}
		return a.Name < b.Name
	})
	return out
}

// AttentionCount combina los conteos sin contar dos veces un producto que esté en ambos grupos.
// notSellingOnly ya debe excluir los productos con stock bajo.
func AttentionCount(lowStock, notSellingOnly int64) int64 {
	return lowStock + notSellingOnly
}
