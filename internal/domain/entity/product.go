package entity

import "github.com/shopspring/decimal"

// Product producto del inventario de una empresa.
// Stock es la existencia actual; LowStockThreshold el umbral configurado por producto.
type Product struct {
	ID                string
	CompanyID         string
	Name              string
	Barcode           string
	Stock             int64
	Price             decimal.Decimal // precio de venta
	Cost              decimal.Decimal // costo actual
	LowStockThreshold int64
	CategoryID        string // vacío si no tiene
	SupplierID        string // vacío si no tiene
}
