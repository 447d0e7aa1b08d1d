package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopSellerDTO fila del widget de productos más vendidos.
type TopSellerDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Barcode      string          `json:"barcode"`
	Stock        int64           `json:"stock"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"` // con costo actual del producto
}

// TopSellersDTO ranking con la ventana consultada.
type TopSellersDTO struct {
	Items     []TopSellerDTO `json:"items"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
}

// AttentionItemDTO producto que requiere atención, ya etiquetado.
type AttentionItemDTO struct {
	ProductID         string          `json:"product_id"`
	Name              string          `json:"name"`
	Barcode           string          `json:"barcode"`
	Stock             int64           `json:"stock"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	Price             decimal.Decimal `json:"price"`
	Tag               string          `json:"tag"`
	Priority          int             `json:"priority"`
}

// AttentionListDTO lista filtrada por Query.
type AttentionListDTO struct {
	Query string             `json:"query"`
	Items []AttentionItemDTO `json:"items"`
}

// ValuationGroupDTO valor de un grupo del inventario.
type ValuationGroupDTO struct {
	Name        string          `json:"name"`
	RetailValue decimal.Decimal `json:"retail_value"`
	CostValue   decimal.Decimal `json:"cost_value"`
}

// InventoryValuationDTO desglose del inventario valorizado.
type InventoryValuationDTO struct {
	RetailValue decimal.Decimal     `json:"retail_value"`
	CostValue   decimal.Decimal     `json:"cost_value"`
	ByCategory  []ValuationGroupDTO `json:"by_category"`
	BySupplier  []ValuationGroupDTO `json:"by_supplier"`
}
