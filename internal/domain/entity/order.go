package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden. Solo OrderStatusPaid cuenta para KPIs.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// Order orden de venta de una empresa.
type Order struct {
	ID        string
	CompanyID string
	Status    string
	OrderDate time.Time
}

// OrderItem línea de una orden. COGS y NetProfit se guardan al momento de la venta.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	Price     decimal.Decimal // precio unitario de la línea
	COGS      decimal.Decimal
	NetProfit decimal.Decimal
}
