package dto

// KPISnapshotDTO respuesta de GET /api/insights/kpis.
// Los montos viajan como float64; el cálculo interno es decimal.
type KPISnapshotDTO struct {
	TotalSales                 float64 `json:"total_sales"`
	TotalProfit                float64 `json:"total_profit"`
	TotalOrders                int64   `json:"total_orders"`
	GrossProfitMargin          float64 `json:"gross_profit_margin"`
	NumItemsSellingWell        int64   `json:"num_items_selling_well"`
	TotalInventoryValue        float64 `json:"total_inventory_value"`
	ItemsNeedingAttentionCount int64   `json:"items_needing_attention_count"`
}
