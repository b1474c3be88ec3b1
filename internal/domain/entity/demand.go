// Package entity contains the core business objects of the project.
package entity

import "github.com/google/uuid"

// DemandGroup is the pending demand for one (product, unit) pair across all
// pending orders: total outstanding quantity, how many orders contribute, and
// which order numbers they are (distinct, for traceability).
type DemandGroup struct {
	ProductID     uuid.UUID `json:"product_id"`     // Product the demand is for.
	ProductName   string    `json:"product_name"`   // Product name as captured on the contributing lines.
	BrandName     string    `json:"brand_name"`     // Brand name as captured on the contributing lines.
	Unit          Unit      `json:"unit"`           // Unit of measure the quantity is counted in.
	TotalQuantity int64     `json:"total_quantity"` // Sum of quantities across all contributing lines.
	OrderCount    int64     `json:"order_count"`    // Number of distinct orders contributing to this group.
	OrderNumbers  []string  `json:"order_numbers"`  // Distinct order numbers contributing to this group.
}

// DemandTotals summarizes a demand aggregation run.
type DemandTotals struct {
	PcQuantity    int64 `json:"pc_quantity"`    // Summed quantity of the Pc bucket.
	OuterQuantity int64 `json:"outer_quantity"` // Summed quantity of the Outer bucket.
	CaseQuantity  int64 `json:"case_quantity"`  // Summed quantity of the Case bucket.
	TotalGroups   int64 `json:"total_groups"`   // Distinct (product, unit) groups in the result.
	TotalOrders   int64 `json:"total_orders"`   // Distinct orders contributing anywhere in the result.
}

// DemandSummary is the bucketed output of a pending-demand aggregation. Each
// bucket is sorted descending by total quantity with product ID as the
// deterministic tie-break.
type DemandSummary struct {
	Pc     []DemandGroup `json:"pc"`     // Groups counted in pieces.
	Outer  []DemandGroup `json:"outer"`  // Groups counted in outers.
	Case   []DemandGroup `json:"case"`   // Groups counted in cases.
	Totals DemandTotals  `json:"totals"` // Bucket sums and grand totals.
}

// DashboardStats is the landing-page summary of the whole order book.
type DashboardStats struct {
	TotalOrders   int64 `json:"total_orders"`   // Orders of any status.
	TotalItems    int64 `json:"total_items"`    // Distinct (product, brand) pairs seen across all order lines.
	PendingOrders int64 `json:"pending_orders"` // Orders still pending.
	TotalBits     int   `json:"total_bits"`     // Size of the configured bit territory list.
}
