package pipeline

import "salesdash/internal/models"

// KPI reduces a filtered table to its scalar summary. An empty table yields
// an all-zero snapshot, not an error.
func KPI(records []models.Record) models.KPISnapshot {
	orders := make(map[string]struct{}, len(records))
	products := make(map[string]struct{})

	var snap models.KPISnapshot
	for _, rec := range records {
		snap.TotalRevenue += rec.Revenue
		snap.TotalQuantity += rec.Quantity
		orders[rec.OrderID] = struct{}{}
		products[rec.Product] = struct{}{}
	}
	snap.TotalOrders = len(orders)
	snap.UniqueProducts = len(products)
	return snap
}
