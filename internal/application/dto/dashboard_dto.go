package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts     int                  `json:"total_products"`
	TotalClients      int                  `json:"total_clients"`
	LowStockItems     int                  `json:"low_stock_items"`
	ExpiringItems     int                  `json:"expiring_items"` // próximos 90 días
	ActiveUsers       int                  `json:"active_users"`
	TotalInvoices     int                  `json:"total_invoices"`
	PendingPayments   int                  `json:"pending_payments"`
	OutstandingAmount decimal.Decimal      `json:"outstanding_amount"`
	RecentAssignments []AssignmentResponse `json:"recent_assignments"`
	RecentActivities  []ActivityResponse   `json:"recent_activities"`
}
