package model

import "github.com/shopspring/decimal"

// DashboardKPIs are the aggregate figures shown on the back-office dashboard.
type DashboardKPIs struct {
	TotalClients        int64           `json:"total_clients"`
	ActiveLoans         int64           `json:"active_loans"`
	OverduePortfolio    decimal.Decimal `json:"overdue_portfolio"`
	CollectedThisMonth  decimal.Decimal `json:"collected_this_month"`
	PendingInstallments int64           `json:"pending_installments"`
}
