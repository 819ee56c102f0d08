package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Loan issuance
// ---------------------------------------------------------------------------

// IssueLoanRequest carries the terms of a new fixed-installment loan.
// Monetary fields travel as strings and are parsed into exact decimals at the
// boundary.
type IssueLoanRequest struct {
	ClientID         string
	Principal        decimal.Decimal
	FixedInstallment decimal.Decimal
	InstallmentCount int
	Frequency        string
	StartDate        time.Time
}

// InstallmentResponse is one installment in API responses.
type InstallmentResponse struct {
	ID      string          `json:"id"`
	Number  int             `json:"number"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
	Status  string          `json:"status"`
}

// LoanResponse is the full loan representation.
type LoanResponse struct {
	ID               string                `json:"id"`
	ClientID         string                `json:"client_id"`
	Principal        decimal.Decimal       `json:"principal"`
	FixedInstallment decimal.Decimal       `json:"fixed_installment"`
	InterestRatePct  decimal.Decimal       `json:"interest_rate_pct"`
	TotalInterest    decimal.Decimal       `json:"total_interest"`
	TotalPayable     decimal.Decimal       `json:"total_payable"`
	Frequency        string                `json:"frequency"`
	InstallmentCount int                   `json:"installment_count"`
	StartDate        time.Time             `json:"start_date"`
	CompletionDate   time.Time             `json:"completion_date"`
	Status           string                `json:"status"`
	Installments     []InstallmentResponse `json:"installments,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// LoanDetailResponse adds the owning client and payment history.
type LoanDetailResponse struct {
	Loan     LoanResponse      `json:"loan"`
	Client   ClientResponse    `json:"client"`
	Payments []PaymentResponse `json:"payments"`
}

// ---------------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------------

// RegisterPaymentRequest targets either a specific installment or a loan
// (resolved to the oldest payable installment). A nil Amount collects the
// installment's exact remaining balance.
type RegisterPaymentRequest struct {
	InstallmentID string
	LoanID        string
	Amount        *decimal.Decimal
	PaidAt        time.Time
	Note          string
}

// PaymentResponse is one payment record.
type PaymentResponse struct {
	ID            string          `json:"id"`
	InstallmentID string          `json:"installment_id"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
	PaidAt        time.Time       `json:"paid_at"`
}

// RegisterPaymentResponse returns the persisted payment plus the updated
// installment and loan state.
type RegisterPaymentResponse struct {
	Payment     PaymentResponse     `json:"payment"`
	Installment InstallmentResponse `json:"installment"`
	LoanID      string              `json:"loan_id"`
	LoanStatus  string              `json:"loan_status"`
}

// NextInstallmentResponse describes the oldest payable installment of a loan
// and the suggested exact amount to collect.
type NextInstallmentResponse struct {
	LoanID          string          `json:"loan_id"`
	InstallmentID   string          `json:"installment_id"`
	Number          int             `json:"number"`
	DueDate         time.Time       `json:"due_date"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"`
	Status          string          `json:"status"`
	SuggestedAmount decimal.Decimal `json:"suggested_amount"`
}

// LoanBalanceResponse summarises the collectible state of a loan.
type LoanBalanceResponse struct {
	LoanID              string          `json:"loan_id"`
	Status              string          `json:"status"`
	Outstanding         decimal.Decimal `json:"outstanding"`
	Overdue             decimal.Decimal `json:"overdue"`
	NextDueDate         *time.Time      `json:"next_due_date,omitempty"`
	PendingInstallments int             `json:"pending_installments"`
	OverdueInstallments int             `json:"overdue_installments"`
}

// ---------------------------------------------------------------------------
// Clients
// ---------------------------------------------------------------------------

// ClientRequest carries client attributes for create and update.
type ClientRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// ClientResponse is one client record.
type ClientResponse struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	NationalID string    `json:"national_id,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ---------------------------------------------------------------------------
// Shared paging envelope
// ---------------------------------------------------------------------------

// Page wraps a paginated listing.
type Page[T any] struct {
	Data     []T   `json:"data"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Pages    int64 `json:"pages"`
}

// NewPage builds a paging envelope, clamping Pages to at least one.
func NewPage[T any](data []T, total int64, page, pageSize int) Page[T] {
	pages := int64(1)
	if pageSize > 0 {
		pages = (total + int64(pageSize) - 1) / int64(pageSize)
		if pages < 1 {
			pages = 1
		}
	}
	return Page[T]{Data: data, Total: total, Page: page, PageSize: pageSize, Pages: pages}
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the signed access token.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
