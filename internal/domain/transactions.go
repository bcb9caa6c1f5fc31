package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups transactions the way operators browse them.
type Category string

const (
	CategoryWallet       Category = "wallet"
	CategoryLoan         Category = "loan"
	CategoryPurchase     Category = "purchase"
	CategoryPayroll      Category = "payroll"
	CategoryOrganization Category = "organization"

	// CategoryAll is a listing category only; rows never carry it.
	CategoryAll Category = "all"
)

// Categories lists the concrete transaction categories in display order.
func Categories() []Category {
	return []Category{CategoryWallet, CategoryLoan, CategoryPurchase, CategoryPayroll, CategoryOrganization}
}

// IsValid reports whether c is a concrete category or CategoryAll.
func (c Category) IsValid() bool {
	switch c {
	case CategoryWallet, CategoryLoan, CategoryPurchase, CategoryPayroll, CategoryOrganization, CategoryAll:
		return true
	default:
		return false
	}
}

// CounterpartyKind identifies who is on the other side of a transaction.
type CounterpartyKind string

const (
	CounterpartyFarmer       CounterpartyKind = "farmer"
	CounterpartyStaff        CounterpartyKind = "staff"
	CounterpartyBuyer        CounterpartyKind = "buyer"
	CounterpartyOrganization CounterpartyKind = "organization"
)

// Status is the canonical lifecycle state of a transaction.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Direction tells whether money entered or left a wallet.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Transaction is the canonical row every category listing is reduced to.
// All monetary values are in major currency units (naira).
type Transaction struct {
	ID                string              `json:"id"`
	Category          Category            `json:"category"`
	CounterpartyID    string              `json:"counterpartyId"`
	CounterpartyName  string              `json:"counterpartyName"`
	CounterpartyKind  CounterpartyKind    `json:"counterpartyKind"`
	AmountMajor       decimal.Decimal     `json:"amountMajor"`
	BalanceAfterMajor decimal.NullDecimal `json:"balanceAfterMajor"`
	Status            Status              `json:"status"`
	Reference         string              `json:"reference"`
	Description       string              `json:"description"`
	CreatedAt         time.Time           `json:"createdAt"`
	Payload           Payload             `json:"payload,omitempty"`
}

// Payload carries the category-specific part of a Transaction.
type Payload interface {
	PayloadCategory() Category
}

// PayrollPayload is attached to payroll transactions.
type PayrollPayload struct {
	GrossSalary        decimal.Decimal `json:"grossSalary"`
	NetSalary          decimal.Decimal `json:"netSalary"`
	PensionEmployee    decimal.Decimal `json:"pensionEmployee"`
	PensionEmployer    decimal.Decimal `json:"pensionEmployer"`
	TaxDeduction       decimal.Decimal `json:"taxDeduction"`
	PayrollPeriodLabel string          `json:"payrollPeriodLabel"`
}

func (PayrollPayload) PayloadCategory() Category { return CategoryPayroll }

// PurchasePayload is attached to produce purchase transactions.
type PurchasePayload struct {
	ProductName       string          `json:"productName"`
	WeightKg          decimal.Decimal `json:"weightKg"`
	PricePerKg        decimal.Decimal `json:"pricePerKg"`
	LoanDeduction     decimal.Decimal `json:"loanDeduction"`
	SavingsDeduction  decimal.Decimal `json:"savingsDeduction"`
	NetAmountCredited decimal.Decimal `json:"netAmountCredited"`
}

func (PurchasePayload) PayloadCategory() Category { return CategoryPurchase }

type WalletPayload struct {
	WalletType string    `json:"walletType"`
	Direction  Direction `json:"direction"`
}

func (WalletPayload) PayloadCategory() Category { return CategoryWallet }

type LoanPayload struct {
	LoanID             string              `json:"loanId"`
	OutstandingBalance decimal.NullDecimal `json:"outstandingBalance"`
}

func (LoanPayload) PayloadCategory() Category { return CategoryLoan }

type OrganizationPayload struct {
	OrganizationID   string `json:"organizationId"`
	OrganizationName string `json:"organizationName"`
}

func (OrganizationPayload) PayloadCategory() Category { return CategoryOrganization }

// Page is one normalized page of a category listing.
type Page struct {
	Category     Category      `json:"category"`
	Rows         []Transaction `json:"rows"`
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	PageSize     int           `json:"pageSize"`
	TotalPages   int           `json:"totalPages"`
	SkippedCount int           `json:"skippedCount"`
}
