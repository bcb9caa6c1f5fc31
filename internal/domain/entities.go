package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind names an entity the normalizer knows how to produce.
type Kind string

const (
	KindPayroll            Kind = "payroll"
	KindPayrollTransaction Kind = "payroll_transaction"
	KindPurchase           Kind = "purchase"
	KindFarmer             Kind = "farmer"
	KindTransaction        Kind = "transaction"
	KindWalletSnapshot     Kind = "wallet_snapshot"
	KindLoan               Kind = "loan"
	KindSession            Kind = "session"
	KindActivity           Kind = "activity"
)

// Payroll is one payroll run.
type Payroll struct {
	ID           string          `json:"id"`
	PeriodLabel  string          `json:"periodLabel"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Status       Status          `json:"status"`
	StaffCount   int             `json:"staffCount"`
	TotalGross   decimal.Decimal `json:"totalGross"`
	TotalNet     decimal.Decimal `json:"totalNet"`
	TotalTax     decimal.Decimal `json:"totalTax"`
	TotalPension decimal.Decimal `json:"totalPension"`
	ProcessedAt  time.Time       `json:"processedAt"`
	CreatedAt    time.Time       `json:"createdAt"`

	// Period mirrors PeriodLabel for older screens.
	Period string `json:"period"`
}

// PayrollTransaction is a single staff payment inside a payroll run.
type PayrollTransaction struct {
	ID              string          `json:"id"`
	PayrollID       string          `json:"payrollId"`
	StaffID         string          `json:"staffId"`
	StaffName       string          `json:"staffName"`
	StaffEmail      string          `json:"staffEmail"`
	GrossSalary     decimal.Decimal `json:"grossSalary"`
	NetSalary       decimal.Decimal `json:"netSalary"`
	PensionEmployee decimal.Decimal `json:"pensionEmployee"`
	PensionEmployer decimal.Decimal `json:"pensionEmployer"`
	TaxDeduction    decimal.Decimal `json:"taxDeduction"`
	PeriodLabel     string          `json:"payrollPeriodLabel"`
	Status          Status          `json:"status"`
	Reference       string          `json:"reference"`
	CreatedAt       time.Time       `json:"createdAt"`

	// Legacy aliases.
	StaffFullName string `json:"staffFullName"`
	PaymentStatus Status `json:"paymentStatus"`
}

// Transaction projects the payroll line onto the canonical transaction.
func (p PayrollTransaction) Transaction() Transaction {
	return Transaction{
		ID:               p.ID,
		Category:         CategoryPayroll,
		CounterpartyID:   p.StaffID,
		CounterpartyName: p.StaffName,
		CounterpartyKind: CounterpartyStaff,
		AmountMajor:      p.NetSalary,
		Status:           p.Status,
		Reference:        p.Reference,
		Description:      "Salary payment " + p.PeriodLabel,
		CreatedAt:        p.CreatedAt,
		Payload: PayrollPayload{
			GrossSalary:        p.GrossSalary,
			NetSalary:          p.NetSalary,
			PensionEmployee:    p.PensionEmployee,
			PensionEmployer:    p.PensionEmployer,
			TaxDeduction:       p.TaxDeduction,
			PayrollPeriodLabel: p.PeriodLabel,
		},
	}
}

// Purchase is a produce purchase from a farmer.
type Purchase struct {
	ID                string          `json:"id"`
	FarmerID          string          `json:"farmerId"`
	FarmerName        string          `json:"farmerName"`
	BuyerName         string          `json:"buyerName"`
	ProductName       string          `json:"productName"`
	WeightKg          decimal.Decimal `json:"weightKg"`
	PricePerKg        decimal.Decimal `json:"pricePerKg"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	LoanDeduction     decimal.Decimal `json:"loanDeduction"`
	SavingsDeduction  decimal.Decimal `json:"savingsDeduction"`
	NetAmountCredited decimal.Decimal `json:"netAmountCredited"`
	Status            Status          `json:"status"`
	Reference         string          `json:"reference"`
	CreatedAt         time.Time       `json:"createdAt"`

	// Amount mirrors TotalAmount.
	Amount decimal.Decimal `json:"amount"`
}

func (p Purchase) Transaction() Transaction {
	return Transaction{
		ID:               p.ID,
		Category:         CategoryPurchase,
		CounterpartyID:   p.FarmerID,
		CounterpartyName: p.FarmerName,
		CounterpartyKind: CounterpartyFarmer,
		AmountMajor:      p.TotalAmount,
		Status:           p.Status,
		Reference:        p.Reference,
		Description:      "Purchase of " + p.ProductName,
		CreatedAt:        p.CreatedAt,
		Payload: PurchasePayload{
			ProductName:       p.ProductName,
			WeightKg:          p.WeightKg,
			PricePerKg:        p.PricePerKg,
			LoanDeduction:     p.LoanDeduction,
			SavingsDeduction:  p.SavingsDeduction,
			NetAmountCredited: p.NetAmountCredited,
		},
	}
}

// Farmer is a farmer profile as shown on the dashboard.
type Farmer struct {
	ID            string          `json:"id"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	FullName      string          `json:"fullName"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	State         string          `json:"state"`
	LGA           string          `json:"lga"`
	Cooperative   string          `json:"cooperative"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`

	// Name mirrors FullName.
	Name string `json:"name"`
}

// WalletSnapshot is the wallet state embedded in a farmer's financial details.
type WalletSnapshot struct {
	WalletID       string          `json:"walletId"`
	WalletType     string          `json:"walletType"`
	Balance        decimal.Decimal `json:"balance"`
	SavingsBalance decimal.Decimal `json:"savingsBalance"`
	LoanBalance    decimal.Decimal `json:"loanBalance"`
	Currency       string          `json:"currency"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type Loan struct {
	ID                 string          `json:"id"`
	Reference          string          `json:"reference"`
	Amount             decimal.Decimal `json:"amount"`
	AmountRepaid       decimal.Decimal `json:"amountRepaid"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	InterestRate       decimal.Decimal `json:"interestRate"`
	Status             Status          `json:"status"`
	DueDate            time.Time       `json:"dueDate"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// Outstanding reports whether the loan still has money owed on it.
func (l Loan) Outstanding() bool {
	if l.Status == StatusCompleted || l.Status == StatusCancelled {
		return false
	}
	return l.OutstandingBalance.IsPositive()
}

// Session is one login session of the farmer's account.
type Session struct {
	ID        string    `json:"id"`
	Device    string    `json:"device"`
	IPAddress string    `json:"ipAddress"`
	Location  string    `json:"location"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
}

// Activity is one timeline entry.
type Activity struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	PerformedBy string    `json:"performedBy"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// FinancialDetail is everything a farmer statement is assembled from.
type FinancialDetail struct {
	Farmer       Farmer         `json:"farmer"`
	Wallet       WalletSnapshot `json:"wallet"`
	Loans        []Loan         `json:"loans"`
	Transactions []Transaction  `json:"transactions"`
	Purchases    []Purchase     `json:"purchases"`
	Sessions     []Session      `json:"sessions"`
	Activity     []Activity     `json:"activity"`
	SkippedCount int            `json:"skippedCount"`
}
