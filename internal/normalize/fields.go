package normalize

import "agri-reconciliation/internal/domain"

const notAvailable = "N/A"

// Units says how a source reports money.
type Units int

const (
	MinorUnits Units = iota
	MajorUnits
)

// sourceUnits is fixed per backend source; it is never inferred from values.
var sourceUnits = map[domain.Kind]Units{
	domain.KindPayroll:            MinorUnits,
	domain.KindPayrollTransaction: MinorUnits,
	domain.KindTransaction:        MinorUnits,
	domain.KindWalletSnapshot:     MinorUnits,
	domain.KindLoan:               MinorUnits,
	domain.KindPurchase:           MajorUnits,
	domain.KindFarmer:             MajorUnits,
}

// UnitsOf returns the money units a source kind reports in.
func UnitsOf(kind domain.Kind) Units {
	return sourceUnits[kind]
}

var (
	idKeys        = keys{"id", "_id"}
	createdAtKeys = keys{"createdAt", "created_at"}
	referenceKeys = keys{"reference", "transactionReference", "transaction_reference", "ref"}
	categoryKeys  = keys{"category", "transactionCategory", "transaction_category"}
)

var payrollFields = struct {
	PeriodLabel, Month, Year, Status, StaffCount keys
	TotalGross, TotalNet, TotalTax, TotalPension keys
	ProcessedAt                                  keys
}{
	PeriodLabel:  keys{"periodLabel", "period_label", "period", "payPeriod", "pay_period"},
	Month:        keys{"month", "payrollMonth", "payroll_month"},
	Year:         keys{"year", "payrollYear", "payroll_year"},
	Status:       keys{"status", "payrollStatus", "payroll_status"},
	StaffCount:   keys{"staffCount", "staff_count", "totalStaff", "total_staff"},
	TotalGross:   keys{"totalGrossSalary", "total_gross_salary", "totalGross", "total_gross"},
	TotalNet:     keys{"totalNetSalary", "total_net_salary", "totalNet", "total_net"},
	TotalTax:     keys{"totalTaxDeduction", "total_tax_deduction", "totalTax", "total_tax"},
	TotalPension: keys{"totalPension", "total_pension", "totalPensionEmployee", "total_pension_employee"},
	ProcessedAt:  keys{"processedAt", "processed_at", "paidAt", "paid_at"},
}

var payrollTransactionFields = struct {
	PayrollID, StaffID, StaffName, StaffFirstName, StaffLastName, StaffEmail keys
	GrossSalary, NetSalary, PensionEmployee, PensionEmployer, TaxDeduction   keys
	PeriodLabel, Status, CreatedAt                                           keys
}{
	PayrollID:       keys{"payrollId", "payroll_id._id", "payroll_id.id", "payroll_id"},
	StaffID:         keys{"staffId", "staff_id._id", "staff_id.id", "staff_id"},
	StaffName:       keys{"staffName", "staff_name", "staff_id.fullName", "staff_id.full_name", "staff_id.name"},
	StaffFirstName:  keys{"staff_id.firstName", "staff_id.first_name", "firstName", "first_name"},
	StaffLastName:   keys{"staff_id.lastName", "staff_id.last_name", "lastName", "last_name"},
	StaffEmail:      keys{"staffEmail", "staff_email", "staff_id.email"},
	GrossSalary:     keys{"grossSalary", "gross_salary"},
	NetSalary:       keys{"netSalary", "net_salary"},
	PensionEmployee: keys{"pensionEmployee", "pension_employee", "employeePension", "employee_pension"},
	PensionEmployer: keys{"pensionEmployer", "pension_employer", "employerPension", "employer_pension"},
	TaxDeduction:    keys{"taxDeduction", "tax_deduction", "paye"},
	PeriodLabel:     keys{"payrollPeriodLabel", "payroll_period_label", "periodLabel", "period_label", "payroll_id.periodLabel", "payroll_id.period_label"},
	Status:          keys{"status", "paymentStatus", "payment_status"},
	CreatedAt:       keys{"createdAt", "created_at", "paidAt", "paid_at"},
}

var purchaseFields = struct {
	FarmerID, FarmerName, FarmerFirstName, FarmerLastName, BuyerName, ProductName keys
	WeightKg, PricePerKg, TotalAmount, LoanDeduction, SavingsDeduction            keys
	NetAmountCredited, Status, CreatedAt                                          keys
}{
	FarmerID:          keys{"farmerId", "farmer_id._id", "farmer_id.id", "farmer_id"},
	FarmerName:        keys{"farmerName", "farmer_name", "farmer_id.fullName", "farmer_id.full_name", "farmer_id.name"},
	FarmerFirstName:   keys{"farmer_id.firstName", "farmer_id.first_name"},
	FarmerLastName:    keys{"farmer_id.lastName", "farmer_id.last_name"},
	BuyerName:         keys{"buyerName", "buyer_name", "buyer_id.name", "buyer.name"},
	ProductName:       keys{"productName", "product_name", "product_id.name", "product.name", "commodity"},
	WeightKg:          keys{"weightKg", "weight_kg", "weight"},
	PricePerKg:        keys{"pricePerKg", "price_per_kg", "unitPrice", "unit_price"},
	TotalAmount:       keys{"totalAmount", "total_amount", "amount"},
	LoanDeduction:     keys{"loanDeduction", "loan_deduction"},
	SavingsDeduction:  keys{"savingsDeduction", "savings_deduction"},
	NetAmountCredited: keys{"netAmountCredited", "net_amount_credited", "netAmount", "net_amount"},
	Status:            keys{"status", "purchaseStatus", "purchase_status", "paymentStatus", "payment_status"},
	CreatedAt:         keys{"createdAt", "created_at", "purchaseDate", "purchase_date", "date"},
}

var farmerFields = struct {
	FirstName, LastName, FullName, Phone, Email, State, LGA keys
	Cooperative, WalletBalance, Status                      keys
}{
	FirstName:     keys{"firstName", "first_name", "user_id.first_name"},
	LastName:      keys{"lastName", "last_name", "user_id.last_name"},
	FullName:      keys{"fullName", "full_name", "farmerName", "farmer_name"},
	Phone:         keys{"phone", "phoneNumber", "phone_number", "user_id.phone"},
	Email:         keys{"email", "user_id.email"},
	State:         keys{"state", "address.state"},
	LGA:           keys{"lga", "address.lga"},
	Cooperative:   keys{"cooperativeName", "cooperative_name", "cooperative.name", "cooperative_id.name"},
	WalletBalance: keys{"walletBalance", "wallet_balance", "wallet.balance", "wallet_id.balance"},
	Status:        keys{"status", "accountStatus", "account_status"},
}

var transactionFields = struct {
	CounterpartyID, CounterpartyName, CounterpartyFirstName, CounterpartyLastName keys
	CounterpartyKind, Amount, BalanceAfter, Status, Description, CreatedAt        keys
	WalletType, Direction, LoanID, OutstandingBalance                             keys
	OrganizationID, OrganizationName                                              keys
}{
	CounterpartyID: keys{
		"counterpartyId", "counterparty_id",
		"farmerId", "farmer_id._id", "farmer_id",
		"userId", "user_id._id", "user_id",
		"organizationId", "organization_id._id", "organization_id",
	},
	CounterpartyName: keys{
		"counterpartyName", "counterparty_name",
		"farmerName", "farmer_name", "farmer_id.name",
		"userName", "user_name", "user_id.name",
		"organizationName", "organization_name", "organization_id.name",
	},
	CounterpartyFirstName: keys{"farmer_id.first_name", "farmer_id.firstName", "user_id.first_name", "user_id.firstName"},
	CounterpartyLastName:  keys{"farmer_id.last_name", "farmer_id.lastName", "user_id.last_name", "user_id.lastName"},
	CounterpartyKind:      keys{"counterpartyKind", "counterparty_kind", "userType", "user_type", "ownerType", "owner_type"},
	Amount:                keys{"amount"},
	BalanceAfter:          keys{"balanceAfter", "balance_after", "newBalance", "new_balance"},
	Status:                keys{"status", "transactionStatus", "transaction_status"},
	Description:           keys{"description", "narration", "note", "remarks"},
	CreatedAt:             keys{"createdAt", "created_at", "transactionDate", "transaction_date", "date"},
	WalletType:            keys{"walletType", "wallet_type", "wallet_id.type", "wallet.type"},
	Direction:             keys{"direction", "type", "transactionType", "transaction_type"},
	LoanID:                keys{"loanId", "loan_id._id", "loan_id.id", "loan_id"},
	OutstandingBalance:    keys{"outstandingBalance", "outstanding_balance", "loan_id.outstanding_balance", "loan_id.outstandingBalance"},
	OrganizationID:        keys{"organizationId", "organization_id._id", "organization_id"},
	OrganizationName:      keys{"organizationName", "organization_name", "organization_id.name"},
}

var walletFields = struct {
	WalletID, WalletType, Balance, SavingsBalance, LoanBalance, Currency, UpdatedAt keys
}{
	WalletID:       keys{"walletId", "wallet_id", "id", "_id"},
	WalletType:     keys{"walletType", "wallet_type", "type"},
	Balance:        keys{"balance", "availableBalance", "available_balance"},
	SavingsBalance: keys{"savingsBalance", "savings_balance"},
	LoanBalance:    keys{"loanBalance", "loan_balance"},
	Currency:       keys{"currency"},
	UpdatedAt:      keys{"updatedAt", "updated_at"},
}

var loanFields = struct {
	Reference, Amount, AmountRepaid, OutstandingBalance, InterestRate keys
	Status, DueDate                                                   keys
}{
	Reference:          keys{"reference", "loanReference", "loan_reference"},
	Amount:             keys{"amount", "principal", "loanAmount", "loan_amount"},
	AmountRepaid:       keys{"amountRepaid", "amount_repaid", "repaidAmount", "repaid_amount"},
	OutstandingBalance: keys{"outstandingBalance", "outstanding_balance", "balance"},
	InterestRate:       keys{"interestRate", "interest_rate"},
	Status:             keys{"status", "loanStatus", "loan_status"},
	DueDate:            keys{"dueDate", "due_date"},
}

var sessionFields = struct {
	Device, IPAddress, Location, StartedAt, EndedAt keys
}{
	Device:    keys{"device", "deviceName", "device_name", "userAgent", "user_agent"},
	IPAddress: keys{"ipAddress", "ip_address", "ip"},
	Location:  keys{"location", "city"},
	StartedAt: keys{"startedAt", "started_at", "loginAt", "login_at", "createdAt", "created_at"},
	EndedAt:   keys{"endedAt", "ended_at", "logoutAt", "logout_at"},
}

var activityFields = struct {
	Action, Description, PerformedBy, OccurredAt keys
}{
	Action:      keys{"action", "event", "type"},
	Description: keys{"description", "details", "message"},
	PerformedBy: keys{"performedBy", "performed_by.name", "performed_by", "actor.name", "actor"},
	OccurredAt:  keys{"timestamp", "occurredAt", "occurred_at", "createdAt", "created_at"},
}
