package normalize

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"agri-reconciliation/internal/domain"
	"agri-reconciliation/internal/money"
)

func missing(kind domain.Kind, field string, rec Record) error {
	return &domain.NormalizationError{Kind: kind, MissingField: field, RawSnippet: rec.Snippet()}
}

// amount resolves a monetary field and converts it to naira according to
// the source's fixed units.
func (r Record) amount(kind domain.Kind, k keys) (decimal.Decimal, bool) {
	d, ok := r.number(k)
	if !ok {
		return decimal.Zero, false
	}
	if UnitsOf(kind) == MinorUnits {
		return money.ToMajor(decimal.NewNullDecimal(d)), true
	}
	return d, true
}

func (r Record) amountOrZero(kind domain.Kind, k keys) decimal.Decimal {
	d, _ := r.amount(kind, k)
	return d
}

func (r Record) nullableAmount(kind domain.Kind, k keys) decimal.NullDecimal {
	d, ok := r.amount(kind, k)
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// Payroll normalizes a payroll run.
func Payroll(rec Record) (domain.Payroll, error) {
	const kind = domain.KindPayroll
	f := payrollFields

	id, ok := rec.id()
	if !ok {
		return domain.Payroll{}, missing(kind, "id", rec)
	}
	totalNet, ok := rec.amount(kind, f.TotalNet)
	if !ok {
		return domain.Payroll{}, missing(kind, "totalNetSalary", rec)
	}

	p := domain.Payroll{
		ID:           id,
		Status:       rec.status(f.Status),
		TotalGross:   rec.amountOrZero(kind, f.TotalGross),
		TotalNet:     totalNet,
		TotalTax:     rec.amountOrZero(kind, f.TotalTax),
		TotalPension: rec.amountOrZero(kind, f.TotalPension),
		ProcessedAt:  rec.timestamp(f.ProcessedAt),
		CreatedAt:    rec.timestamp(createdAtKeys),
	}
	p.Month, _ = rec.integer(f.Month)
	p.Year, _ = rec.integer(f.Year)
	p.StaffCount, _ = rec.integer(f.StaffCount)

	if label, ok := rec.str(f.PeriodLabel); ok {
		p.PeriodLabel = label
	} else {
		p.PeriodLabel = periodLabel(p.Month, p.Year)
	}
	p.Period = p.PeriodLabel
	return p, nil
}

func periodLabel(month, year int) string {
	if month < 1 || month > 12 || year <= 0 {
		return notAvailable
	}
	return fmt.Sprintf("%s %d", time.Month(month), year)
}

// PayrollTransaction normalizes one staff payment line.
func PayrollTransaction(rec Record) (domain.PayrollTransaction, error) {
	const kind = domain.KindPayrollTransaction
	f := payrollTransactionFields

	id, ok := rec.id()
	if !ok {
		return domain.PayrollTransaction{}, missing(kind, "id", rec)
	}
	net, ok := rec.amount(kind, f.NetSalary)
	if !ok {
		return domain.PayrollTransaction{}, missing(kind, "netSalary", rec)
	}

	pt := domain.PayrollTransaction{
		ID:              id,
		PayrollID:       rec.text(f.PayrollID, ""),
		StaffID:         rec.text(f.StaffID, ""),
		StaffName:       rec.name(f.StaffName, f.StaffFirstName, f.StaffLastName),
		StaffEmail:      rec.text(f.StaffEmail, ""),
		GrossSalary:     rec.amountOrZero(kind, f.GrossSalary),
		NetSalary:       net,
		PensionEmployee: rec.amountOrZero(kind, f.PensionEmployee),
		PensionEmployer: rec.amountOrZero(kind, f.PensionEmployer),
		TaxDeduction:    rec.amountOrZero(kind, f.TaxDeduction),
		PeriodLabel:     rec.text(f.PeriodLabel, notAvailable),
		Status:          rec.status(f.Status),
		Reference:       rec.text(referenceKeys, ""),
		CreatedAt:       rec.timestamp(f.CreatedAt),
	}
	pt.StaffFullName = pt.StaffName
	pt.PaymentStatus = pt.Status
	return pt, nil
}

// Purchase normalizes a produce purchase. Purchase amounts arrive in naira.
func Purchase(rec Record) (domain.Purchase, error) {
	const kind = domain.KindPurchase
	f := purchaseFields

	id, ok := rec.id()
	if !ok {
		return domain.Purchase{}, missing(kind, "id", rec)
	}
	total, ok := rec.amount(kind, f.TotalAmount)
	if !ok {
		return domain.Purchase{}, missing(kind, "totalAmount", rec)
	}

	p := domain.Purchase{
		ID:               id,
		FarmerID:         rec.text(f.FarmerID, ""),
		FarmerName:       rec.name(f.FarmerName, f.FarmerFirstName, f.FarmerLastName),
		BuyerName:        rec.text(f.BuyerName, notAvailable),
		ProductName:      rec.text(f.ProductName, notAvailable),
		TotalAmount:      total,
		LoanDeduction:    rec.amountOrZero(kind, f.LoanDeduction),
		SavingsDeduction: rec.amountOrZero(kind, f.SavingsDeduction),
		Status:           rec.status(f.Status),
		Reference:        rec.text(referenceKeys, ""),
		CreatedAt:        rec.timestamp(f.CreatedAt),
	}
	p.WeightKg, _ = rec.number(f.WeightKg)
	p.PricePerKg, _ = rec.amount(kind, f.PricePerKg)
	if net, ok := rec.amount(kind, f.NetAmountCredited); ok {
		p.NetAmountCredited = net
	} else {
		p.NetAmountCredited = total.Sub(p.LoanDeduction).Sub(p.SavingsDeduction)
	}
	p.Amount = p.TotalAmount
	return p, nil
}

// Farmer normalizes a farmer profile. Only the id is required.
func Farmer(rec Record) (domain.Farmer, error) {
	const kind = domain.KindFarmer
	f := farmerFields

	id, ok := rec.id()
	if !ok {
		return domain.Farmer{}, missing(kind, "id", rec)
	}

	fm := domain.Farmer{
		ID:            id,
		FirstName:     rec.text(f.FirstName, ""),
		LastName:      rec.text(f.LastName, ""),
		FullName:      rec.name(f.FullName, f.FirstName, f.LastName),
		Phone:         rec.text(f.Phone, ""),
		Email:         rec.text(f.Email, ""),
		State:         rec.text(f.State, ""),
		LGA:           rec.text(f.LGA, ""),
		Cooperative:   rec.text(f.Cooperative, ""),
		WalletBalance: rec.amountOrZero(kind, f.WalletBalance),
		Status:        rec.text(f.Status, ""),
		CreatedAt:     rec.timestamp(createdAtKeys),
	}
	fm.Name = fm.FullName
	return fm, nil
}

// Transaction normalizes a listing row. The row's own category decides how
// it is read; fallback is used when the row does not say. Payroll and
// purchase rows go through their dedicated normalizers so every category
// lands in the same canonical shape.
func Transaction(rec Record, fallback domain.Category) (domain.Transaction, error) {
	category := fallback
	if raw, ok := rec.str(categoryKeys); ok {
		if c, ok := parseCategory(raw); ok {
			category = c
		}
	}
	if category == domain.CategoryAll || !category.IsValid() {
		category = domain.CategoryWallet
	}

	switch category {
	case domain.CategoryPayroll:
		pt, err := PayrollTransaction(rec)
		if err != nil {
			return domain.Transaction{}, err
		}
		return pt.Transaction(), nil
	case domain.CategoryPurchase:
		p, err := Purchase(rec)
		if err != nil {
			return domain.Transaction{}, err
		}
		return p.Transaction(), nil
	}
	return ledgerTransaction(rec, category)
}

// ledgerTransaction handles wallet, loan and organization rows.
func ledgerTransaction(rec Record, category domain.Category) (domain.Transaction, error) {
	const kind = domain.KindTransaction
	f := transactionFields

	id, ok := rec.id()
	if !ok {
		return domain.Transaction{}, missing(kind, "id", rec)
	}
	amount, ok := rec.amount(kind, f.Amount)
	if !ok {
		return domain.Transaction{}, missing(kind, "amount", rec)
	}

	tx := domain.Transaction{
		ID:                id,
		Category:          category,
		CounterpartyID:    rec.text(f.CounterpartyID, ""),
		CounterpartyName:  rec.name(f.CounterpartyName, f.CounterpartyFirstName, f.CounterpartyLastName),
		CounterpartyKind:  defaultCounterparty(category),
		AmountMajor:       amount,
		BalanceAfterMajor: rec.nullableAmount(kind, f.BalanceAfter),
		Status:            rec.status(f.Status),
		Reference:         rec.text(referenceKeys, ""),
		Description:       rec.text(f.Description, ""),
		CreatedAt:         rec.timestamp(f.CreatedAt),
	}
	if raw, ok := rec.str(f.CounterpartyKind); ok {
		if k, ok := parseCounterpartyKind(raw); ok {
			tx.CounterpartyKind = k
		}
	}

	switch category {
	case domain.CategoryWallet:
		direction, _ := rec.str(f.Direction)
		tx.Payload = domain.WalletPayload{
			WalletType: rec.text(f.WalletType, ""),
			Direction:  parseDirection(direction),
		}
	case domain.CategoryLoan:
		tx.Payload = domain.LoanPayload{
			LoanID:             rec.text(f.LoanID, ""),
			OutstandingBalance: rec.nullableAmount(kind, f.OutstandingBalance),
		}
	case domain.CategoryOrganization:
		tx.Payload = domain.OrganizationPayload{
			OrganizationID:   rec.text(f.OrganizationID, ""),
			OrganizationName: rec.text(f.OrganizationName, notAvailable),
		}
	}
	return tx, nil
}

func defaultCounterparty(category domain.Category) domain.CounterpartyKind {
	switch category {
	case domain.CategoryPayroll:
		return domain.CounterpartyStaff
	case domain.CategoryOrganization:
		return domain.CounterpartyOrganization
	default:
		return domain.CounterpartyFarmer
	}
}
