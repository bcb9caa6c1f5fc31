package usecase

import (
	"time"

	"agri-reconciliation/internal/domain"
	"agri-reconciliation/internal/money"
)

const (
	SectionWallet       = "Wallet Information"
	SectionLoans        = "Outstanding Loans"
	SectionTransactions = "Recent Transactions"
	SectionPurchases    = "Recent Purchases"
	SectionSessions     = "Recent Sessions"
	SectionActivity     = "Activity Timeline"

	statementTitle = "Farmer Financial Statement"
	displayTime    = "2006-01-02 15:04"
	notAvailable   = "N/A"
)

// StatementAssembler flattens a farmer's financial details into a statement
// document. It performs no I/O.
type StatementAssembler struct {
	now func() time.Time
}

func NewStatementAssembler() *StatementAssembler {
	return &StatementAssembler{now: time.Now}
}

// Assemble builds the selected sections in their fixed order. With nothing
// selected it returns domain.ErrEmptySelection and no document.
func (a *StatementAssembler) Assemble(detail domain.FinancialDetail, sel domain.SectionSelection) (domain.Statement, error) {
	if !sel.Any() {
		return domain.Statement{}, domain.ErrEmptySelection
	}

	doc := domain.Statement{
		Title:       statementTitle,
		Subject:     detail.Farmer.FullName,
		SubjectID:   detail.Farmer.ID,
		GeneratedAt: a.now().UTC(),
	}
	if sel.Wallet {
		doc.Sections = append(doc.Sections, walletSection(detail.Wallet))
	}
	if sel.Loans {
		doc.Sections = append(doc.Sections, loanSection(detail.Loans))
	}
	if sel.Transactions {
		doc.Sections = append(doc.Sections, transactionSection(SectionTransactions, detail.Transactions))
	}
	if sel.Purchases {
		doc.Sections = append(doc.Sections, purchaseSection(detail.Purchases))
	}
	if sel.Sessions {
		doc.Sections = append(doc.Sections, sessionSection(detail.Sessions))
	}
	if sel.Activity {
		doc.Sections = append(doc.Sections, activitySection(detail.Activity))
	}
	return doc, nil
}

// Listing turns a page of cached listing rows into a one-section document.
func (a *StatementAssembler) Listing(title string, rows []domain.Transaction) domain.Statement {
	return domain.Statement{
		Title:       title,
		GeneratedAt: a.now().UTC(),
		Sections:    []domain.Section{transactionSection(title, rows)},
	}
}

func walletSection(w domain.WalletSnapshot) domain.Section {
	field := func(name, value string) map[string]string {
		return map[string]string{"Field": name, "Value": value}
	}
	return domain.Section{
		Title:   SectionWallet,
		Columns: []string{"Field", "Value"},
		Rows: []map[string]string{
			field("Balance", money.Format(w.Balance)),
			field("Savings Balance", money.Format(w.SavingsBalance)),
			field("Loan Balance", money.Format(w.LoanBalance)),
			field("Wallet Type", orNA(w.WalletType)),
			field("Currency", orNA(w.Currency)),
			field("Last Updated", when(w.UpdatedAt)),
		},
	}
}

func loanSection(loans []domain.Loan) domain.Section {
	s := domain.Section{
		Title:   SectionLoans,
		Columns: []string{"Reference", "Amount", "Repaid", "Outstanding", "Status", "Due Date"},
		Rows:    []map[string]string{},
	}
	for _, l := range loans {
		if !l.Outstanding() {
			continue
		}
		ref := l.Reference
		if ref == "" {
			ref = l.ID
		}
		s.Rows = append(s.Rows, map[string]string{
			"Reference":   ref,
			"Amount":      money.Format(l.Amount),
			"Repaid":      money.Format(l.AmountRepaid),
			"Outstanding": money.Format(l.OutstandingBalance),
			"Status":      string(l.Status),
			"Due Date":    when(l.DueDate),
		})
	}
	return s
}

func transactionSection(title string, txs []domain.Transaction) domain.Section {
	s := domain.Section{
		Title:   title,
		Columns: []string{"Date", "Category", "Counterparty", "Reference", "Description", "Amount", "Status"},
		Rows:    make([]map[string]string, 0, len(txs)),
	}
	for _, tx := range txs {
		s.Rows = append(s.Rows, map[string]string{
			"Date":         when(tx.CreatedAt),
			"Category":     string(tx.Category),
			"Counterparty": orNA(tx.CounterpartyName),
			"Reference":    orNA(tx.Reference),
			"Description":  orNA(tx.Description),
			"Amount":       money.Format(tx.AmountMajor),
			"Status":       string(tx.Status),
		})
	}
	return s
}

func purchaseSection(purchases []domain.Purchase) domain.Section {
	s := domain.Section{
		Title:   SectionPurchases,
		Columns: []string{"Date", "Product", "Weight (kg)", "Total", "Net Credited", "Status"},
		Rows:    make([]map[string]string, 0, len(purchases)),
	}
	for _, p := range purchases {
		s.Rows = append(s.Rows, map[string]string{
			"Date":         when(p.CreatedAt),
			"Product":      p.ProductName,
			"Weight (kg)":  p.WeightKg.StringFixed(2),
			"Total":        money.Format(p.TotalAmount),
			"Net Credited": money.Format(p.NetAmountCredited),
			"Status":       string(p.Status),
		})
	}
	return s
}

func sessionSection(sessions []domain.Session) domain.Section {
	s := domain.Section{
		Title:   SectionSessions,
		Columns: []string{"Started", "Ended", "Device", "IP Address", "Location"},
		Rows:    make([]map[string]string, 0, len(sessions)),
	}
	for _, ss := range sessions {
		s.Rows = append(s.Rows, map[string]string{
			"Started":    when(ss.StartedAt),
			"Ended":      when(ss.EndedAt),
			"Device":     ss.Device,
			"IP Address": ss.IPAddress,
			"Location":   orNA(ss.Location),
		})
	}
	return s
}

func activitySection(activity []domain.Activity) domain.Section {
	s := domain.Section{
		Title:   SectionActivity,
		Columns: []string{"Date", "Action", "Description", "Performed By"},
		Rows:    make([]map[string]string, 0, len(activity)),
	}
	for _, a := range activity {
		s.Rows = append(s.Rows, map[string]string{
			"Date":         when(a.OccurredAt),
			"Action":       a.Action,
			"Description":  orNA(a.Description),
			"Performed By": orNA(a.PerformedBy),
		})
	}
	return s
}

func when(t time.Time) string {
	if t.IsZero() {
		return notAvailable
	}
	return t.UTC().Format(displayTime)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
