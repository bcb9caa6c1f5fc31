package normalize

import "agri-reconciliation/internal/domain"

// WalletSnapshot normalizes the wallet block of a financial-detail payload.
// The balance is required; the wallet id is optional because some backends
// embed the wallet without one.
func WalletSnapshot(rec Record) (domain.WalletSnapshot, error) {
	const kind = domain.KindWalletSnapshot
	f := walletFields

	balance, ok := rec.amount(kind, f.Balance)
	if !ok {
		return domain.WalletSnapshot{}, missing(kind, "balance", rec)
	}
	return domain.WalletSnapshot{
		WalletID:       rec.text(f.WalletID, ""),
		WalletType:     rec.text(f.WalletType, ""),
		Balance:        balance,
		SavingsBalance: rec.amountOrZero(kind, f.SavingsBalance),
		LoanBalance:    rec.amountOrZero(kind, f.LoanBalance),
		Currency:       rec.text(f.Currency, "NGN"),
		UpdatedAt:      rec.timestamp(f.UpdatedAt),
	}, nil
}

func Loan(rec Record) (domain.Loan, error) {
	const kind = domain.KindLoan
	f := loanFields

	id, ok := rec.id()
	if !ok {
		return domain.Loan{}, missing(kind, "id", rec)
	}
	amount, ok := rec.amount(kind, f.Amount)
	if !ok {
		return domain.Loan{}, missing(kind, "amount", rec)
	}

	l := domain.Loan{
		ID:           id,
		Reference:    rec.text(f.Reference, ""),
		Amount:       amount,
		AmountRepaid: rec.amountOrZero(kind, f.AmountRepaid),
		Status:       rec.status(f.Status),
		DueDate:      rec.timestamp(f.DueDate),
		CreatedAt:    rec.timestamp(createdAtKeys),
	}
	l.InterestRate, _ = rec.number(f.InterestRate)
	if outstanding, ok := rec.amount(kind, f.OutstandingBalance); ok {
		l.OutstandingBalance = outstanding
	} else {
		l.OutstandingBalance = l.Amount.Sub(l.AmountRepaid)
	}
	return l, nil
}

func Session(rec Record) (domain.Session, error) {
	f := sessionFields

	id, ok := rec.id()
	if !ok {
		return domain.Session{}, missing(domain.KindSession, "id", rec)
	}
	return domain.Session{
		ID:        id,
		Device:    rec.text(f.Device, notAvailable),
		IPAddress: rec.text(f.IPAddress, notAvailable),
		Location:  rec.text(f.Location, ""),
		StartedAt: rec.timestamp(f.StartedAt),
		EndedAt:   rec.timestamp(f.EndedAt),
	}, nil
}

func Activity(rec Record) (domain.Activity, error) {
	f := activityFields

	id, ok := rec.id()
	if !ok {
		return domain.Activity{}, missing(domain.KindActivity, "id", rec)
	}
	return domain.Activity{
		ID:          id,
		Action:      rec.text(f.Action, notAvailable),
		Description: rec.text(f.Description, ""),
		PerformedBy: rec.text(f.PerformedBy, ""),
		OccurredAt:  rec.timestamp(f.OccurredAt),
	}, nil
}

// FinancialDetail normalizes a farmer's financial-detail payload. The farmer
// and, when present, the wallet must normalize; rows of the sub-collections
// that fail are dropped and counted in SkippedCount.
func FinancialDetail(body Record) (domain.FinancialDetail, error) {
	root := body
	if data, ok := body.Object("data"); ok {
		root = data
	}

	farmerRec, ok := root.Object("farmer", "farmerInfo", "farmer_info")
	if !ok {
		farmerRec = root
	}
	farmer, err := Farmer(farmerRec)
	if err != nil {
		return domain.FinancialDetail{}, err
	}

	detail := domain.FinancialDetail{Farmer: farmer}
	if walletRec, ok := root.Object("wallet", "walletInfo", "wallet_info"); ok {
		w, err := WalletSnapshot(walletRec)
		if err != nil {
			return domain.FinancialDetail{}, err
		}
		detail.Wallet = w
	} else {
		detail.Wallet = domain.WalletSnapshot{Balance: farmer.WalletBalance, Currency: "NGN"}
	}

	var skipped int
	detail.Loans = collect(root, &skipped, Loan, "loans", "outstandingLoans", "outstanding_loans")
	detail.Transactions = collect(root, &skipped, func(r Record) (domain.Transaction, error) {
		return Transaction(r, domain.CategoryWallet)
	}, "transactions", "recentTransactions", "recent_transactions")
	detail.Purchases = collect(root, &skipped, Purchase, "purchases", "recentPurchases", "recent_purchases")
	detail.Sessions = collect(root, &skipped, Session, "sessions", "recentSessions", "recent_sessions")
	detail.Activity = collect(root, &skipped, Activity, "activity", "activities", "timeline")
	detail.SkippedCount = skipped
	return detail, nil
}

func collect[T any](root Record, skipped *int, fn func(Record) (T, error), names ...string) []T {
	rows, _ := root.List(names...)
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		v, err := fn(r)
		if err != nil {
			*skipped++
			continue
		}
		out = append(out, v)
	}
	return out
}
