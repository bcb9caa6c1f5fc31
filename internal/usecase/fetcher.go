package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"agri-reconciliation/internal/domain"
	"agri-reconciliation/internal/normalize"
)

type endpoint struct {
	path string
	rows []string
}

var endpoints = map[domain.Category]endpoint{
	domain.CategoryWallet:       {path: "/transactions/wallet", rows: []string{"transactions", "walletTransactions", "wallet_transactions"}},
	domain.CategoryLoan:         {path: "/transactions/loan", rows: []string{"transactions", "loanTransactions", "loan_transactions", "loans"}},
	domain.CategoryPurchase:     {path: "/purchases", rows: []string{"purchases", "transactions"}},
	domain.CategoryPayroll:      {path: "/payroll/transactions", rows: []string{"transactions", "payrollTransactions", "payroll_transactions"}},
	domain.CategoryOrganization: {path: "/transactions/organization", rows: []string{"transactions", "organizationTransactions", "organization_transactions"}},
	domain.CategoryAll:          {path: "/transactions", rows: []string{"transactions"}},
}

// CategoryFetcher queries one category listing and normalizes its rows.
type CategoryFetcher struct {
	transport Transport
	logger    *zap.Logger
}

// NewCategoryFetcher creates a fetcher over the given transport.
func NewCategoryFetcher(transport Transport, logger *zap.Logger) *CategoryFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryFetcher{transport: transport, logger: logger}
}

// Fetch issues exactly one transport call. Rows that fail to normalize are
// left out and counted; a failed call or an unreadable envelope is returned
// as a *domain.FetchError and never as an empty page.
func (f *CategoryFetcher) Fetch(ctx context.Context, category domain.Category, filters domain.Filters, page, pageSize int) (domain.Page, error) {
	ep, ok := endpoints[category]
	if !ok {
		return domain.Page{}, &domain.FetchError{Category: category, Cause: domain.ErrUnsupportedCategory}
	}
	if page < 1 {
		page = 1
	}

	params := filters.QueryParams(page, pageSize)
	log := f.logger.With(zap.String("category", string(category)), zap.String("signature", filters.Signature(page)))
	log.Debug("fetching page", zap.String("path", ep.path))

	body, err := f.transport.Get(ctx, ep.path, params)
	if err != nil {
		log.Error("fetch failed", zap.Error(err))
		return domain.Page{}, &domain.FetchError{Category: category, Cause: err}
	}

	rec, err := normalize.DecodeBody(body)
	if err != nil {
		log.Error("undecodable response", zap.Error(err))
		return domain.Page{}, &domain.FetchError{Category: category, Cause: fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)}
	}
	rows, ok := rec.Rows(ep.rows...)
	if !ok {
		log.Error("response carries no rows", zap.Strings("rowKeys", ep.rows))
		return domain.Page{}, &domain.FetchError{Category: category, Cause: fmt.Errorf("%w: no row list", domain.ErrMalformedResponse)}
	}

	result := domain.Page{
		Category: category,
		Rows:     make([]domain.Transaction, 0, len(rows)),
		Page:     page,
		PageSize: pageSize,
	}
	for _, r := range rows {
		tx, err := normalize.Transaction(r, category)
		if err != nil {
			result.SkippedCount++
			fields := []zap.Field{zap.Error(err)}
			var nerr *domain.NormalizationError
			if errors.As(err, &nerr) {
				fields = append(fields, zap.String("kind", string(nerr.Kind)), zap.String("raw", nerr.RawSnippet))
			}
			log.Warn("skipping row", fields...)
			continue
		}
		result.Rows = append(result.Rows, tx)
	}
	result.Total, result.TotalPages = rec.Pagination(len(rows))

	log.Info("fetched page",
		zap.Int("page", page),
		zap.Int("rows", len(result.Rows)),
		zap.Int("skipped", result.SkippedCount),
		zap.Int("totalPages", result.TotalPages),
	)
	return result, nil
}
