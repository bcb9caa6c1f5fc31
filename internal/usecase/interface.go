package usecase

import (
	"context"
	"io"
	"net/url"

	"agri-reconciliation/internal/domain"
)

// Transport performs one read-only query against the operations backend.
// The usecase layer depends on this interface, not on a concrete client.
//
//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go
type Transport interface {
	Get(ctx context.Context, path string, params url.Values) ([]byte, error)
}

// PageFetcher loads one normalized page of a category listing.
type PageFetcher interface {
	Fetch(ctx context.Context, category domain.Category, filters domain.Filters, page, pageSize int) (domain.Page, error)
}

// DetailSource loads a farmer's financial details.
type DetailSource interface {
	FinancialDetail(ctx context.Context, farmerID string) (domain.FinancialDetail, error)
}

// ReportRenderer writes a statement in one output format.
type ReportRenderer interface {
	Render(ctx context.Context, doc domain.Statement, w io.Writer) error
}
