package gateway

import (
	"context"
	"fmt"
	"net/url"

	"agri-reconciliation/internal/domain"
	"agri-reconciliation/internal/normalize"
	"agri-reconciliation/internal/usecase"
)

// FinancialDetailSource loads a farmer's financial-detail payload through the
// transport and normalizes it.
type FinancialDetailSource struct {
	transport usecase.Transport
}

func NewFinancialDetailSource(transport usecase.Transport) *FinancialDetailSource {
	return &FinancialDetailSource{transport: transport}
}

func (s *FinancialDetailSource) FinancialDetail(ctx context.Context, farmerID string) (domain.FinancialDetail, error) {
	path := "/farmers/" + url.PathEscape(farmerID) + "/financial-details"
	body, err := s.transport.Get(ctx, path, nil)
	if err != nil {
		return domain.FinancialDetail{}, err
	}
	rec, err := normalize.DecodeBody(body)
	if err != nil {
		return domain.FinancialDetail{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return normalize.FinancialDetail(rec)
}
