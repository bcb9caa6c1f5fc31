package usecase_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"agri-reconciliation/internal/domain"
	"agri-reconciliation/internal/usecase"
	mock_usecase "agri-reconciliation/internal/usecase/mocks"
)

func TestCategoryFetcher_Fetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transportErr := errors.New("connection reset")

	tests := []struct {
		name           string
		category       domain.Category
		filters        domain.Filters
		page           int
		wantPath       string
		wantParams     url.Values
		body           string
		transportErr   error
		wantRows       int
		wantSkipped    int
		wantTotal      int
		wantTotalPages int
		wantErrIs      error
	}{
		{
			name:       "payroll page two",
			category:   domain.CategoryPayroll,
			page:       2,
			wantPath:   "/payroll/transactions",
			wantParams: url.Values{"page": {"2"}, "limit": {"10"}},
			body: `{"data": {"transactions": [
				{"_id": "a", "net_salary": 100000},
				{"_id": "b", "net_salary": 200000},
				{"_id": "c", "net_salary": 300000}
			], "total": 47, "pages": 5}}`,
			wantRows:       3,
			wantTotal:      47,
			wantTotalPages: 5,
		},
		{
			name:     "filters become query params",
			category: domain.CategoryWallet,
			filters: domain.Filters{
				Search:     "ada",
				DateStart:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				WalletType: " savings ",
				SortOrder:  domain.SortDesc,
			},
			page:     1,
			wantPath: "/transactions/wallet",
			wantParams: url.Values{
				"page":       {"1"},
				"limit":      {"10"},
				"search":     {"ada"},
				"startDate":  {"2025-01-01"},
				"walletType": {"savings"},
				"sortOrder":  {"desc"},
			},
			body:           `{"transactions": [{"id": "w1", "amount": 500}]}`,
			wantRows:       1,
			wantTotal:      1,
			wantTotalPages: 1,
		},
		{
			name:           "unreadable rows are skipped and counted",
			category:       domain.CategoryPurchase,
			page:           1,
			wantPath:       "/purchases",
			wantParams:     url.Values{"page": {"1"}, "limit": {"10"}},
			body:           `{"data": {"purchases": [{"id": "p1", "totalAmount": 5000}, {"totalAmount": 1}, {"id": "p3"}], "totalPages": 1}}`,
			wantRows:       1,
			wantSkipped:    2,
			wantTotal:      3,
			wantTotalPages: 1,
		},
		{
			name:       "zero rows is a valid page",
			category:   domain.CategoryLoan,
			page:       1,
			wantPath:   "/transactions/loan",
			wantParams: url.Values{"page": {"1"}, "limit": {"10"}},
			body:       `{"data": {"transactions": [], "total": 0}}`,
			wantRows:   0,
			wantTotal:  0,
			// totalPages absent
			wantTotalPages: 1,
		},
		{
			name:         "transport failure",
			category:     domain.CategoryOrganization,
			page:         1,
			wantPath:     "/transactions/organization",
			wantParams:   url.Values{"page": {"1"}, "limit": {"10"}},
			transportErr: transportErr,
			wantErrIs:    transportErr,
		},
		{
			name:       "body is not json",
			category:   domain.CategoryAll,
			page:       1,
			wantPath:   "/transactions",
			wantParams: url.Values{"page": {"1"}, "limit": {"10"}},
			body:       `<html>bad gateway</html>`,
			wantErrIs:  domain.ErrMalformedResponse,
		},
		{
			name:       "envelope without rows",
			category:   domain.CategoryAll,
			page:       1,
			wantPath:   "/transactions",
			wantParams: url.Values{"page": {"1"}, "limit": {"10"}},
			body:       `{"message": "ok"}`,
			wantErrIs:  domain.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := mock_usecase.NewMockTransport(ctrl)
			transport.EXPECT().
				Get(gomock.Any(), tt.wantPath, tt.wantParams).
				Return([]byte(tt.body), tt.transportErr).
				Times(1)

			fetcher := usecase.NewCategoryFetcher(transport, zap.NewNop())
			got, err := fetcher.Fetch(context.Background(), tt.category, tt.filters, tt.page, 10)

			if tt.wantErrIs != nil {
				var ferr *domain.FetchError
				require.True(t, errors.As(err, &ferr), "expected FetchError, got %v", err)
				assert.Equal(t, tt.category, ferr.Category)
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Empty(t, got.Rows)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.page, got.Page)
			assert.Equal(t, 10, got.PageSize)
			assert.Len(t, got.Rows, tt.wantRows)
			assert.Equal(t, tt.wantSkipped, got.SkippedCount)
			assert.Equal(t, tt.wantTotal, got.Total)
			assert.Equal(t, tt.wantTotalPages, got.TotalPages)
		})
	}
}

func TestCategoryFetcher_PayrollRowsAreCanonical(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mock_usecase.NewMockTransport(ctrl)
	transport.EXPECT().
		Get(gomock.Any(), "/payroll/transactions", gomock.Any()).
		Return([]byte(`{"data": {"transactions": [{
			"_id": "pt-1",
			"staff_id": {"first_name": "Ada", "last_name": "Bello"},
			"net_salary": 250000,
			"gross_salary": 300000,
			"payment_status": "failed"
		}]}}`), nil)

	got, err := usecase.NewCategoryFetcher(transport, nil).Fetch(context.Background(), domain.CategoryPayroll, domain.Filters{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)

	tx := got.Rows[0]
	assert.Equal(t, domain.CategoryPayroll, tx.Category)
	assert.Equal(t, "Ada Bello", tx.CounterpartyName)
	assert.Equal(t, domain.CounterpartyStaff, tx.CounterpartyKind)
	assert.True(t, decimal.RequireFromString("2500").Equal(tx.AmountMajor))
	assert.Equal(t, domain.StatusFailed, tx.Status)

	payload, ok := tx.Payload.(domain.PayrollPayload)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("3000").Equal(payload.GrossSalary))
}

func TestCategoryFetcher_LogsSkippedRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	core, logs := observer.New(zap.WarnLevel)
	transport := mock_usecase.NewMockTransport(ctrl)
	transport.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(`{"transactions": [{"amount": 100}]}`), nil)

	got, err := usecase.NewCategoryFetcher(transport, zap.New(core)).Fetch(context.Background(), domain.CategoryWallet, domain.Filters{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, got.SkippedCount)

	entries := logs.FilterMessage("skipping row").All()
	require.Len(t, entries, 1)
	assert.Equal(t, `{"amount":100}`, entries[0].ContextMap()["raw"])
}

func TestCategoryFetcher_UnsupportedCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mock_usecase.NewMockTransport(ctrl)
	_, err := usecase.NewCategoryFetcher(transport, nil).Fetch(context.Background(), domain.Category("savings"), domain.Filters{}, 1, 10)
	assert.ErrorIs(t, err, domain.ErrUnsupportedCategory)
}
