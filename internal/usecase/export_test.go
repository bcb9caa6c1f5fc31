package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-reconciliation/internal/domain"
	"agri-reconciliation/internal/usecase"
	mock_usecase "agri-reconciliation/internal/usecase/mocks"
)

type nopCloser struct {
	bytes.Buffer
	closed bool
}

func (n *nopCloser) Close() error {
	n.closed = true
	return nil
}

func TestStatementExporter_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sourceErr := errors.New("farmer not found")
	renderErr := errors.New("disk full")

	tests := []struct {
		name      string
		sel       domain.SectionSelection
		setup     func(source *mock_usecase.MockDetailSource, renderer *mock_usecase.MockReportRenderer)
		wantErrIs error
	}{
		{
			name: "renders the assembled statement",
			sel:  domain.SectionSelection{Wallet: true},
			setup: func(source *mock_usecase.MockDetailSource, renderer *mock_usecase.MockReportRenderer) {
				source.EXPECT().FinancialDetail(gomock.Any(), "f-1").Return(sampleDetail(), nil)
				renderer.EXPECT().
					Render(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, doc domain.Statement, w io.Writer) error {
						require.Len(t, doc.Sections, 1)
						assert.Equal(t, "Wallet Information", doc.Sections[0].Title)
						_, err := io.WriteString(w, doc.Subject)
						return err
					})
			},
		},
		{
			name:      "empty selection fetches nothing",
			sel:       domain.SectionSelection{},
			setup:     func(*mock_usecase.MockDetailSource, *mock_usecase.MockReportRenderer) {},
			wantErrIs: domain.ErrEmptySelection,
		},
		{
			name: "detail failure",
			sel:  domain.AllSections(),
			setup: func(source *mock_usecase.MockDetailSource, _ *mock_usecase.MockReportRenderer) {
				source.EXPECT().FinancialDetail(gomock.Any(), "f-1").Return(domain.FinancialDetail{}, sourceErr)
			},
			wantErrIs: sourceErr,
		},
		{
			name: "render failure",
			sel:  domain.AllSections(),
			setup: func(source *mock_usecase.MockDetailSource, renderer *mock_usecase.MockReportRenderer) {
				source.EXPECT().FinancialDetail(gomock.Any(), "f-1").Return(sampleDetail(), nil)
				renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(renderErr)
			},
			wantErrIs: renderErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := mock_usecase.NewMockDetailSource(ctrl)
			renderer := mock_usecase.NewMockReportRenderer(ctrl)
			tt.setup(source, renderer)

			exporter := usecase.NewStatementExporter(source, usecase.NewStatementAssembler(), renderer, 1, nil)
			var buf bytes.Buffer
			err := exporter.Export(ctx, "f-1", tt.sel, &buf)

			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Musa Ibrahim", buf.String())
		})
	}
}

func TestStatementExporter_ExportBulk(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_usecase.NewMockDetailSource(ctrl)
	renderer := mock_usecase.NewMockReportRenderer(ctrl)

	source.EXPECT().FinancialDetail(gomock.Any(), "f-1").Return(sampleDetail(), nil)
	source.EXPECT().FinancialDetail(gomock.Any(), "f-2").Return(domain.FinancialDetail{}, errors.New("boom"))
	source.EXPECT().FinancialDetail(gomock.Any(), "f-4").Return(sampleDetail(), nil)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	var mu sync.Mutex
	outputs := map[string]*nopCloser{}
	open := func(farmerID string) (io.WriteCloser, error) {
		if farmerID == "f-3" {
			return nil, errors.New("permission denied")
		}
		mu.Lock()
		defer mu.Unlock()
		w := &nopCloser{}
		outputs[farmerID] = w
		return w, nil
	}

	exporter := usecase.NewStatementExporter(source, usecase.NewStatementAssembler(), renderer, 2, nil)
	result, err := exporter.ExportBulk(context.Background(), []string{"f-1", "f-2", "f-3", "f-4"}, domain.AllSections(), open)
	require.NoError(t, err)

	assert.Equal(t, []string{"f-1", "f-4"}, result.Exported)
	require.Len(t, result.Failed, 2)
	assert.Contains(t, result.Failed, "f-2")
	assert.Contains(t, result.Failed, "f-3")
	for id, w := range outputs {
		assert.True(t, w.closed, "output for %s left open", id)
	}
}

func TestStatementExporter_ExportBulkEmptySelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exporter := usecase.NewStatementExporter(
		mock_usecase.NewMockDetailSource(ctrl),
		usecase.NewStatementAssembler(),
		mock_usecase.NewMockReportRenderer(ctrl),
		4,
		nil,
	)
	opened := false
	_, err := exporter.ExportBulk(context.Background(), []string{"f-1"}, domain.SectionSelection{}, func(string) (io.WriteCloser, error) {
		opened = true
		return &nopCloser{}, nil
	})
	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	assert.False(t, opened)
}
