package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agri-reconciliation/internal/domain"
)

// BulkResult lists which farmers were exported, in request order, and why
// the others failed.
type BulkResult struct {
	Exported []string         `json:"exported"`
	Failed   map[string]error `json:"-"`
}

// StatementExporter loads, assembles and renders farmer statements.
type StatementExporter struct {
	source      DetailSource
	assembler   *StatementAssembler
	renderer    ReportRenderer
	concurrency int
	logger      *zap.Logger
}

func NewStatementExporter(source DetailSource, assembler *StatementAssembler, renderer ReportRenderer, concurrency int, logger *zap.Logger) *StatementExporter {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatementExporter{
		source:      source,
		assembler:   assembler,
		renderer:    renderer,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Export writes one farmer's statement to w. An empty selection fails before
// anything is fetched.
func (e *StatementExporter) Export(ctx context.Context, farmerID string, sel domain.SectionSelection, w io.Writer) error {
	if !sel.Any() {
		return domain.ErrEmptySelection
	}
	detail, err := e.source.FinancialDetail(ctx, farmerID)
	if err != nil {
		return fmt.Errorf("could not load financial detail for %s: %w", farmerID, err)
	}
	if detail.SkippedCount > 0 {
		e.logger.Warn("statement omits unreadable records",
			zap.String("farmerId", farmerID),
			zap.Int("skipped", detail.SkippedCount),
		)
	}
	doc, err := e.assembler.Assemble(detail, sel)
	if err != nil {
		return err
	}
	if err := e.renderer.Render(ctx, doc, w); err != nil {
		return fmt.Errorf("could not render statement for %s: %w", farmerID, err)
	}
	return nil
}

// ExportBulk exports statements for many farmers with bounded concurrency.
// open supplies the destination for each farmer. One farmer failing does
// not stop the others.
func (e *StatementExporter) ExportBulk(ctx context.Context, farmerIDs []string, sel domain.SectionSelection, open func(farmerID string) (io.WriteCloser, error)) (BulkResult, error) {
	if !sel.Any() {
		return BulkResult{}, domain.ErrEmptySelection
	}

	var (
		mu     sync.Mutex
		done   = make([]bool, len(farmerIDs))
		failed = make(map[string]error)
		g      errgroup.Group
	)
	g.SetLimit(e.concurrency)

	for i, id := range farmerIDs {
		i, id := i, id
		g.Go(func() error {
			err := e.exportOne(ctx, id, sel, open)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed[id] = err
				e.logger.Warn("statement export failed", zap.String("farmerId", id), zap.Error(err))
				return nil
			}
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	result := BulkResult{Failed: failed}
	for i, ok := range done {
		if ok {
			result.Exported = append(result.Exported, farmerIDs[i])
		}
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (e *StatementExporter) exportOne(ctx context.Context, farmerID string, sel domain.SectionSelection, open func(string) (io.WriteCloser, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w, err := open(farmerID)
	if err != nil {
		return fmt.Errorf("could not open output for %s: %w", farmerID, err)
	}
	err = e.Export(ctx, farmerID, sel, w)
	return errors.Join(err, w.Close())
}
