package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"agri-reconciliation/internal/domain"
)

// ErrSuperseded is returned to a caller whose result arrived after the
// category's filters or page had already moved on. The result is dropped.
var ErrSuperseded = errors.New("result superseded by a newer request")

// SlotState is the lifecycle of one category's cache slot.
type SlotState int

const (
	SlotEmpty SlotState = iota
	SlotLoading
	SlotReady
	SlotError
)

func (s SlotState) String() string {
	switch s {
	case SlotLoading:
		return "loading"
	case SlotReady:
		return "ready"
	case SlotError:
		return "error"
	default:
		return "empty"
	}
}

func (s SlotState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Entry is the last successful page for a category. It is replaced as a
// whole, never patched.
type Entry struct {
	Rows         []domain.Transaction
	Total        int
	Page         int
	TotalPages   int
	Signature    string
	SkippedCount int
	FetchedAt    time.Time
}

type slot struct {
	filters  domain.Filters
	page     int
	state    SlotState
	entry    *Entry
	stale    bool
	err      error
	inflight int
}

func (s *slot) wanted() string {
	return s.filters.Signature(s.page)
}

// View is a read-only snapshot of a category's slot. Rows belong to
// EntrySignature, which differs from Signature while a refetch is pending.
type View struct {
	Category       domain.Category      `json:"category"`
	State          SlotState            `json:"state"`
	Page           int                  `json:"page"`
	Signature      string               `json:"signature"`
	EntrySignature string               `json:"entrySignature,omitempty"`
	Rows           []domain.Transaction `json:"rows"`
	Total          int                  `json:"total"`
	TotalPages     int                  `json:"totalPages"`
	SkippedCount   int                  `json:"skippedCount"`
	FetchedAt      time.Time            `json:"fetchedAt"`
	Stale          bool                 `json:"stale"`
	Err            error                `json:"-"`
}

// Empty reports a successful fetch that returned no rows, as opposed to a
// failed one.
func (v View) Empty() bool {
	return v.State == SlotReady && v.Err == nil && len(v.Rows) == 0
}

func (s *slot) view(category domain.Category) View {
	v := View{
		Category:  category,
		State:     s.state,
		Page:      s.page,
		Signature: s.wanted(),
		Stale:     s.stale,
		Err:       s.err,
	}
	if e := s.entry; e != nil {
		v.EntrySignature = e.Signature
		v.Rows = slices.Clone(e.Rows)
		v.Total = e.Total
		v.TotalPages = e.TotalPages
		v.SkippedCount = e.SkippedCount
		v.FetchedAt = e.FetchedAt
	}
	return v
}

// Controller keeps one cache slot per category and decides when a page has
// to be refetched. Identical concurrent requests share one fetch, and a
// completion only lands if its signature is still the one wanted.
type Controller struct {
	fetcher  PageFetcher
	pageSize int
	logger   *zap.Logger
	now      func() time.Time
	group    singleflight.Group

	mu     sync.Mutex
	active domain.Category
	slots  map[domain.Category]*slot
}

// NewController creates a controller whose active category is wallet.
func NewController(fetcher PageFetcher, pageSize int, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		fetcher:  fetcher,
		pageSize: pageSize,
		logger:   logger,
		now:      time.Now,
		active:   domain.CategoryWallet,
		slots:    make(map[domain.Category]*slot),
	}
}

// Active returns the category in view.
func (c *Controller) Active() domain.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SwitchCategory brings a category into view. A ready slot whose signature
// has not changed is served without a fetch.
func (c *Controller) SwitchCategory(ctx context.Context, category domain.Category) (View, error) {
	if !category.IsValid() {
		return View{}, fmt.Errorf("switch to %q: %w", category, domain.ErrUnsupportedCategory)
	}
	c.mu.Lock()
	c.active = category
	c.mu.Unlock()
	return c.load(ctx, category, false)
}

// SetFilter replaces the category's filters and goes back to page 1.
func (c *Controller) SetFilter(ctx context.Context, category domain.Category, filters domain.Filters) (View, error) {
	if !category.IsValid() {
		return View{}, fmt.Errorf("filter %q: %w", category, domain.ErrUnsupportedCategory)
	}
	c.mu.Lock()
	s := c.slot(category)
	s.filters = filters
	s.page = 1
	c.mu.Unlock()
	return c.load(ctx, category, false)
}

func (c *Controller) SetPage(ctx context.Context, category domain.Category, page int) (View, error) {
	if !category.IsValid() {
		return View{}, fmt.Errorf("page %q: %w", category, domain.ErrUnsupportedCategory)
	}
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.slot(category).page = page
	c.mu.Unlock()
	return c.load(ctx, category, false)
}

// Navigate sets filters and page in one step and brings the category into
// view.
func (c *Controller) Navigate(ctx context.Context, category domain.Category, filters domain.Filters, page int) (View, error) {
	if !category.IsValid() {
		return View{}, fmt.Errorf("navigate %q: %w", category, domain.ErrUnsupportedCategory)
	}
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.active = category
	s := c.slot(category)
	s.filters = filters
	s.page = page
	c.mu.Unlock()
	return c.load(ctx, category, false)
}

// Invalidate refetches the category's current page even if it is cached.
func (c *Controller) Invalidate(ctx context.Context, category domain.Category) (View, error) {
	if !category.IsValid() {
		return View{}, fmt.Errorf("invalidate %q: %w", category, domain.ErrUnsupportedCategory)
	}
	return c.load(ctx, category, true)
}

// View returns a snapshot of the category's slot without fetching.
func (c *Controller) View(category domain.Category) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot(category).view(category)
}

// InFlight counts callers currently waiting on a fetch for the category.
func (c *Controller) InFlight(category domain.Category) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot(category).inflight
}

// slot must be called with mu held.
func (c *Controller) slot(category domain.Category) *slot {
	s, ok := c.slots[category]
	if !ok {
		s = &slot{page: 1}
		c.slots[category] = s
	}
	return s
}

func (c *Controller) load(ctx context.Context, category domain.Category, force bool) (View, error) {
	c.mu.Lock()
	s := c.slot(category)
	sig := s.wanted()
	if !force && s.state == SlotReady && s.entry != nil && s.entry.Signature == sig {
		v := s.view(category)
		c.mu.Unlock()
		return v, nil
	}
	filters, page := s.filters, s.page
	s.state = SlotLoading
	s.inflight++
	c.mu.Unlock()

	// The first caller's ctx drives the shared fetch.
	_, err, shared := c.group.Do(string(category)+"|"+sig, func() (any, error) {
		return nil, c.complete(ctx, s, category, filters, page, sig)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	s.inflight--
	if err == nil && s.wanted() != sig {
		err = ErrSuperseded
	}
	if shared {
		c.logger.Debug("shared in-flight fetch", zap.String("category", string(category)), zap.String("signature", sig))
	}
	return s.view(category), err
}

// complete runs the fetch and applies its outcome to the slot, unless the
// slot has moved on to another signature in the meantime.
func (c *Controller) complete(ctx context.Context, s *slot, category domain.Category, filters domain.Filters, page int, sig string) error {
	result, err := c.fetcher.Fetch(ctx, category, filters, page, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	if s.wanted() != sig {
		c.logger.Debug("discarding superseded result",
			zap.String("category", string(category)),
			zap.String("signature", sig),
			zap.String("wanted", s.wanted()),
		)
		return ErrSuperseded
	}
	if err != nil {
		s.state = SlotError
		s.err = err
		s.stale = s.entry != nil
		return err
	}
	s.entry = &Entry{
		Rows:         result.Rows,
		Total:        result.Total,
		Page:         result.Page,
		TotalPages:   result.TotalPages,
		Signature:    sig,
		SkippedCount: result.SkippedCount,
		FetchedAt:    c.now(),
	}
	s.state = SlotReady
	s.err = nil
	s.stale = false
	return nil
}
