package normalize

import (
	"strings"

	"agri-reconciliation/internal/domain"
)

var statusVocabulary = map[string]domain.Status{
	"pending":     domain.StatusPending,
	"queued":      domain.StatusPending,
	"processing":  domain.StatusProcessing,
	"in_progress": domain.StatusProcessing,
	"initiated":   domain.StatusProcessing,
	"active":      domain.StatusProcessing,
	"approved":    domain.StatusProcessing,
	"disbursed":   domain.StatusProcessing,
	"completed":   domain.StatusCompleted,
	"complete":    domain.StatusCompleted,
	"success":     domain.StatusCompleted,
	"successful":  domain.StatusCompleted,
	"paid":        domain.StatusCompleted,
	"repaid":      domain.StatusCompleted,
	"failed":      domain.StatusFailed,
	"rejected":    domain.StatusFailed,
	"declined":    domain.StatusFailed,
	"error":       domain.StatusFailed,
	"cancelled":   domain.StatusCancelled,
	"canceled":    domain.StatusCancelled,
	"reversed":    domain.StatusCancelled,
}

// ParseStatus folds backend status words onto the canonical statuses.
// Unknown words are treated as pending.
func ParseStatus(raw string) domain.Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if s, ok := statusVocabulary[key]; ok {
		return s
	}
	return domain.StatusPending
}

func (r Record) status(k keys) domain.Status {
	s, _ := r.str(k)
	return ParseStatus(s)
}

func parseCategory(raw string) (domain.Category, bool) {
	c := domain.Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == domain.CategoryAll || !c.IsValid() {
		return "", false
	}
	return c, true
}

func parseCounterpartyKind(raw string) (domain.CounterpartyKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "farmer", "farmers":
		return domain.CounterpartyFarmer, true
	case "staff", "employee", "admin":
		return domain.CounterpartyStaff, true
	case "buyer", "offtaker", "aggregator":
		return domain.CounterpartyBuyer, true
	case "organization", "organisation", "cooperative":
		return domain.CounterpartyOrganization, true
	}
	return "", false
}

func parseDirection(raw string) domain.Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debit", "dr", "withdrawal", "outflow":
		return domain.DirectionDebit
	}
	return domain.DirectionCredit
}
