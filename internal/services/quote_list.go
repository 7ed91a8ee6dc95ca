package services

import (
	"sort"
	"strings"

	"github.com/proappliance/quoteadmin/internal/models"
)

type SortField string

type SortDirection string

const (
	SortByCreatedAt    SortField = "created_at"
	SortByCustomerName SortField = "customer_name"
	SortByEmail        SortField = "email"

	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type ListQuery struct {
	Term      string
	Field     SortField
	Direction SortDirection
}

// NormalizeListQuery replaces unknown sort values with the defaults.
func NormalizeListQuery(term string, field string, direction string) ListQuery {
	query := ListQuery{
		Term:      term,
		Field:     SortByCreatedAt,
		Direction: SortDesc,
	}
	switch SortField(strings.TrimSpace(field)) {
	case SortByCustomerName:
		query.Field = SortByCustomerName
	case SortByEmail:
		query.Field = SortByEmail
	}
	if SortDirection(strings.ToLower(strings.TrimSpace(direction))) == SortAsc {
		query.Direction = SortAsc
	}
	return query
}

// MatchesSearch folds case for name and email but matches the phone
// literally, so formatting in the term must match the stored phone.
func MatchesSearch(quote models.QuoteSummary, term string) bool {
	if term == "" {
		return true
	}
	folded := strings.ToLower(term)
	return strings.Contains(strings.ToLower(quote.CustomerName), folded) ||
		strings.Contains(strings.ToLower(quote.Email), folded) ||
		strings.Contains(quote.PhonePrimary, term)
}

// ArrangeQuotes filters and sorts a copy of all; the input is not modified.
// Ties keep their input order.
func ArrangeQuotes(all []models.QuoteSummary, query ListQuery) []models.QuoteSummary {
	query = NormalizeListQuery(query.Term, string(query.Field), string(query.Direction))
	arranged := make([]models.QuoteSummary, 0, len(all))
	for _, quote := range all {
		if MatchesSearch(quote, query.Term) {
			arranged = append(arranged, quote)
		}
	}

	less := compareFor(query.Field)
	if query.Direction == SortDesc {
		sort.SliceStable(arranged, func(i, j int) bool { return less(arranged[j], arranged[i]) })
	} else {
		sort.SliceStable(arranged, func(i, j int) bool { return less(arranged[i], arranged[j]) })
	}
	return arranged
}

func compareFor(field SortField) func(a, b models.QuoteSummary) bool {
	switch field {
	case SortByCustomerName:
		return func(a, b models.QuoteSummary) bool { return a.CustomerName < b.CustomerName }
	case SortByEmail:
		return func(a, b models.QuoteSummary) bool { return a.Email < b.Email }
	default:
		return func(a, b models.QuoteSummary) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

// EnteredPending returns the fetched quotes a bulk archive would target.
func EnteredPending(all []models.QuoteSummary) []models.QuoteSummary {
	pending := make([]models.QuoteSummary, 0)
	for _, quote := range all {
		if quote.EnteredStatus && !quote.Archived {
			pending = append(pending, quote)
		}
	}
	return pending
}
