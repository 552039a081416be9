package query

import (
	"strconv"
	"strings"

	"katalog/internal/apperrors"
)

const (
	// DefaultLimit is the page size used when the client does not send one.
	DefaultLimit = 10
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// Options carries the raw pagination parameters of a single request.
// They are never persisted.
type Options struct {
	Page      string
	Limit     string
	SortBy    string
	SortOrder string
}

// Resolved is the concrete offset/limit/ordering derived from Options.
type Resolved struct {
	Skip    int
	Limit   int
	Page    int
	OrderBy string // SQL order clause, e.g. "price desc"
}

// Resolve normalizes pagination options into a concrete skip, limit and
// ordering clause. Missing fields fall back to defaults; malformed numeric
// input is rejected as a validation error rather than silently coerced.
func Resolve(opts Options) (Resolved, error) {
	page := 1
	if opts.Page != "" {
		n, err := strconv.Atoi(opts.Page)
		if err != nil || n < 1 {
			return Resolved{}, apperrors.Validation("page must be a positive integer")
		}
		page = n
	}

	limit := DefaultLimit
	if opts.Limit != "" {
		n, err := strconv.Atoi(opts.Limit)
		if err != nil || n < 1 {
			return Resolved{}, apperrors.Validation("limit must be a positive integer")
		}
		limit = n
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	orderBy, err := resolveOrder(opts.SortBy, opts.SortOrder)
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{
		Skip:    (page - 1) * limit,
		Limit:   limit,
		Page:    page,
		OrderBy: orderBy,
	}, nil
}

func resolveOrder(sortBy, sortOrder string) (string, error) {
	if sortBy == "" && sortOrder == "" {
		// Fall back to creation-time ascending.
		return "created_at asc", nil
	}
	if sortBy == "" {
		return "", apperrors.Validation("sortBy is required when sortOrder is given")
	}
	if !isIdentifier(sortBy) {
		return "", apperrors.Validation("invalid sortBy field: %s", sortBy)
	}
	order := "asc"
	if sortOrder != "" {
		switch strings.ToLower(sortOrder) {
		case "asc", "desc":
			order = strings.ToLower(sortOrder)
		default:
			return "", apperrors.Validation("sortOrder must be 'asc' or 'desc'")
		}
	}
	return sortBy + " " + order, nil
}
