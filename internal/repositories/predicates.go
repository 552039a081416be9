package repositories

import (
	"strings"

	"gorm.io/gorm"

	"katalog/internal/query"
)

// applyPredicates chains the compiled filter conditions onto a query.
// Field names were checked to be plain identifiers by the compiler, so they
// are safe to splice into the clause.
func applyPredicates(tx *gorm.DB, preds []query.Predicate) *gorm.DB {
	for _, p := range preds {
		switch p.Op {
		case query.OpContains:
			val, _ := p.Value.(string)
			tx = tx.Where("LOWER("+p.Field+") LIKE ?", "%"+strings.ToLower(val)+"%")
		default:
			tx = tx.Where(p.Field+" = ?", p.Value)
		}
	}
	return tx
}

// applyPage applies the resolved offset, limit and ordering.
func applyPage(tx *gorm.DB, page query.Resolved) *gorm.DB {
	return tx.Offset(page.Skip).Limit(page.Limit).Order(page.OrderBy)
}
