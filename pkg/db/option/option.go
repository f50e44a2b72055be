package option

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Option mutates a gorm statement before execution.
type Option interface {
	Apply(stmt *gorm.DB) *gorm.DB
}

type sortBy struct {
	clause string
}

func (s sortBy) Apply(stmt *gorm.DB) *gorm.DB {
	if s.clause == "" {
		return stmt
	}
	return stmt.Order(s.clause)
}

// WithSortBy orders results by a pre-validated clause.
func WithSortBy(clause string) Option {
	return sortBy{clause: clause}
}

// WithQuerySortBy builds an ORDER BY clause from user-supplied sort/order
// parameters, restricted to an allowlist of columns. Unknown columns fall
// back to created_at descending.
func WithQuerySortBy(column, order string, allowed map[string]bool) string {
	column = strings.TrimSpace(strings.ToLower(column))
	if column == "" || !allowed[column] {
		column = "created_at"
	}

	order = strings.TrimSpace(strings.ToUpper(order))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	return fmt.Sprintf("%s %s", column, order)
}
