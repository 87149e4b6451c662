// Package dbscope turns a query.State into gorm scopes.
package dbscope

import (
	"sort"
	"strings"

	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"

	"gorm.io/gorm"
)

// Paginate applies LIMIT/OFFSET for the state's page.
func Paginate(s query.State) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(s.Offset()).Limit(query.ClampLimit(s.Limit))
	}
}

// Search matches the term case-insensitively against every column with OR.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			clauses[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// Sort orders by the column mapped from sortBy; unknown fields use fallback.
func Sort(sortBy, order string, columns map[string]string, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		col, ok := columns[sortBy]
		if !ok {
			col = fallback
		}
		return db.Order(col + " " + query.NormalizeOrder(order))
	}
}

// Filters adds an equality predicate for each known filter key, in key order.
func Filters(filters map[string]string, columns map[string]string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		keys := make([]string, 0, len(filters))
		for k := range filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			col, ok := columns[key]
			value := filters[key]
			if !ok || value == "" {
				continue
			}
			db = db.Where(col+" = ?", value)
		}
		return db
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
