package persistence

import (
	"regexp"
	"strings"

	"github.com/gestion/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Order columns come from query strings; only plain identifiers are
// allowed to prevent SQL injection through ORDER BY.
var orderColumnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func sanitizeOrderColumn(column string) string {
	column = strings.TrimSpace(strings.ToLower(column))
	if orderColumnPattern.MatchString(column) {
		return column
	}
	return ""
}

// applyListOptions applies ordering and pagination from a filter.
// defaultOrder is used when the filter carries no valid order column.
func applyListOptions(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if column := sanitizeOrderColumn(filter.OrderBy); column != "" {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		query = query.Order(column + " " + dir)
	} else if defaultOrder != "" {
		query = query.Order(defaultOrder)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query
}
