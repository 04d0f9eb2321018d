package persistence

import (
	"regexp"
	"strings"

	"github.com/plantlease/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var safeColumnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// applyFilter applies pagination and ordering from a shared.Filter.
// The order column is validated against a conservative identifier
// pattern; anything else falls back to created_at.
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := filter.OrderBy
	if orderBy == "" || !safeColumnPattern.MatchString(orderBy) {
		orderBy = "created_at"
	}
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}

	return query.Order(orderBy + " " + orderDir)
}
