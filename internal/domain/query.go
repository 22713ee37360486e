package domain

import (
	"strings"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// TaskSortColumns sortBy 可用字段 -> 列名
var TaskSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

var DefaultTaskSort = Sort{Field: "createdAt"}

// ParseSort 解析 "field:asc|desc"，方向缺省为 asc
func ParseSort(s string, columns map[string]string, def Sort) (Sort, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	field, dir, _ := strings.Cut(s, ":")
	if _, ok := columns[field]; !ok {
		return Sort{}, Invalid("sortBy", "unknown sort field "+field)
	}
	switch strings.ToLower(dir) {
	case "", "asc":
		return Sort{Field: field}, nil
	case "desc":
		return Sort{Field: field, Desc: true}, nil
	default:
		return Sort{}, Invalid("sortBy", "direction must be asc or desc")
	}
}

// NewPageOptions 归一化分页参数
func NewPageOptions(limit, skip int, sortBy string) (PageOptions, error) {
	if limit < 0 || limit > MaxPageLimit {
		return PageOptions{}, Invalid("limit", "should be between 1 and 100")
	}
	if skip < 0 {
		return PageOptions{}, Invalid("skip", "should not be negative")
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	s, err := ParseSort(sortBy, TaskSortColumns, DefaultTaskSort)
	if err != nil {
		return PageOptions{}, err
	}
	return PageOptions{Limit: limit, Skip: skip, Sort: s}, nil
}
