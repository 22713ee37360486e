package repo

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"go-task-manager/internal/domain"
)

// take 把单行查询转换成 Result：无记录 → Absent，其余错误 → Failure
func take[T any](q *gorm.DB, what string) domain.Result[T] {
	var v T
	err := q.Take(&v).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.Absent[T]()
	case err != nil:
		return domain.Failure[T](fmt.Errorf("%s: %w", what, err))
	}
	return domain.Success(v)
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey（需要 TranslateError），三种驱动的报错文本都能识别
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
