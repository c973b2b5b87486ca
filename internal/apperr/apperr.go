// Package apperr 定义聚合存储对外暴露的统一错误分类。
// 调用方通过 errors.Is 判断类别，通过 Field 获取冲突字段。
package apperr

import (
	"errors"
	"fmt"
)

// 错误类别约定：
// - ErrNotFound：引用的父实体/实体不存在
// - ErrOwnershipViolation：操作者无权访问该简历
// - ErrUniquenessViolation：slug/标题/章节类型/技术等唯一性冲突
// - ErrDateRangeInvalid：结束日期早于开始日期
// - ErrValidationFailed：标量越界（如 gpa、proficiency）
var (
	ErrNotFound            = errors.New("not found")
	ErrOwnershipViolation  = errors.New("ownership violation")
	ErrUniquenessViolation = errors.New("uniqueness violation")
	ErrDateRangeInvalid    = errors.New("date range invalid")
	ErrValidationFailed    = errors.New("validation failed")
)

// FieldError 在类别之上附加冲突字段，便于调用方修正输入。
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Unique 构造指定字段的唯一性冲突错误。
func Unique(field string) error {
	return &FieldError{Field: field, Err: ErrUniquenessViolation}
}

// Invalid 构造指定字段的校验失败错误。
func Invalid(field string) error {
	return &FieldError{Field: field, Err: ErrValidationFailed}
}

// DateRange 构造指定字段的日期区间错误。
func DateRange(field string) error {
	return &FieldError{Field: field, Err: ErrDateRangeInvalid}
}

// FieldOf 提取错误链中的冲突字段，若无则返回空串。
func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
