package handler

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/catalogue/internal/domain/book"
	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

// reasonType 字段类型不匹配
const reasonType = "type"

// bindJSON 解析JSON请求体
// 1. 语法错误、空请求体 → ErrMalformedBody
// 2. 字段类型不匹配 → ErrInvalidParams,details中带字段名
func bindJSON(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.ErrInvalidParams.WithDetails(apperrors.FieldError{
			Field:  typeErr.Field,
			Reason: reasonType,
			Value:  typeErr.Value,
		})
	}
	return apperrors.ErrMalformedBody
}

// requiredField 缺少必填字段
func requiredField(field string) error {
	return apperrors.ErrInvalidParams.
		WithMessage(field + " is required and must be a number.").
		WithDetails(apperrors.FieldError{Field: field, Reason: book.ReasonRequired})
}
