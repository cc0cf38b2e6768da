package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（0表示成功），HTTP状态码由错误码推导
// 2. Message是提示信息
// 3. Data是业务数据，成功时返回
// 4. Details/InvalidParameters只在校验失败、非法查询参数时出现
type Response struct {
	Code              int                    `json:"code"`
	Message           string                 `json:"message"`
	Data              interface{}            `json:"data,omitempty"`
	Details           map[string]FieldDetail `json:"details,omitempty"`
	InvalidParameters []string               `json:"invalidParameters,omitempty"`
}

// FieldDetail 字段级校验详情（details按字段名索引）
type FieldDetail struct {
	Reason string      `json:"reason"`
	Value  interface{} `json:"value"`
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 成功响应并自定义提示信息
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := uc.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只记录日志，不返回给客户端
	if appErr.Err != nil || appErr.HTTPStatus() >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("code", appErr.Code),
			zap.Error(err),
		)
	}
	_ = c.Error(err)

	resp := Response{
		Code:              appErr.Code,
		Message:           appErr.Message,
		InvalidParameters: appErr.InvalidParameters,
	}
	if appErr.HTTPStatus() >= http.StatusInternalServerError {
		resp.Message = apperrors.ErrInternal.Message
	}
	if len(appErr.Details) > 0 {
		resp.Details = make(map[string]FieldDetail, len(appErr.Details))
		for _, d := range appErr.Details {
			resp.Details[d.Field] = FieldDetail{Reason: d.Reason, Value: d.Value}
		}
	}

	c.JSON(appErr.HTTPStatus(), resp)
}

// Abort 错误响应并终止后续Handler（供中间件使用）
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
