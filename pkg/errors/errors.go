package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，HTTP状态码由Code推导（40401 → 404）
// 2. Message是返回给调用方的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
// 4. Details/InvalidParameters携带字段级校验信息与非法查询参数
type AppError struct {
	Code              int          `json:"code"`
	Message           string       `json:"message"`
	Err               error        `json:"-"`
	Details           []FieldError `json:"-"`
	InvalidParameters []string     `json:"-"`
}

// FieldError 单个字段的校验失败信息
// Reason是机器可读的原因码：required、minlength、maxlength、min、max、enum、pattern、type
type FieldError struct {
	Field  string      `json:"field"`
	Reason string      `json:"reason"`
	Value  interface{} `json:"value"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较
// 预定义错误通过WithDetails等方法复制后，仍能被errors.Is识别
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// HTTPStatus 由业务错误码推导HTTP状态码
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if status < 400 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// WithDetails 返回附带字段详情的副本（不修改预定义错误）
func (e *AppError) WithDetails(details ...FieldError) *AppError {
	cp := *e
	cp.Details = append([]FieldError(nil), details...)
	return &cp
}

// WithInvalidParameters 返回附带非法查询参数列表的副本
func (e *AppError) WithInvalidParameters(keys ...string) *AppError {
	cp := *e
	cp.InvalidParameters = append([]string(nil), keys...)
	return &cp
}

// WithMessage 返回替换提示信息的副本
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithCause 返回附带底层错误的副本
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：错误码前三位即HTTP状态码
// - 400xx: 参数、格式、校验错误
// - 401xx/403xx: 认证与授权
// - 404xx: 资源不存在
// - 409xx: 唯一键冲突
// - 500xx: 服务端错误（数据库异常等）

const (
	// 系统级错误码
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 请求错误
	ErrCodeInvalidParams = 40000 // 缺少字段、类型错误、取值越界
	ErrCodeInvalidFormat = 40001 // ISBN格式错误
	ErrCodeValidation    = 40002 // 字段级校验失败(带details)
	ErrCodeInvalidQuery  = 40003 // 未知查询参数
	ErrCodeMalformedBody = 40004 // 请求体不是合法JSON

	// 认证授权
	ErrCodeUnauthorized = 40100 // 未携带Token
	ErrCodeForbidden    = 40300 // 角色无权限
	ErrCodeInvalidToken = 40301 // Token无效
	ErrCodeTokenExpired = 40302 // Token过期
	ErrCodeTokenRevoked = 40303 // Token已被吊销
	ErrCodeMissingRole  = 40304 // Token中没有角色信息

	// 资源错误
	ErrCodeBookNotFound = 40401 // 图书不存在
	ErrCodeNoResults    = 40402 // 查询无结果

	// 冲突
	ErrCodeISBNDuplicate = 40901 // ISBN已存在
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "Unexpected server error occurred.")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database error.")
	ErrRedisError    = New(ErrCodeRedisError, "Token store unavailable.")

	// 请求错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "Invalid input.")
	ErrValidation    = New(ErrCodeValidation, "Validation failed.")
	ErrInvalidQuery  = New(ErrCodeInvalidQuery, "Invalid query parameters.")
	ErrMalformedBody = New(ErrCodeMalformedBody, "Malformed JSON in request body.")

	// 认证授权
	ErrUnauthorized = New(ErrCodeUnauthorized, "Token not provided.")
	ErrInvalidToken = New(ErrCodeInvalidToken, "Invalid or expired token.")
	ErrTokenExpired = New(ErrCodeTokenExpired, "Invalid or expired token.")
	ErrTokenRevoked = New(ErrCodeTokenRevoked, "Invalid or expired token.")
	ErrMissingRole  = New(ErrCodeMissingRole, "Access denied: No role information found in token.")
	ErrForbidden    = New(ErrCodeForbidden, "Access denied: You do not have the necessary permissions.")
)

// =========================================
// 辅助函数
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}
