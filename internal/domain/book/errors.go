package book

import (
	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

// 图书领域错误定义
// 设计说明: 提示信息直接返回给调用方,使用英文
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found.")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "A book with this ISBN already exists.")

	// ErrInvalidISBN ISBN格式错误
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidFormat, "Invalid ISBN format. Must be ISBN-10 or ISBN-13.")

	// ErrSystemManagedField 创建时携带了非0的系统维护字段
	ErrSystemManagedField = apperrors.New(apperrors.ErrCodeInvalidParams, "System-managed fields cannot be set on creation.")

	// ErrInvalidScore 评分缺失、非数字或不在[0,5]内
	ErrInvalidScore = apperrors.New(apperrors.ErrCodeInvalidParams, "Score must be a number between 0 and 5.")

	// 查询无结果(返回404而不是空列表)
	ErrNoSearchResults = apperrors.New(apperrors.ErrCodeNoResults, "No books found with the given search criteria.")
	ErrNoBooks         = apperrors.New(apperrors.ErrCodeNoResults, "No books found.")
	ErrNoFeaturedBooks = apperrors.New(apperrors.ErrCodeNoResults, "No featured books found.")
)
