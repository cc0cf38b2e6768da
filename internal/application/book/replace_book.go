package book

import (
	"context"

	"github.com/xiebiao/catalogue/internal/domain/book"
)

// ReplaceBookUseCase 整体替换图书用例
type ReplaceBookUseCase struct {
	bookService book.Service
}

// NewReplaceBookUseCase 创建替换用例
func NewReplaceBookUseCase(bookService book.Service) *ReplaceBookUseCase {
	return &ReplaceBookUseCase{
		bookService: bookService,
	}
}

// ReplaceBookRequest 替换请求DTO
// 不包含计数字段和封面,这些字段始终沿用已存储的值
type ReplaceBookRequest struct {
	ISBN            string
	Title           string
	Author          string
	PublicationYear int
	Description     string
	Language        string
	TotalPages      int
	Categories      []string
	FeaturedType    string
}

// Execute 执行替换用例
// isbn是路径中的当前ISBN,req.ISBN可以与之不同(修改ISBN)
func (uc *ReplaceBookUseCase) Execute(ctx context.Context, isbn string, req ReplaceBookRequest) (result *BookResult, err error) {
	ctx, finish := begin(ctx, opReplace)
	defer func() { finish(err) }()

	b, err := uc.bookService.ReplaceBook(ctx, isbn, &book.Book{
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		Description:     req.Description,
		Language:        req.Language,
		TotalPages:      req.TotalPages,
		Categories:      req.Categories,
		FeaturedType:    req.FeaturedType,
	})
	if err != nil {
		return nil, err
	}
	return toBookResult(b), nil
}
