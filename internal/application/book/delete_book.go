package book

import (
	"context"

	"github.com/xiebiao/catalogue/internal/domain/book"
)

// DeleteBookUseCase 删除图书用例
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
	}
}

// Execute 执行删除用例
func (uc *DeleteBookUseCase) Execute(ctx context.Context, isbn string) (err error) {
	ctx, finish := begin(ctx, opDelete)
	defer func() { finish(err) }()

	return uc.bookService.DeleteBook(ctx, isbn)
}
