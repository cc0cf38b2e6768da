package book

import (
	"context"

	"github.com/xiebiao/catalogue/internal/domain/book"
)

// PublishBookUseCase 图书上架用例
// 设计说明:
// 1. 应用层负责用例编排,业务规则由领域服务负责
// 2. 输入输出使用DTO,与HTTP层解耦
type PublishBookUseCase struct {
	bookService book.Service
}

// NewPublishBookUseCase 创建上架用例
func NewPublishBookUseCase(bookService book.Service) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookService: bookService,
	}
}

// PublishBookRequest 上架请求DTO
// 计数字段保留在请求中,由领域服务拒绝非0值
type PublishBookRequest struct {
	ISBN            string
	Title           string
	Author          string
	PublicationYear int
	Description     string
	Language        string
	TotalPages      int
	Categories      []string
	FeaturedType    string
	DownloadCount   int
	TotalRating     float64
	TotalReviews    int
	InReadingLists  int
}

// Execute 执行上架用例
func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (result *BookResult, err error) {
	ctx, finish := begin(ctx, opPublish)
	defer func() { finish(err) }()

	b, err := uc.bookService.PublishBook(ctx, &book.Book{
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		Description:     req.Description,
		Language:        req.Language,
		TotalPages:      req.TotalPages,
		Categories:      req.Categories,
		FeaturedType:    req.FeaturedType,
		DownloadCount:   req.DownloadCount,
		TotalRating:     req.TotalRating,
		TotalReviews:    req.TotalReviews,
		InReadingLists:  req.InReadingLists,
	})
	if err != nil {
		return nil, err
	}
	return toBookResult(b), nil
}
