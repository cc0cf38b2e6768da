package book

import (
	"context"
	"net/url"

	"github.com/xiebiao/catalogue/internal/domain/book"
)

// QueryBooksUseCase 图书查询用例(只读)
// 包含: 按ISBN查询、搜索、最新、推荐、聚合统计
type QueryBooksUseCase struct {
	bookService book.Service
}

// NewQueryBooksUseCase 创建查询用例
func NewQueryBooksUseCase(bookService book.Service) *QueryBooksUseCase {
	return &QueryBooksUseCase{
		bookService: bookService,
	}
}

// GetByISBN 按ISBN查询
func (uc *QueryBooksUseCase) GetByISBN(ctx context.Context, isbn string) (result *BookResult, err error) {
	ctx, finish := begin(ctx, opGet)
	defer func() { finish(err) }()

	b, err := uc.bookService.GetBookByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return toBookResult(b), nil
}

// Search 按查询参数搜索
// 没有结果时返回404错误,不返回空列表
func (uc *QueryBooksUseCase) Search(ctx context.Context, params url.Values) (results []*BookResult, err error) {
	ctx, finish := begin(ctx, opSearch)
	defer func() { finish(err) }()

	books, err := uc.bookService.SearchBooks(ctx, params)
	if err != nil {
		return nil, err
	}
	return toBookResults(books), nil
}

// Latest 最新出版的图书
func (uc *QueryBooksUseCase) Latest(ctx context.Context) (results []*BookResult, err error) {
	ctx, finish := begin(ctx, opLatest)
	defer func() { finish(err) }()

	books, err := uc.bookService.LatestBooks(ctx)
	if err != nil {
		return nil, err
	}
	return toBookResults(books), nil
}

// Featured 推荐图书
func (uc *QueryBooksUseCase) Featured(ctx context.Context) (results []*BookResult, err error) {
	ctx, finish := begin(ctx, opFeatured)
	defer func() { finish(err) }()

	books, err := uc.bookService.FeaturedBooks(ctx)
	if err != nil {
		return nil, err
	}
	return toBookResults(books), nil
}

// Stats 聚合统计
func (uc *QueryBooksUseCase) Stats(ctx context.Context) (result *StatsResult, err error) {
	ctx, finish := begin(ctx, opStats)
	defer func() { finish(err) }()

	stats, err := uc.bookService.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsResult{
		Count:              stats.Count,
		DistinctAuthors:    stats.DistinctAuthors,
		MostCommonCategory: stats.MostCommonCategory,
		MostCommonAuthor:   stats.MostCommonAuthor,
	}, nil
}
