package book

import (
	"context"
	"time"

	"github.com/xiebiao/catalogue/internal/domain/book"
	"github.com/xiebiao/catalogue/pkg/metrics"
	"github.com/xiebiao/catalogue/pkg/tracing"
)

const tracerName = "application/book"

// 用例名称(metrics标签与span名称)
const (
	opPublish         = "publish"
	opReplace         = "replace"
	opDelete          = "delete"
	opGet             = "get"
	opSearch          = "search"
	opLatest          = "latest"
	opFeatured        = "featured"
	opStats           = "stats"
	opSetDownloads    = "set_downloads"
	opSetReadingLists = "set_reading_lists"
	opSubmitReview    = "submit_review"
	opReviewStats     = "overwrite_review_stats"
)

// BookResult 图书响应DTO
// 设计说明: 字段名与请求体一致(camelCase),coverImage为空时输出null
type BookResult struct {
	ISBN            string   `json:"isbn"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	PublicationYear int      `json:"publicationYear"`
	Description     string   `json:"description"`
	Language        string   `json:"language"`
	TotalPages      int      `json:"totalPages"`
	Categories      []string `json:"categories"`
	FeaturedType    string   `json:"featuredType"`
	DownloadCount   int      `json:"downloadCount"`
	TotalRating     float64  `json:"totalRating"`
	TotalReviews    int      `json:"totalReviews"`
	InReadingLists  int      `json:"inReadingLists"`
	CoverImage      *string  `json:"coverImage"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// StatsResult 聚合统计响应DTO
type StatsResult struct {
	Count              int64   `json:"count"`
	DistinctAuthors    int64   `json:"distinctAuthors"`
	MostCommonCategory *string `json:"mostCommonCategory"`
	MostCommonAuthor   *string `json:"mostCommonAuthor"`
}

func toBookResult(b *book.Book) *BookResult {
	categories := b.Categories
	if categories == nil {
		categories = []string{}
	}
	return &BookResult{
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		Description:     b.Description,
		Language:        b.Language,
		TotalPages:      b.TotalPages,
		Categories:      categories,
		FeaturedType:    b.FeaturedType,
		DownloadCount:   b.DownloadCount,
		TotalRating:     b.TotalRating,
		TotalReviews:    b.TotalReviews,
		InReadingLists:  b.InReadingLists,
		CoverImage:      b.CoverImage,
		CreatedAt:       formatTime(b.CreatedAt),
		UpdatedAt:       formatTime(b.UpdatedAt),
	}
}

func toBookResults(books []*book.Book) []*BookResult {
	results := make([]*BookResult, 0, len(books))
	for _, b := range books {
		results = append(results, toBookResult(b))
	}
	return results
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// begin 开始一次用例执行
// 返回的finish结束span并记录次数与耗时
func begin(ctx context.Context, operation string) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, operation)
	return ctx, func(err error) {
		tracing.EndSpan(span, err)
		metrics.ObserveOperation(operation, err, time.Since(start).Seconds())
	}
}
