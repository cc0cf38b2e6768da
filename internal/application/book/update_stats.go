package book

import (
	"context"

	"github.com/xiebiao/catalogue/internal/domain/book"
	"github.com/xiebiao/catalogue/pkg/metrics"
)

// UpdateStatsUseCase 计数与评分更新用例
// 设计说明:
// 1. 下载次数、书单次数是覆盖写,不是递增
// 2. 提交评分重新计算滑动平均,管理员可以直接覆盖评分统计
// 3. 读-改-写在领域服务的事务中完成
type UpdateStatsUseCase struct {
	bookService book.Service
}

// NewUpdateStatsUseCase 创建计数更新用例
func NewUpdateStatsUseCase(bookService book.Service) *UpdateStatsUseCase {
	return &UpdateStatsUseCase{
		bookService: bookService,
	}
}

// SetDownloads 设置下载次数
func (uc *UpdateStatsUseCase) SetDownloads(ctx context.Context, isbn string, count int) (result *BookResult, err error) {
	ctx, finish := begin(ctx, opSetDownloads)
	defer func() { finish(err) }()

	b, err := uc.bookService.SetDownloadCount(ctx, isbn, count)
	if err != nil {
		return nil, err
	}
	return toBookResult(b), nil
}

// SetReadingLists 设置加入书单次数
func (uc *UpdateStatsUseCase) SetReadingLists(ctx context.Context, isbn string, count int) (result *BookResult, err error) {
	ctx, finish := begin(ctx, opSetReadingLists)
	defer func() { finish(err) }()

	b, err := uc.bookService.SetReadingListCount(ctx, isbn, count)
	if err != nil {
		return nil, err
	}
	return toBookResult(b), nil
}

// SubmitReview 提交评分
func (uc *UpdateStatsUseCase) SubmitReview(ctx context.Context, isbn string, score float64) (result *BookResult, err error) {
	ctx, finish := begin(ctx, opSubmitReview)
	defer func() { finish(err) }()

	b, err := uc.bookService.SubmitReview(ctx, isbn, score)
	if err != nil {
		return nil, err
	}
	metrics.ReviewsSubmittedTotal.Inc()
	return toBookResult(b), nil
}

// OverwriteReviewStats 覆盖评分统计(管理员)
func (uc *UpdateStatsUseCase) OverwriteReviewStats(ctx context.Context, isbn string, totalRating float64, totalReviews int) (result *BookResult, err error) {
	ctx, finish := begin(ctx, opReviewStats)
	defer func() { finish(err) }()

	b, err := uc.bookService.OverwriteReviewStats(ctx, isbn, totalRating, totalReviews)
	if err != nil {
		return nil, err
	}
	return toBookResult(b), nil
}
