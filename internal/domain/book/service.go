package book

import (
	"context"
	"math"
	"net/url"

	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

// LatestLimit 最新图书列表的最大数量
const LatestLimit = 10

// Service 图书领域服务接口
// 设计说明:
// 1. 封装跨字段、跨记录的业务规则(ISBN规范化、系统字段保护、封面解析)
// 2. 单一字段约束由Validator负责,持久化由Repository负责
// 3. 计数与评分的读-改-写在事务内加行锁执行,同一ISBN的并发更新由数据库串行化
type Service interface {
	// GetBookByISBN 按ISBN查询
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// SearchBooks 按查询参数搜索,无结果返回ErrNoSearchResults
	SearchBooks(ctx context.Context, params url.Values) ([]*Book, error)

	// LatestBooks 按出版年份倒序的前10本
	LatestBooks(ctx context.Context) ([]*Book, error)

	// FeaturedBooks 推荐图书
	FeaturedBooks(ctx context.Context) ([]*Book, error)

	// Stats 聚合统计(集合为空时不报错)
	Stats(ctx context.Context) (*Stats, error)

	// PublishBook 创建图书
	PublishBook(ctx context.Context, book *Book) (*Book, error)

	// ReplaceBook 整体替换图书(系统维护字段与封面保持不变)
	ReplaceBook(ctx context.Context, isbn string, book *Book) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, isbn string) error

	// SetDownloadCount 设置下载次数
	SetDownloadCount(ctx context.Context, isbn string, count int) (*Book, error)

	// SetReadingListCount 设置加入书单次数
	SetReadingListCount(ctx context.Context, isbn string, count int) (*Book, error)

	// SubmitReview 提交评分,重新计算滑动平均
	SubmitReview(ctx context.Context, isbn string, score float64) (*Book, error)

	// OverwriteReviewStats 管理员直接覆盖评分统计
	OverwriteReviewStats(ctx context.Context, isbn string, totalRating float64, totalReviews int) (*Book, error)
}

// service 图书领域服务实现
type service struct {
	repo      Repository
	tx        Transactor
	covers    CoverResolver
	validator *Validator
}

// NewService 创建图书领域服务
func NewService(repo Repository, tx Transactor, covers CoverResolver, validator *Validator) Service {
	return &service{
		repo:      repo,
		tx:        tx,
		covers:    covers,
		validator: validator,
	}
}

func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	normalized, err := ParseISBN(isbn)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByISBN(ctx, normalized)
}

func (s *service) SearchBooks(ctx context.Context, params url.Values) ([]*Book, error) {
	filter, err := ParseFilter(params)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoSearchResults
	}
	return books, nil
}

func (s *service) LatestBooks(ctx context.Context) ([]*Book, error) {
	books, err := s.repo.Latest(ctx, LatestLimit)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoBooks
	}
	return books, nil
}

func (s *service) FeaturedBooks(ctx context.Context) ([]*Book, error) {
	books, err := s.repo.Featured(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoFeaturedBooks
	}
	return books, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// PublishBook 创建图书
// 业务规则:
// 1. ISBN先规范化,存储的始终是规范化后的ISBN
// 2. 系统维护的4个计数字段必须为0(非0是客户端错误,不静默覆盖)
// 3. 填充默认值后校验全部字段
// 4. ISBN已存在返回冲突(数据库唯一索引兜底并发创建)
// 5. 解析封面,失败时封面为空,不影响创建
func (s *service) PublishBook(ctx context.Context, book *Book) (*Book, error) {
	book.ISBN = NormalizeISBN(book.ISBN)

	if err := CheckSystemManaged(book); err != nil {
		return nil, err
	}

	book.ApplyDefaults()
	book.CoverImage = nil
	if err := s.validator.Check(book); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByISBN(ctx, book.ISBN)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrISBNDuplicate
	}

	book.CoverImage = s.covers.Resolve(ctx, book.ISBN)

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// ReplaceBook 整体替换图书
// 业务规则:
// 1. 请求中的计数字段和封面一律忽略,沿用已存储的值
// 2. ISBN变化时为新ISBN重新解析封面(在事务外执行,不在行锁期间发起外部调用)
// 3. 新ISBN与其他图书冲突返回冲突错误
func (s *service) ReplaceBook(ctx context.Context, isbn string, book *Book) (*Book, error) {
	current, err := ParseISBN(isbn)
	if err != nil {
		return nil, err
	}

	book.ISBN = NormalizeISBN(book.ISBN)
	book.DownloadCount, book.TotalRating, book.TotalReviews, book.InReadingLists = 0, 0, 0, 0
	book.CoverImage = nil
	book.ApplyDefaults()
	if err := s.validator.Check(book); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByISBN(ctx, current)
	if err != nil {
		return nil, err
	}

	isbnChanged := book.ISBN != existing.ISBN
	if isbnChanged {
		taken, err := s.repo.ExistsByISBN(ctx, book.ISBN)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrISBNDuplicate
		}
		book.CoverImage = s.covers.Resolve(ctx, book.ISBN)
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		locked, err := s.repo.LockByISBN(ctx, current)
		if err != nil {
			return err
		}

		book.ID = locked.ID
		book.DownloadCount = locked.DownloadCount
		book.TotalRating = locked.TotalRating
		book.TotalReviews = locked.TotalReviews
		book.InReadingLists = locked.InReadingLists
		book.CreatedAt = locked.CreatedAt
		if !isbnChanged {
			book.CoverImage = locked.CoverImage
		}

		return s.repo.Replace(ctx, current, book)
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (s *service) DeleteBook(ctx context.Context, isbn string) error {
	normalized, err := ParseISBN(isbn)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, normalized)
}

func (s *service) SetDownloadCount(ctx context.Context, isbn string, count int) (*Book, error) {
	return s.setCounter(ctx, isbn, "downloadCount", count, (*Book).SetDownloadCount)
}

func (s *service) SetReadingListCount(ctx context.Context, isbn string, count int) (*Book, error) {
	return s.setCounter(ctx, isbn, "inReadingLists", count, (*Book).SetReadingListCount)
}

func (s *service) setCounter(ctx context.Context, isbn, field string, count int, set func(*Book, int)) (*Book, error) {
	normalized, err := ParseISBN(isbn)
	if err != nil {
		return nil, err
	}
	if details := s.validator.ValidateCounter(field, count); len(details) > 0 {
		return nil, apperrors.ErrValidation.WithDetails(details...)
	}

	return s.mutate(ctx, normalized, func(b *Book) {
		set(b, count)
	})
}

// SubmitReview 提交评分
// 新评分与评分次数在同一事务、同一条UPDATE中写回,调用方看不到中间状态
func (s *service) SubmitReview(ctx context.Context, isbn string, score float64) (*Book, error) {
	normalized, err := ParseISBN(isbn)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(score) || score < MinScore || score > MaxScore {
		return nil, ErrInvalidScore
	}

	return s.mutate(ctx, normalized, func(b *Book) {
		b.ApplyReview(score)
	})
}

func (s *service) OverwriteReviewStats(ctx context.Context, isbn string, totalRating float64, totalReviews int) (*Book, error) {
	normalized, err := ParseISBN(isbn)
	if err != nil {
		return nil, err
	}
	if details := s.validator.ValidateReviewStats(totalRating, totalReviews); len(details) > 0 {
		return nil, apperrors.ErrValidation.WithDetails(details...)
	}

	return s.mutate(ctx, normalized, func(b *Book) {
		b.SetReviewStats(totalRating, totalReviews)
	})
}

// mutate 在事务中锁定图书行,修改后写回计数字段
func (s *service) mutate(ctx context.Context, isbn string, fn func(b *Book)) (*Book, error) {
	var updated *Book
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		b, err := s.repo.LockByISBN(ctx, isbn)
		if err != nil {
			return err
		}
		fn(b)
		if err := s.repo.SaveCounters(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

