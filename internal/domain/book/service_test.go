package book_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/catalogue/internal/domain/book"
	"github.com/xiebiao/catalogue/internal/domain/book/booktest"
	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

const coverURL = "https://covers.example.org/b/isbn/1234567891-L.jpg"

type fixture struct {
	repo   *booktest.Repository
	covers *booktest.CoverResolver
	svc    book.Service
}

func newFixture(t *testing.T, cover string, seed ...*book.Book) *fixture {
	t.Helper()
	repo := booktest.NewRepository(seed...)
	covers := booktest.NewCoverResolver(cover)
	return &fixture{
		repo:   repo,
		covers: covers,
		svc:    book.NewService(repo, &booktest.Transactor{}, covers, book.NewValidator()),
	}
}

func seeded(isbn string, mutate func(b *book.Book)) *book.Book {
	b := booktest.NewBook(isbn)
	b.ApplyDefaults()
	if mutate != nil {
		mutate(b)
	}
	return b
}

func TestService_PublishBook(t *testing.T) {
	ctx := context.Background()

	t.Run("默认值与封面", func(t *testing.T) {
		f := newFixture(t, coverURL)

		created, err := f.svc.PublishBook(ctx, booktest.NewBook("1234567891"))
		require.NoError(t, err)
		assert.Equal(t, book.FeaturedNone, created.FeaturedType)
		assert.Zero(t, created.DownloadCount)
		require.NotNil(t, created.CoverImage)
		assert.Equal(t, coverURL, *created.CoverImage)

		stored, err := f.svc.GetBookByISBN(ctx, "1234567891")
		require.NoError(t, err)
		assert.Equal(t, created.Title, stored.Title)
		assert.Equal(t, created.CoverImage, stored.CoverImage)
	})

	t.Run("封面解析失败不影响创建", func(t *testing.T) {
		f := newFixture(t, "")

		created, err := f.svc.PublishBook(ctx, booktest.NewBook("1234567891"))
		require.NoError(t, err)
		assert.Nil(t, created.CoverImage)
		assert.Equal(t, 1, f.repo.Len())
	})

	t.Run("ISBN规范化后存储", func(t *testing.T) {
		f := newFixture(t, "")

		created, err := f.svc.PublishBook(ctx, booktest.NewBook("978-0-306-40615-7"))
		require.NoError(t, err)
		assert.Equal(t, "9780306406157", created.ISBN)
		assert.Equal(t, []string{"9780306406157"}, f.covers.Calls)

		_, err = f.svc.GetBookByISBN(ctx, "978 0306 40615 7")
		assert.NoError(t, err)
	})

	t.Run("系统字段非0拒绝且不落库", func(t *testing.T) {
		f := newFixture(t, coverURL)
		b := booktest.NewBook("1234567891")
		b.TotalReviews = 3

		_, err := f.svc.PublishBook(ctx, b)
		assert.ErrorIs(t, err, apperrors.ErrInvalidParams)
		assert.Equal(t, 0, f.repo.Len())
		assert.Equal(t, 0, f.covers.CallCount())
	})

	t.Run("字段校验失败", func(t *testing.T) {
		f := newFixture(t, coverURL)
		b := booktest.NewBook("1234567891")
		b.Language = "ru"

		_, err := f.svc.PublishBook(ctx, b)
		require.ErrorIs(t, err, apperrors.ErrValidation)
		details := apperrors.GetAppError(err).Details
		require.Len(t, details, 1)
		assert.Equal(t, "language", details[0].Field)
		assert.Equal(t, book.ReasonEnum, details[0].Reason)
	})

	t.Run("重复ISBN冲突", func(t *testing.T) {
		f := newFixture(t, "")
		_, err := f.svc.PublishBook(ctx, booktest.NewBook("1234567891"))
		require.NoError(t, err)

		_, err = f.svc.PublishBook(ctx, booktest.NewBook("1-234-567-891"))
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
		assert.Equal(t, 1, f.repo.Len())
	})
}

func TestService_GetBookByISBN(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", seeded("1234567891", nil))

	_, err := f.svc.GetBookByISBN(ctx, "123")
	assert.ErrorIs(t, err, book.ErrInvalidISBN)

	_, err = f.svc.GetBookByISBN(ctx, "9780306406157")
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	b, err := f.svc.GetBookByISBN(ctx, "1234567891")
	require.NoError(t, err)
	assert.Equal(t, "New Book", b.Title)
}

func TestService_SearchBooks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "",
		seeded("1234567891", func(b *book.Book) { b.Author = "J.K. Rowling"; b.Categories = []string{"Fantasy"} }),
		seeded("9780306406157", func(b *book.Book) { b.Author = "Dan Brown"; b.Categories = []string{"Mystery"} }),
	)

	books, err := f.svc.SearchBooks(ctx, url.Values{"author": {"ROWLING"}})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "1234567891", books[0].ISBN)

	books, err = f.svc.SearchBooks(ctx, url.Values{})
	require.NoError(t, err)
	assert.Len(t, books, 2)

	_, err = f.svc.SearchBooks(ctx, url.Values{"category": {"Romance"}})
	assert.ErrorIs(t, err, book.ErrNoSearchResults)
	assert.Equal(t, "No books found with the given search criteria.", apperrors.GetAppError(err).Message)

	_, err = f.svc.SearchBooks(ctx, url.Values{"author": {"brown"}, "foo": {"bar"}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidQuery)
	assert.Equal(t, []string{"foo"}, apperrors.GetAppError(err).InvalidParameters)
}

func TestService_LatestBooks(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, "")
	_, err := f.svc.LatestBooks(ctx)
	assert.ErrorIs(t, err, book.ErrNoBooks)

	var seed []*book.Book
	isbns := []string{
		"1000000001", "1000000002", "1000000003", "1000000004", "1000000005", "1000000006",
		"1000000007", "1000000008", "1000000009", "1000000010", "1000000011", "1000000012",
	}
	for i, isbn := range isbns {
		year := 2000 + i
		seed = append(seed, seeded(isbn, func(b *book.Book) { b.PublicationYear = year }))
	}
	f = newFixture(t, "", seed...)

	books, err := f.svc.LatestBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, book.LatestLimit)
	assert.Equal(t, 2011, books[0].PublicationYear)
	for i := 1; i < len(books); i++ {
		assert.GreaterOrEqual(t, books[i-1].PublicationYear, books[i].PublicationYear)
	}
}

func TestService_FeaturedBooks(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, "", seeded("1234567891", nil))
	_, err := f.svc.FeaturedBooks(ctx)
	assert.ErrorIs(t, err, book.ErrNoFeaturedBooks)

	f = newFixture(t, "",
		seeded("1234567891", nil),
		seeded("9780306406157", func(b *book.Book) { b.FeaturedType = book.FeaturedAwardWinner }),
	)
	books, err := f.svc.FeaturedBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "9780306406157", books[0].ISBN)
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("空集合", func(t *testing.T) {
		f := newFixture(t, "")
		stats, err := f.svc.Stats(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.Count)
		assert.Zero(t, stats.DistinctAuthors)
		assert.Nil(t, stats.MostCommonCategory)
		assert.Nil(t, stats.MostCommonAuthor)
	})

	t.Run("最常见分类与作者", func(t *testing.T) {
		f := newFixture(t, "",
			seeded("1000000001", func(b *book.Book) { b.Author = "Rowling"; b.Categories = []string{"Fantasy", "Adventure"} }),
			seeded("1000000002", func(b *book.Book) { b.Author = "Rowling"; b.Categories = []string{"Fantasy"} }),
			seeded("1000000003", func(b *book.Book) { b.Author = "Brown"; b.Categories = []string{"Mystery"} }),
		)
		stats, err := f.svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.Count)
		assert.Equal(t, int64(2), stats.DistinctAuthors)
		require.NotNil(t, stats.MostCommonCategory)
		assert.Equal(t, "Fantasy", *stats.MostCommonCategory)
		require.NotNil(t, stats.MostCommonAuthor)
		assert.Equal(t, "Rowling", *stats.MostCommonAuthor)
	})

	t.Run("并列时取字典序最小", func(t *testing.T) {
		f := newFixture(t, "",
			seeded("1000000001", func(b *book.Book) { b.Author = "Zola"; b.Categories = []string{"Drama"} }),
			seeded("1000000002", func(b *book.Book) { b.Author = "Austen"; b.Categories = []string{"Classic"} }),
		)
		stats, err := f.svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Classic", *stats.MostCommonCategory)
		assert.Equal(t, "Austen", *stats.MostCommonAuthor)
	})
}

func TestService_DeleteBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", seeded("1234567891", nil))

	assert.ErrorIs(t, f.svc.DeleteBook(ctx, "bad"), book.ErrInvalidISBN)
	require.NoError(t, f.svc.DeleteBook(ctx, "1-234567-891"))
	assert.Equal(t, 0, f.repo.Len())

	// 重复删除返回不存在
	assert.ErrorIs(t, f.svc.DeleteBook(ctx, "1234567891"), book.ErrBookNotFound)
}

func TestService_ReplaceBook(t *testing.T) {
	ctx := context.Background()
	oldCover := "https://covers.example.org/old.jpg"
	existing := func() *book.Book {
		return seeded("1234567891", func(b *book.Book) {
			b.DownloadCount = 15000
			b.TotalRating = 4.8
			b.TotalReviews = 1500
			b.InReadingLists = 300
			b.CoverImage = &oldCover
		})
	}

	t.Run("保留计数与封面", func(t *testing.T) {
		f := newFixture(t, coverURL, existing())
		replacement := booktest.NewBook("1234567891")
		replacement.Title = "Renamed Book"
		replacement.DownloadCount = 1
		replacement.TotalRating = 1
		injected := "https://evil.example.org/cover.jpg"
		replacement.CoverImage = &injected

		updated, err := f.svc.ReplaceBook(ctx, "1234567891", replacement)
		require.NoError(t, err)
		assert.Equal(t, "Renamed Book", updated.Title)
		assert.Equal(t, 15000, updated.DownloadCount)
		assert.Equal(t, 4.8, updated.TotalRating)
		assert.Equal(t, 1500, updated.TotalReviews)
		assert.Equal(t, 300, updated.InReadingLists)
		assert.Equal(t, oldCover, *updated.CoverImage)
		assert.Equal(t, 0, f.covers.CallCount())

		stored, err := f.repo.FindByISBN(ctx, "1234567891")
		require.NoError(t, err)
		assert.Equal(t, "Renamed Book", stored.Title)
		assert.Equal(t, 15000, stored.DownloadCount)
	})

	t.Run("ISBN变化时重新解析封面", func(t *testing.T) {
		f := newFixture(t, coverURL, existing())

		updated, err := f.svc.ReplaceBook(ctx, "1234567891", booktest.NewBook("978-0-306-40615-7"))
		require.NoError(t, err)
		assert.Equal(t, "9780306406157", updated.ISBN)
		assert.Equal(t, coverURL, *updated.CoverImage)
		assert.Equal(t, []string{"9780306406157"}, f.covers.Calls)
		assert.Equal(t, 15000, updated.DownloadCount)

		_, err = f.repo.FindByISBN(ctx, "1234567891")
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("新ISBN冲突", func(t *testing.T) {
		f := newFixture(t, "", existing(), seeded("9780306406157", nil))

		_, err := f.svc.ReplaceBook(ctx, "1234567891", booktest.NewBook("9780306406157"))
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
	})

	t.Run("目标不存在", func(t *testing.T) {
		f := newFixture(t, "")
		_, err := f.svc.ReplaceBook(ctx, "1234567891", booktest.NewBook("1234567891"))
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("目标ISBN格式错误", func(t *testing.T) {
		f := newFixture(t, "")
		_, err := f.svc.ReplaceBook(ctx, "abc", booktest.NewBook("1234567891"))
		assert.ErrorIs(t, err, book.ErrInvalidISBN)
	})

	t.Run("替换内容校验失败", func(t *testing.T) {
		f := newFixture(t, "", existing())
		replacement := booktest.NewBook("1234567891")
		replacement.Description = "too short"

		_, err := f.svc.ReplaceBook(ctx, "1234567891", replacement)
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, "description", apperrors.GetAppError(err).Details[0].Field)
	})
}

func TestService_SetCounters(t *testing.T) {
	ctx := context.Background()

	t.Run("下载次数覆盖写", func(t *testing.T) {
		f := newFixture(t, "", seeded("1234567891", func(b *book.Book) { b.DownloadCount = 7 }))

		updated, err := f.svc.SetDownloadCount(ctx, "1234567891", 42)
		require.NoError(t, err)
		assert.Equal(t, 42, updated.DownloadCount)

		stored, _ := f.repo.FindByISBN(ctx, "1234567891")
		assert.Equal(t, 42, stored.DownloadCount)
	})

	t.Run("负数返回min校验错误", func(t *testing.T) {
		f := newFixture(t, "", seeded("1234567891", nil))

		_, err := f.svc.SetDownloadCount(ctx, "1234567891", -10)
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t,
			[]apperrors.FieldError{{Field: "downloadCount", Reason: book.ReasonMin, Value: -10}},
			apperrors.GetAppError(err).Details)
	})

	t.Run("书单次数", func(t *testing.T) {
		f := newFixture(t, "", seeded("1234567891", nil))

		updated, err := f.svc.SetReadingListCount(ctx, "1234567891", 3)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.InReadingLists)

		_, err = f.svc.SetReadingListCount(ctx, "1234567891", -1)
		assert.Equal(t, "inReadingLists", apperrors.GetAppError(err).Details[0].Field)
	})

	t.Run("不存在与格式错误", func(t *testing.T) {
		f := newFixture(t, "")
		_, err := f.svc.SetDownloadCount(ctx, "1234567891", 1)
		assert.ErrorIs(t, err, book.ErrBookNotFound)

		_, err = f.svc.SetReadingListCount(ctx, "12", 1)
		assert.ErrorIs(t, err, book.ErrInvalidISBN)
	})
}

func TestService_SubmitReview(t *testing.T) {
	ctx := context.Background()

	t.Run("两次评分", func(t *testing.T) {
		f := newFixture(t, "", seeded("1234567891", nil))

		_, err := f.svc.SubmitReview(ctx, "1234567891", 5.0)
		require.NoError(t, err)
		updated, err := f.svc.SubmitReview(ctx, "1234567891", 4.0)
		require.NoError(t, err)
		assert.InDelta(t, 4.5, updated.TotalRating, 1e-9)
		assert.Equal(t, 2, updated.TotalReviews)

		stored, _ := f.repo.FindByISBN(ctx, "1234567891")
		assert.InDelta(t, 4.5, stored.TotalRating, 1e-9)
		assert.Equal(t, 2, stored.TotalReviews)
	})

	t.Run("评分越界", func(t *testing.T) {
		f := newFixture(t, "", seeded("1234567891", nil))
		for _, score := range []float64{-0.1, 5.01, 100} {
			_, err := f.svc.SubmitReview(ctx, "1234567891", score)
			assert.ErrorIs(t, err, book.ErrInvalidScore)
		}
	})

	t.Run("不存在", func(t *testing.T) {
		f := newFixture(t, "")
		_, err := f.svc.SubmitReview(ctx, "1234567891", 3)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("并发提交不丢失更新", func(t *testing.T) {
		f := newFixture(t, "", seeded("1234567891", nil))

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = f.svc.SubmitReview(ctx, "1234567891", 4)
			}()
		}
		wg.Wait()

		stored, _ := f.repo.FindByISBN(ctx, "1234567891")
		assert.Equal(t, 20, stored.TotalReviews)
		assert.InDelta(t, 4.0, stored.TotalRating, 1e-9)
	})
}

func TestService_OverwriteReviewStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", seeded("1234567891", func(b *book.Book) {
		b.TotalRating = 2
		b.TotalReviews = 2
	}))

	updated, err := f.svc.OverwriteReviewStats(ctx, "1234567891", 4.8, 1500)
	require.NoError(t, err)
	assert.Equal(t, 4.8, updated.TotalRating)
	assert.Equal(t, 1500, updated.TotalReviews)

	_, err = f.svc.OverwriteReviewStats(ctx, "1234567891", 6, 10)
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, book.ReasonMax, apperrors.GetAppError(err).Details[0].Reason)
}

func TestService_RepositoryFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "", seeded("1234567891", nil))
	dbErr := errors.New("connection refused")
	f.repo.Err = dbErr

	_, err := f.svc.GetBookByISBN(ctx, "1234567891")
	assert.ErrorIs(t, err, dbErr)

	_, err = f.svc.PublishBook(ctx, booktest.NewBook("9780306406157"))
	assert.ErrorIs(t, err, dbErr)

	_, err = f.svc.SubmitReview(ctx, "1234567891", 3)
	assert.ErrorIs(t, err, dbErr)
}
