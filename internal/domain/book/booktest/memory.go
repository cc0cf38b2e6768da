// Package booktest 提供图书领域的内存实现,供service和use case单元测试使用
package booktest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xiebiao/catalogue/internal/domain/book"
)

// Repository 内存版图书仓储
// 返回的都是副本,修改返回值不会影响存储
type Repository struct {
	mu     sync.Mutex
	books  map[string]*book.Book
	nextID uint

	// Err 非nil时所有方法都返回该错误(模拟数据库故障)
	Err error
}

// NewRepository 创建内存仓储,可预置图书
func NewRepository(seed ...*book.Book) *Repository {
	r := &Repository{books: make(map[string]*book.Book)}
	for _, b := range seed {
		if err := r.Create(context.Background(), b); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *Repository) Create(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.books[b.ISBN]; ok {
		return book.ErrISBNDuplicate
	}

	r.nextID++
	now := time.Now()
	b.ID = r.nextID
	b.CreatedAt, b.UpdatedAt = now, now
	r.books[b.ISBN] = clone(b)
	return nil
}

func (r *Repository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	b, ok := r.books[isbn]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return clone(b), nil
}

func (r *Repository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	_, ok := r.books[isbn]
	return ok, nil
}

func (r *Repository) Replace(ctx context.Context, currentISBN string, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	existing, ok := r.books[currentISBN]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.ISBN != currentISBN {
		if _, taken := r.books[b.ISBN]; taken {
			return book.ErrISBNDuplicate
		}
	}

	b.ID = existing.ID
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now()
	delete(r.books, currentISBN)
	r.books[b.ISBN] = clone(b)
	return nil
}

func (r *Repository) Delete(ctx context.Context, isbn string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.books[isbn]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, isbn)
	return nil
}

// LockByISBN 内存实现不加锁,串行化由Transactor负责
func (r *Repository) LockByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return r.FindByISBN(ctx, isbn)
}

func (r *Repository) SaveCounters(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	stored, ok := r.books[b.ISBN]
	if !ok {
		return book.ErrBookNotFound
	}
	stored.DownloadCount = b.DownloadCount
	stored.InReadingLists = b.InReadingLists
	stored.TotalRating = b.TotalRating
	stored.TotalReviews = b.TotalReviews
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *Repository) Search(ctx context.Context, filter book.Filter) ([]*book.Book, error) {
	return r.list(func(b *book.Book) bool { return filter.Matches(b) })
}

func (r *Repository) Latest(ctx context.Context, limit int) ([]*book.Book, error) {
	books, err := r.list(func(*book.Book) bool { return true })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].PublicationYear > books[j].PublicationYear
	})
	if len(books) > limit {
		books = books[:limit]
	}
	return books, nil
}

func (r *Repository) Featured(ctx context.Context) ([]*book.Book, error) {
	return r.list(func(b *book.Book) bool { return b.IsFeatured() })
}

func (r *Repository) Stats(ctx context.Context) (*book.Stats, error) {
	books, err := r.list(func(*book.Book) bool { return true })
	if err != nil {
		return nil, err
	}

	authors := make(map[string]int)
	categories := make(map[string]int)
	for _, b := range books {
		authors[b.Author]++
		for _, c := range b.Categories {
			categories[c]++
		}
	}

	return &book.Stats{
		Count:              int64(len(books)),
		DistinctAuthors:    int64(len(authors)),
		MostCommonCategory: mostCommon(categories),
		MostCommonAuthor:   mostCommon(authors),
	}, nil
}

// Len 当前存储的图书数量
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.books)
}

// list 按ID顺序返回满足条件的图书副本
func (r *Repository) list(keep func(*book.Book) bool) ([]*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	var out []*book.Book
	for _, b := range r.books {
		if keep(b) {
			out = append(out, clone(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// mostCommon 出现次数最多的名称,次数相同时取字典序最小的
func mostCommon(counts map[string]int) *string {
	var (
		best  string
		count int
	)
	for name, n := range counts {
		if n > count || (n == count && name < best) {
			best, count = name, n
		}
	}
	if count == 0 {
		return nil
	}
	return &best
}

func clone(b *book.Book) *book.Book {
	cp := *b
	cp.Categories = append([]string(nil), b.Categories...)
	if b.CoverImage != nil {
		cover := *b.CoverImage
		cp.CoverImage = &cover
	}
	return &cp
}

// Transactor 内存版事务管理器
// 用互斥锁串行执行fn,不支持回滚
type Transactor struct {
	mu sync.Mutex
}

func (t *Transactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

// CoverResolver 固定返回URL的封面解析器,记录调用过的ISBN
type CoverResolver struct {
	mu    sync.Mutex
	URL   *string
	Calls []string
}

// NewCoverResolver url为空字符串时解析结果为nil
func NewCoverResolver(url string) *CoverResolver {
	c := &CoverResolver{}
	if url != "" {
		c.URL = &url
	}
	return c
}

func (c *CoverResolver) Resolve(ctx context.Context, isbn string) *string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = append(c.Calls, isbn)
	if c.URL == nil {
		return nil
	}
	u := *c.URL
	return &u
}

// CallCount 解析次数
func (c *CoverResolver) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Calls)
}
