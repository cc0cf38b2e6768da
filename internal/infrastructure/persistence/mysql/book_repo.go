package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/catalogue/internal/domain/book"
)

// bookRepository 图书仓储实现(GORM)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
// 分类作为关联一起插入,GORM在同一事务中完成
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return dbError(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := r.withCategories(r.getDB(ctx)).Where("isbn = ?", isbn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, dbError(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// ExistsByISBN ISBN是否已存在
func (r *bookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&BookModel{}).Where("isbn = ?", isbn).Count(&count).Error
	if err != nil {
		return false, dbError(err, "查询ISBN失败")
	}
	return count > 0, nil
}

// Replace 整体替换图书
// 1. 按currentISBN定位行
// 2. 覆盖全部可编辑字段与系统字段(系统字段由领域服务保证不变)
// 3. 分类整体替换
func (r *bookRepository) Replace(ctx context.Context, currentISBN string, b *book.Book) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := r.idByISBN(tx, currentISBN)
		if err != nil {
			return err
		}

		now := time.Now()
		err = tx.Model(&BookModel{}).Where("id = ?", id).Updates(map[string]interface{}{
			"isbn":             b.ISBN,
			"title":            b.Title,
			"author":           b.Author,
			"publication_year": b.PublicationYear,
			"description":      b.Description,
			"language":         b.Language,
			"total_pages":      b.TotalPages,
			"featured_type":    b.FeaturedType,
			"download_count":   b.DownloadCount,
			"total_rating":     b.TotalRating,
			"total_reviews":    b.TotalReviews,
			"in_reading_lists": b.InReadingLists,
			"cover_image":      b.CoverImage,
			"updated_at":       now,
		}).Error
		if err != nil {
			if isDuplicateError(err) {
				return book.ErrISBNDuplicate
			}
			return dbError(err, "更新图书失败")
		}

		if err := tx.Where("book_id = ?", id).Delete(&BookCategoryModel{}).Error; err != nil {
			return dbError(err, "更新图书分类失败")
		}
		if categories := toCategoryModels(id, b.Categories); len(categories) > 0 {
			if err := tx.Create(&categories).Error; err != nil {
				return dbError(err, "更新图书分类失败")
			}
		}

		b.ID = id
		b.UpdatedAt = now
		return nil
	})
}

// Delete 删除图书(连同分类)
// 不依赖外键级联,SQLite默认不开启外键约束
func (r *bookRepository) Delete(ctx context.Context, isbn string) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := r.idByISBN(tx, isbn)
		if err != nil {
			return err
		}

		if err := tx.Where("book_id = ?", id).Delete(&BookCategoryModel{}).Error; err != nil {
			return dbError(err, "删除图书分类失败")
		}

		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return dbError(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return nil
	})
}

// LockByISBN 悲观锁查询图书
// 必须使用getDB(ctx)从context获取事务DB,否则锁在语句结束时立即释放
func (r *bookRepository) LockByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	db := forUpdate(r.getDB(ctx))
	err := r.withCategories(db).Where("isbn = ?", isbn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, dbError(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// SaveCounters 写回计数与评分统计
// 依赖clientFoundRows,写入相同值时RowsAffected仍为1
func (r *bookRepository) SaveCounters(ctx context.Context, b *book.Book) error {
	updatedAt := b.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	result := r.getDB(ctx).Model(&BookModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"download_count":   b.DownloadCount,
		"in_reading_lists": b.InReadingLists,
		"total_rating":     b.TotalRating,
		"total_reviews":    b.TotalReviews,
		"updated_at":       updatedAt,
	})
	if result.Error != nil {
		return dbError(result.Error, "更新图书计数失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// Search 按过滤条件查询
func (r *bookRepository) Search(ctx context.Context, filter book.Filter) ([]*book.Book, error) {
	var models []BookModel
	db := applyFilter(r.getDB(ctx).Model(&BookModel{}), filter)
	if err := r.withCategories(db).Order("books.id ASC").Find(&models).Error; err != nil {
		return nil, dbError(err, "搜索图书失败")
	}

	books := make([]*book.Book, 0, len(models))
	for i := range models {
		b := toBookEntity(&models[i])
		// 列排序规则可能忽略大小写,这里按领域语义复核
		if filter.Matches(b) {
			books = append(books, b)
		}
	}
	return books, nil
}

// Latest 按出版年份倒序取前limit本
// 年份相同时按插入顺序
func (r *bookRepository) Latest(ctx context.Context, limit int) ([]*book.Book, error) {
	var models []BookModel
	err := r.withCategories(r.getDB(ctx)).
		Order("publication_year DESC").
		Order("id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, dbError(err, "查询最新图书失败")
	}
	return toBookEntities(models), nil
}

// Featured 查询推荐图书
func (r *bookRepository) Featured(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	err := r.withCategories(r.getDB(ctx)).
		Where("featured_type <> ?", book.FeaturedNone).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, dbError(err, "查询推荐图书失败")
	}
	return toBookEntities(models), nil
}

// nameCount 分组计数结果
type nameCount struct {
	Name string
	Cnt  int64
}

// Stats 聚合统计
// 出现次数相同时按名称升序取第一个
// 作者与分类按原值区分大小写和重音
func (r *bookRepository) Stats(ctx context.Context) (*book.Stats, error) {
	db := r.getDB(ctx)
	stats := &book.Stats{}

	if err := db.Model(&BookModel{}).Count(&stats.Count).Error; err != nil {
		return nil, dbError(err, "统计图书数量失败")
	}
	if stats.Count == 0 {
		return stats, nil
	}

	author := binaryColumn(db.Dialector.Name(), "author")
	err := db.Model(&BookModel{}).
		Select("COUNT(DISTINCT " + author + ")").
		Scan(&stats.DistinctAuthors).Error
	if err != nil {
		return nil, dbError(err, "统计作者数量失败")
	}

	var authors []nameCount
	err = db.Model(&BookModel{}).
		Select(author + " AS name, COUNT(*) AS cnt").
		Group(author).
		Order("cnt DESC, name ASC").
		Limit(1).
		Find(&authors).Error
	if err != nil {
		return nil, dbError(err, "统计作者失败")
	}
	if len(authors) > 0 {
		stats.MostCommonAuthor = &authors[0].Name
	}

	category := binaryColumn(db.Dialector.Name(), "name")
	var categories []nameCount
	err = db.Model(&BookCategoryModel{}).
		Select(category + " AS name, COUNT(*) AS cnt").
		Group(category).
		Order("cnt DESC, name ASC").
		Limit(1).
		Find(&categories).Error
	if err != nil {
		return nil, dbError(err, "统计分类失败")
	}
	if len(categories) > 0 {
		stats.MostCommonCategory = &categories[0].Name
	}

	return stats, nil
}

// idByISBN 查询ISBN对应的主键
func (r *bookRepository) idByISBN(db *gorm.DB, isbn string) (uint, error) {
	var model BookModel
	err := db.Model(&BookModel{}).Select("id").Where("isbn = ?", isbn).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, book.ErrBookNotFound
		}
		return 0, dbError(err, "查询图书失败")
	}
	return model.ID, nil
}

// withCategories 预加载分类(按插入顺序)
func (r *bookRepository) withCategories(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

// getDB 从context获取事务DB
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// toBookModel 领域实体 → 数据库模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		Description:     b.Description,
		Language:        b.Language,
		TotalPages:      b.TotalPages,
		FeaturedType:    b.FeaturedType,
		DownloadCount:   b.DownloadCount,
		TotalRating:     b.TotalRating,
		TotalReviews:    b.TotalReviews,
		InReadingLists:  b.InReadingLists,
		CoverImage:      b.CoverImage,
		Categories:      toCategoryModels(b.ID, b.Categories),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toCategoryModels(bookID uint, names []string) []BookCategoryModel {
	categories := make([]BookCategoryModel, 0, len(names))
	for _, name := range names {
		categories = append(categories, BookCategoryModel{BookID: bookID, Name: name})
	}
	return categories
}

// toBookEntity 数据库模型 → 领域实体
func toBookEntity(m *BookModel) *book.Book {
	categories := make([]string, 0, len(m.Categories))
	for _, c := range m.Categories {
		categories = append(categories, c.Name)
	}

	return &book.Book{
		ID:              m.ID,
		ISBN:            m.ISBN,
		Title:           m.Title,
		Author:          m.Author,
		PublicationYear: m.PublicationYear,
		Description:     m.Description,
		Language:        m.Language,
		TotalPages:      m.TotalPages,
		Categories:      categories,
		FeaturedType:    m.FeaturedType,
		DownloadCount:   m.DownloadCount,
		TotalRating:     m.TotalRating,
		TotalReviews:    m.TotalReviews,
		InReadingLists:  m.InReadingLists,
		CoverImage:      m.CoverImage,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, 0, len(models))
	for i := range models {
		books = append(books, toBookEntity(&models[i]))
	}
	return books
}
