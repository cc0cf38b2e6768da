package mysql

import (
	"time"
)

// BookModel 图书表模型
// 设计说明:
// 1. ISBN唯一索引,存储规范化后的值(最长13位)
// 2. 不使用软删除,删除即物理删除
// 3. 分类拆成子表,一本书可以有多个分类
// 4. author与分类名没有长度上限,使用text
type BookModel struct {
	ID              uint                `gorm:"primaryKey"`
	ISBN            string              `gorm:"type:varchar(13);uniqueIndex;not null;comment:ISBN(规范化)"`
	Title           string              `gorm:"type:varchar(121);not null;comment:书名"`
	Author          string              `gorm:"type:text;not null;comment:作者"`
	PublicationYear int                 `gorm:"index;not null;comment:出版年份"`
	Description     string              `gorm:"type:text;not null;comment:简介"`
	Language        string              `gorm:"type:varchar(8);not null;comment:语言"`
	TotalPages      int                 `gorm:"not null;comment:页数"`
	FeaturedType    string              `gorm:"type:varchar(16);index;not null;default:none;comment:推荐类型"`
	DownloadCount   int                 `gorm:"not null;default:0;comment:下载次数"`
	TotalRating     float64             `gorm:"not null;default:0;comment:平均评分"`
	TotalReviews    int                 `gorm:"not null;default:0;comment:评分次数"`
	InReadingLists  int                 `gorm:"not null;default:0;comment:加入书单次数"`
	CoverImage      *string             `gorm:"type:varchar(512);comment:封面URL"`
	Categories      []BookCategoryModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (BookModel) TableName() string {
	return "books"
}

// BookCategoryModel 图书分类表模型
type BookCategoryModel struct {
	ID     uint   `gorm:"primaryKey"`
	BookID uint   `gorm:"index;not null"`
	Name   string `gorm:"type:text;not null;comment:分类名"`
}

func (BookCategoryModel) TableName() string {
	return "book_categories"
}

// Models 需要自动迁移的模型
func Models() []interface{} {
	return []interface{}{
		&BookModel{},
		&BookCategoryModel{},
	}
}
