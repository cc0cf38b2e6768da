package book

import (
	"time"
)

// 推荐类型(编辑分类,不是工作流状态,取值之间可任意切换)
const (
	FeaturedNone        = "none"
	FeaturedBestSeller  = "bestSeller"
	FeaturedAwardWinner = "awardWinner"
)

// 支持的语言
const (
	LanguageEnglish    = "en"
	LanguageSpanish    = "es"
	LanguageFrench     = "fr"
	LanguageGerman     = "de"
	LanguageItalian    = "it"
	LanguagePortuguese = "pt"
)

// 评分与年份边界
const (
	MinScore           = 0
	MaxScore           = 5
	MinPublicationYear = 1900
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ISBN是业务唯一标识,存储前统一规范化(去掉连字符和空白)
// 2. DownloadCount/TotalRating/TotalReviews/InReadingLists由系统维护,创建时必须为0
// 3. TotalRating是所有评分的滑动平均值,取值[0,5]
// 4. CoverImage在创建或ISBN变更时由封面服务解析,可为空
// 5. 字段约束通过validate标签声明,由Validator统一校验
type Book struct {
	ID              uint
	ISBN            string   `json:"isbn" validate:"required,isbn_pattern"`
	Title           string   `json:"title" validate:"required,min=3,max=121"`
	Author          string   `json:"author" validate:"required"`
	PublicationYear int      `json:"publicationYear" validate:"required,min=1900,not_future_year"`
	Description     string   `json:"description" validate:"required,min=100,max=700"`
	Language        string   `json:"language" validate:"required,oneof=en es fr de it pt"`
	TotalPages      int      `json:"totalPages" validate:"required,min=1"`
	Categories      []string `json:"categories" validate:"nonempty,dive,required"`
	FeaturedType    string   `json:"featuredType" validate:"oneof=none bestSeller awardWinner"`
	DownloadCount   int      `json:"downloadCount" validate:"min=0"`
	TotalRating     float64  `json:"totalRating" validate:"min=0,max=5"`
	TotalReviews    int      `json:"totalReviews" validate:"min=0"`
	InReadingLists  int      `json:"inReadingLists" validate:"min=0"`
	CoverImage      *string  // 封面URL(nil表示没有可用封面)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ApplyDefaults 填充默认值
func (b *Book) ApplyDefaults() {
	if b.FeaturedType == "" {
		b.FeaturedType = FeaturedNone
	}
}

// ApplyReview 提交一次评分
// 按滑动平均重新计算总评分: newRating = (oldRating*count + score) / (count+1)
// 调用方负责保证score在[0,5]内
func (b *Book) ApplyReview(score float64) {
	count := float64(b.TotalReviews)
	b.TotalRating = (b.TotalRating*count + score) / (count + 1)
	b.TotalReviews++
	b.UpdatedAt = time.Now()
}

// SetReviewStats 直接覆盖评分统计(管理员操作,不走滑动平均)
func (b *Book) SetReviewStats(totalRating float64, totalReviews int) {
	b.TotalRating = totalRating
	b.TotalReviews = totalReviews
	b.UpdatedAt = time.Now()
}

// SetDownloadCount 设置下载次数(覆盖,不是递增)
func (b *Book) SetDownloadCount(n int) {
	b.DownloadCount = n
	b.UpdatedAt = time.Now()
}

// SetReadingListCount 设置加入书单次数
func (b *Book) SetReadingListCount(n int) {
	b.InReadingLists = n
	b.UpdatedAt = time.Now()
}

// IsFeatured 是否属于推荐图书
func (b *Book) IsFeatured() bool {
	return b.FeaturedType != "" && b.FeaturedType != FeaturedNone
}

// HasCategory 分类精确匹配(区分大小写)
func (b *Book) HasCategory(name string) bool {
	for _, c := range b.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Stats 图书聚合统计
// 集合为空时Count/DistinctAuthors为0,两个Most*为nil
type Stats struct {
	Count              int64
	DistinctAuthors    int64
	MostCommonCategory *string
	MostCommonAuthor   *string
}
