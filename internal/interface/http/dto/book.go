package dto

import (
	appbook "github.com/xiebiao/catalogue/internal/application/book"
)

// CreateBookRequest HTTP创建图书请求
// 计数字段只用于拒绝非0值,不能由客户端设置
type CreateBookRequest struct {
	ISBN            string   `json:"isbn" example:"9780306406157"`
	Title           string   `json:"title" example:"New Book"`
	Author          string   `json:"author" example:"Ana García"`
	PublicationYear int      `json:"publicationYear" example:"2023"`
	Description     string   `json:"description" example:"A sweeping story of ideas, at least one hundred characters long..."`
	Language        string   `json:"language" enums:"en,es,fr,de,it,pt" example:"es"`
	TotalPages      int      `json:"totalPages" example:"222"`
	Categories      []string `json:"categories" example:"Fiction"`
	FeaturedType    string   `json:"featuredType" enums:"none,bestSeller,awardWinner" example:"none"`
	DownloadCount   int      `json:"downloadCount" example:"0"`
	TotalRating     float64  `json:"totalRating" example:"0"`
	TotalReviews    int      `json:"totalReviews" example:"0"`
	InReadingLists  int      `json:"inReadingLists" example:"0"`
}

// ToUseCase 转换为用例请求
func (r CreateBookRequest) ToUseCase() appbook.PublishBookRequest {
	return appbook.PublishBookRequest{
		ISBN:            r.ISBN,
		Title:           r.Title,
		Author:          r.Author,
		PublicationYear: r.PublicationYear,
		Description:     r.Description,
		Language:        r.Language,
		TotalPages:      r.TotalPages,
		Categories:      r.Categories,
		FeaturedType:    r.FeaturedType,
		DownloadCount:   r.DownloadCount,
		TotalRating:     r.TotalRating,
		TotalReviews:    r.TotalReviews,
		InReadingLists:  r.InReadingLists,
	}
}

// ReplaceBookRequest HTTP整体替换请求
// 请求体中出现的计数字段和coverImage会被忽略
type ReplaceBookRequest struct {
	ISBN            string   `json:"isbn" example:"9780306406157"`
	Title           string   `json:"title" example:"Updated Title"`
	Author          string   `json:"author" example:"Ana García"`
	PublicationYear int      `json:"publicationYear" example:"2023"`
	Description     string   `json:"description" example:"A sweeping story of ideas, at least one hundred characters long..."`
	Language        string   `json:"language" enums:"en,es,fr,de,it,pt" example:"es"`
	TotalPages      int      `json:"totalPages" example:"222"`
	Categories      []string `json:"categories" example:"Fiction"`
	FeaturedType    string   `json:"featuredType" enums:"none,bestSeller,awardWinner" example:"bestSeller"`
}

// ToUseCase 转换为用例请求
func (r ReplaceBookRequest) ToUseCase() appbook.ReplaceBookRequest {
	return appbook.ReplaceBookRequest{
		ISBN:            r.ISBN,
		Title:           r.Title,
		Author:          r.Author,
		PublicationYear: r.PublicationYear,
		Description:     r.Description,
		Language:        r.Language,
		TotalPages:      r.TotalPages,
		Categories:      r.Categories,
		FeaturedType:    r.FeaturedType,
	}
}

// 计数与评分请求
// 指针字段用于区分"缺失"和"0"

// DownloadCountRequest 设置下载次数
type DownloadCountRequest struct {
	DownloadCount *int `json:"downloadCount" example:"15000"`
}

// ReadingListsRequest 设置加入书单次数
type ReadingListsRequest struct {
	InReadingLists *int `json:"inReadingLists" example:"300"`
}

// ReviewRequest 提交评分
type ReviewRequest struct {
	Score *float64 `json:"score" example:"4.5"`
}

// ReviewStatsRequest 覆盖评分统计(管理员)
type ReviewStatsRequest struct {
	TotalRating  *float64 `json:"totalRating" example:"4.8"`
	TotalReviews *int     `json:"totalReviews" example:"1500"`
}

// BookEnvelope 创建/替换成功时的响应数据
type BookEnvelope struct {
	Book *appbook.BookResult `json:"book"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
