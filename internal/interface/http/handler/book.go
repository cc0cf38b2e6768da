package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/catalogue/internal/application/book"
	"github.com/xiebiao/catalogue/internal/interface/http/dto"
	"github.com/xiebiao/catalogue/pkg/response"
)

// BookHandler 图书HTTP处理器
// 只负责参数解析和响应组装,业务逻辑在应用层
type BookHandler struct {
	publishBook *appbook.PublishBookUseCase
	replaceBook *appbook.ReplaceBookUseCase
	deleteBook  *appbook.DeleteBookUseCase
	queryBooks  *appbook.QueryBooksUseCase
	updateStats *appbook.UpdateStatsUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	publishBook *appbook.PublishBookUseCase,
	replaceBook *appbook.ReplaceBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	queryBooks *appbook.QueryBooksUseCase,
	updateStats *appbook.UpdateStatsUseCase,
) *BookHandler {
	return &BookHandler{
		publishBook: publishBook,
		replaceBook: replaceBook,
		deleteBook:  deleteBook,
		queryBooks:  queryBooks,
		updateStats: updateStats,
	}
}

// Healthz 存活探针
// @Summary      健康检查
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=dto.HealthResponse}
// @Router       /api/v1/books/healthz [get]
func (h *BookHandler) Healthz(c *gin.Context) {
	response.Success(c, dto.HealthResponse{Status: "ok"})
}

// GetByISBN 按ISBN查询图书
// @Summary      按ISBN查询图书
// @Description  ISBN可以带连字符或空格,查询前统一规范化
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        isbn path string true "ISBN-10或ISBN-13"
// @Success      200 {object} response.Response{data=appbook.BookResult}
// @Failure      400 {object} response.Response "ISBN格式错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/isbn/{isbn} [get]
func (h *BookHandler) GetByISBN(c *gin.Context) {
	result, err := h.queryBooks.GetByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Search 搜索图书
// @Summary      搜索图书
// @Description  条件之间为AND;title/author子串匹配,language忽略大小写,其余精确匹配;无结果返回404
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        title           query string false "书名(子串,忽略大小写)"
// @Param        author          query string false "作者(子串,忽略大小写)"
// @Param        publicationYear query int    false "出版年份"
// @Param        category        query string false "分类"
// @Param        language        query string false "语言"
// @Param        featuredType    query string false "推荐类型"
// @Success      200 {object} response.Response{data=[]appbook.BookResult}
// @Failure      400 {object} response.Response "未知查询参数"
// @Failure      404 {object} response.Response "无结果"
// @Router       /api/v1/books [get]
func (h *BookHandler) Search(c *gin.Context) {
	results, err := h.queryBooks.Search(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, results)
}

// Latest 最新图书
// @Summary      最新出版的10本图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appbook.BookResult}
// @Failure      404 {object} response.Response "没有图书"
// @Router       /api/v1/books/latest [get]
func (h *BookHandler) Latest(c *gin.Context) {
	results, err := h.queryBooks.Latest(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, results)
}

// Featured 推荐图书
// @Summary      推荐图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appbook.BookResult}
// @Failure      404 {object} response.Response "没有推荐图书"
// @Router       /api/v1/books/featured [get]
func (h *BookHandler) Featured(c *gin.Context) {
	results, err := h.queryBooks.Featured(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, results)
}

// Stats 聚合统计
// @Summary      图书聚合统计
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appbook.StatsResult}
// @Router       /api/v1/books/stats [get]
func (h *BookHandler) Stats(c *gin.Context) {
	result, err := h.queryBooks.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// PublishBook 创建图书
// @Summary      创建图书
// @Description  系统维护字段(downloadCount等)必须为0;封面自动解析
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookEnvelope}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未携带Token"
// @Failure      403 {object} response.Response "无权限"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) PublishBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.publishBook.Execute(c.Request.Context(), req.ToUseCase())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Book created successfully", dto.BookEnvelope{Book: result})
}

// ReplaceBook 整体替换图书
// @Summary      整体替换图书
// @Description  计数字段和封面保持不变;修改ISBN时重新解析封面
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        isbn    path string                 true "当前ISBN"
// @Param        request body dto.ReplaceBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookEnvelope}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books/{isbn} [put]
func (h *BookHandler) ReplaceBook(c *gin.Context) {
	var req dto.ReplaceBookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.replaceBook.Execute(c.Request.Context(), c.Param("isbn"), req.ToUseCase())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Book updated successfully", dto.BookEnvelope{Book: result})
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "ISBN格式错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{isbn} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.deleteBook.Execute(c.Request.Context(), c.Param("isbn")); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Book deleted successfully", nil)
}

// SetDownloads 设置下载次数
// @Summary      设置下载次数
// @Tags         计数
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        isbn    path string                   true "ISBN"
// @Param        request body dto.DownloadCountRequest true "下载次数"
// @Success      200 {object} response.Response{data=appbook.BookResult}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{isbn}/downloads [patch]
func (h *BookHandler) SetDownloads(c *gin.Context) {
	var req dto.DownloadCountRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.DownloadCount == nil {
		response.Error(c, requiredField("downloadCount"))
		return
	}

	result, err := h.updateStats.SetDownloads(c.Request.Context(), c.Param("isbn"), *req.DownloadCount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SetReadingLists 设置加入书单次数
// @Summary      设置加入书单次数
// @Tags         计数
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        isbn    path string                  true "ISBN"
// @Param        request body dto.ReadingListsRequest true "加入书单次数"
// @Success      200 {object} response.Response{data=appbook.BookResult}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{isbn}/readingLists [patch]
func (h *BookHandler) SetReadingLists(c *gin.Context) {
	var req dto.ReadingListsRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.InReadingLists == nil {
		response.Error(c, requiredField("inReadingLists"))
		return
	}

	result, err := h.updateStats.SetReadingLists(c.Request.Context(), c.Param("isbn"), *req.InReadingLists)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SubmitReview 提交评分
// @Summary      提交评分
// @Description  score取值[0,5],平均评分按滑动平均重新计算
// @Tags         计数
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        isbn    path string            true "ISBN"
// @Param        request body dto.ReviewRequest true "评分"
// @Success      200 {object} response.Response{data=appbook.BookResult}
// @Failure      400 {object} response.Response "评分无效"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{isbn}/review [patch]
func (h *BookHandler) SubmitReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.Score == nil {
		response.Error(c, requiredField("score"))
		return
	}

	result, err := h.updateStats.SubmitReview(c.Request.Context(), c.Param("isbn"), *req.Score)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// OverwriteReviewStats 覆盖评分统计
// @Summary      覆盖评分统计(管理员)
// @Tags         计数
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        isbn    path string                 true "ISBN"
// @Param        request body dto.ReviewStatsRequest true "评分统计"
// @Success      200 {object} response.Response{data=appbook.BookResult}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{isbn}/reviewStats [patch]
func (h *BookHandler) OverwriteReviewStats(c *gin.Context) {
	var req dto.ReviewStatsRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.TotalRating == nil {
		response.Error(c, requiredField("totalRating"))
		return
	}
	if req.TotalReviews == nil {
		response.Error(c, requiredField("totalReviews"))
		return
	}

	result, err := h.updateStats.OverwriteReviewStats(c.Request.Context(), c.Param("isbn"), *req.TotalRating, *req.TotalReviews)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
