package book

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

var fixedNow = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

func validBook() *Book {
	return &Book{
		ISBN:            "1234567891",
		Title:           "New Book",
		Author:          "Ana García",
		PublicationYear: 2023,
		Description:     strings.Repeat("d", 100),
		Language:        LanguageSpanish,
		TotalPages:      222,
		Categories:      []string{"Fiction"},
		FeaturedType:    FeaturedNone,
	}
}

func TestValidator_Valid(t *testing.T) {
	v := NewValidatorWithClock(fixedNow)
	assert.Empty(t, v.Validate(validBook()))
	assert.NoError(t, v.Check(validBook()))
}

func TestValidator_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Book)
		field  string
		reason string
		value  interface{}
	}{
		{"缺少ISBN", func(b *Book) { b.ISBN = "" }, "isbn", ReasonRequired, ""},
		{"ISBN格式", func(b *Book) { b.ISBN = "12345" }, "isbn", ReasonPattern, "12345"},
		{"书名过短", func(b *Book) { b.Title = "ab" }, "title", ReasonMinLength, "ab"},
		{"书名过长", func(b *Book) { b.Title = strings.Repeat("t", 122) }, "title", ReasonMaxLength, strings.Repeat("t", 122)},
		{"书名按字符计数", func(b *Book) { b.Title = "书名" }, "title", ReasonMinLength, "书名"},
		{"缺少作者", func(b *Book) { b.Author = "" }, "author", ReasonRequired, ""},
		{"年份过早", func(b *Book) { b.PublicationYear = 1899 }, "publicationYear", ReasonMin, 1899},
		{"年份在未来", func(b *Book) { b.PublicationYear = 2025 }, "publicationYear", ReasonMax, 2025},
		{"缺少年份", func(b *Book) { b.PublicationYear = 0 }, "publicationYear", ReasonRequired, 0},
		{"描述过短", func(b *Book) { b.Description = strings.Repeat("d", 99) }, "description", ReasonMinLength, strings.Repeat("d", 99)},
		{"描述过长", func(b *Book) { b.Description = strings.Repeat("d", 701) }, "description", ReasonMaxLength, strings.Repeat("d", 701)},
		{"语言不在枚举内", func(b *Book) { b.Language = "ru" }, "language", ReasonEnum, "ru"},
		{"缺少页数", func(b *Book) { b.TotalPages = 0 }, "totalPages", ReasonRequired, 0},
		{"页数为负", func(b *Book) { b.TotalPages = -1 }, "totalPages", ReasonMin, -1},
		{"分类为空列表", func(b *Book) { b.Categories = []string{} }, "categories", ReasonRequired, []string{}},
		{"缺少分类", func(b *Book) { b.Categories = nil }, "categories", ReasonRequired, []string(nil)},
		{"分类含空字符串", func(b *Book) { b.Categories = []string{"Fiction", ""} }, "categories", ReasonRequired, ""},
		{"推荐类型不在枚举内", func(b *Book) { b.FeaturedType = "staffPick" }, "featuredType", ReasonEnum, "staffPick"},
		{"评分超过5", func(b *Book) { b.TotalRating = 5.5 }, "totalRating", ReasonMax, 5.5},
		{"下载次数为负", func(b *Book) { b.DownloadCount = -1 }, "downloadCount", ReasonMin, -1},
	}

	v := NewValidatorWithClock(fixedNow)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBook()
			tt.mutate(b)

			details := v.Validate(b)
			require.Len(t, details, 1)
			assert.Equal(t, apperrors.FieldError{Field: tt.field, Reason: tt.reason, Value: tt.value}, details[0])
		})
	}
}

func TestValidator_CurrentYearAllowed(t *testing.T) {
	v := NewValidatorWithClock(fixedNow)
	b := validBook()
	b.PublicationYear = 2024
	assert.Empty(t, v.Validate(b))
}

func TestValidator_MultipleFieldsInDeclarationOrder(t *testing.T) {
	v := NewValidatorWithClock(fixedNow)
	b := validBook()
	b.Language = "xx"
	b.Title = ""
	b.TotalPages = 0

	details := v.Validate(b)
	require.Len(t, details, 3)
	assert.Equal(t, "title", details[0].Field)
	assert.Equal(t, "language", details[1].Field)
	assert.Equal(t, "totalPages", details[2].Field)

	err := v.Check(b)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Len(t, apperrors.GetAppError(err).Details, 3)
}

func TestValidator_ValidateCounter(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.ValidateCounter("downloadCount", 0))
	assert.Equal(t,
		[]apperrors.FieldError{{Field: "downloadCount", Reason: ReasonMin, Value: -10}},
		v.ValidateCounter("downloadCount", -10))
}

func TestValidator_ValidateReviewStats(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.ValidateReviewStats(4.5, 2))
	assert.Empty(t, v.ValidateReviewStats(0, 0))
	assert.Empty(t, v.ValidateReviewStats(5, 10))

	details := v.ValidateReviewStats(5.1, -1)
	require.Len(t, details, 2)
	assert.Equal(t, apperrors.FieldError{Field: "totalRating", Reason: ReasonMax, Value: 5.1}, details[0])
	assert.Equal(t, apperrors.FieldError{Field: "totalReviews", Reason: ReasonMin, Value: -1}, details[1])

	details = v.ValidateReviewStats(-0.5, 3)
	require.Len(t, details, 1)
	assert.Equal(t, ReasonMin, details[0].Reason)
}

func TestCheckSystemManaged(t *testing.T) {
	assert.NoError(t, CheckSystemManaged(validBook()))

	b := validBook()
	b.DownloadCount = 5
	b.TotalRating = 4.2

	err := CheckSystemManaged(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidParams)

	details := apperrors.GetAppError(err).Details
	require.Len(t, details, 2)
	assert.Equal(t, "downloadCount", details[0].Field)
	assert.Equal(t, "totalRating", details[1].Field)
	assert.Equal(t, ReasonSystemManaged, details[0].Reason)
}
