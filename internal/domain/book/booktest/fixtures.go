package booktest

import (
	"strings"

	"github.com/xiebiao/catalogue/internal/domain/book"
)

// Description 满足100~700字符约束的描述
var Description = strings.Repeat("A sweeping story of ideas. ", 5)

// NewBook 构造一本字段全部合法的图书
func NewBook(isbn string) *book.Book {
	return &book.Book{
		ISBN:            isbn,
		Title:           "New Book",
		Author:          "Ana García",
		PublicationYear: 2023,
		Description:     Description,
		Language:        book.LanguageSpanish,
		TotalPages:      222,
		Categories:      []string{"Fiction"},
	}
}
