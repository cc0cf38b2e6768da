package mysql

import (
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/catalogue/internal/domain/book"
)

// columns 过滤字段到列名的映射
var columns = map[book.Field]string{
	book.FieldTitle:           "books.title",
	book.FieldAuthor:          "books.author",
	book.FieldPublicationYear: "books.publication_year",
	book.FieldLanguage:        "books.language",
	book.FieldFeaturedType:    "books.featured_type",
}

// applyFilter 把领域过滤条件翻译为WHERE子句
// 条件之间是AND;字符串统一转小写比较,与列的排序规则无关
// 区分大小写的条件(分类、推荐类型)由调用方取回后用Filter.Matches复核
func applyFilter(db *gorm.DB, filter book.Filter) *gorm.DB {
	for _, p := range filter.Predicates {
		if p.Field == book.FieldCategory {
			name, _ := p.Value.(string)
			db = db.Where("EXISTS (SELECT 1 FROM book_categories bc WHERE bc.book_id = books.id AND bc.name = ?)", name)
			continue
		}

		column, ok := columns[p.Field]
		if !ok {
			continue
		}

		switch p.Op {
		case book.OpContainsFold:
			value, _ := p.Value.(string)
			db = db.Where("LOWER("+column+") LIKE ? ESCAPE '!'", containsPattern(strings.ToLower(value)))
		case book.OpEqualFold:
			value, _ := p.Value.(string)
			db = db.Where("LOWER("+column+") = ?", strings.ToLower(value))
		default:
			db = db.Where(column+" = ?", p.Value)
		}
	}
	return db
}
