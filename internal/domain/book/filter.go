package book

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

// Field 可过滤字段(封闭枚举)
type Field int

const (
	FieldTitle Field = iota + 1
	FieldAuthor
	FieldPublicationYear
	FieldCategory
	FieldLanguage
	FieldFeaturedType
)

// Op 比较方式(封闭枚举)
type Op int

const (
	OpContainsFold Op = iota + 1 // 忽略大小写的子串匹配
	OpEqualFold                  // 忽略大小写的精确匹配
	OpEqual                      // 精确匹配
	OpHasElement                 // 列表中包含该元素(精确匹配)
)

// Predicate 单个过滤条件
// Value对FieldPublicationYear是int,其余是string
type Predicate struct {
	Field Field
	Op    Op
	Value interface{}
}

// Filter 过滤条件的合取(AND)
// 没有任何条件时匹配全部图书
type Filter struct {
	Predicates []Predicate
}

// IsEmpty 是否没有任何条件
func (f Filter) IsEmpty() bool {
	return len(f.Predicates) == 0
}

// translator 把一个查询参数值翻译为过滤条件
type translator func(value string) (Predicate, bool)

// searchParams 搜索接口允许的查询参数
// 参数名 → 翻译函数,不在表中的参数一律拒绝
var searchParams = map[string]translator{
	"title": func(v string) (Predicate, bool) {
		return Predicate{Field: FieldTitle, Op: OpContainsFold, Value: v}, true
	},
	"author": func(v string) (Predicate, bool) {
		return Predicate{Field: FieldAuthor, Op: OpContainsFold, Value: v}, true
	},
	"publicationYear": func(v string) (Predicate, bool) {
		year, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Predicate{}, false
		}
		return Predicate{Field: FieldPublicationYear, Op: OpEqual, Value: year}, true
	},
	"category": func(v string) (Predicate, bool) {
		return Predicate{Field: FieldCategory, Op: OpHasElement, Value: v}, true
	},
	"language": func(v string) (Predicate, bool) {
		return Predicate{Field: FieldLanguage, Op: OpEqualFold, Value: v}, true
	},
	"featuredType": func(v string) (Predicate, bool) {
		return Predicate{Field: FieldFeaturedType, Op: OpEqual, Value: v}, true
	},
}

// searchParamNames 允许的查询参数名(排序后)
func searchParamNames() []string {
	names := make([]string, 0, len(searchParams))
	for name := range searchParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// invalidQueryMessage 非法查询参数的提示,附带允许的参数名
var invalidQueryMessage = "Invalid query parameters. Allowed: " + strings.Join(searchParamNames(), ", ") + "."

// ParseFilter 把查询参数翻译为过滤条件
// 规则:
// 1. 出现任何不在白名单中的参数,整个请求失败,错误中列出所有非法参数(排序)
// 2. 空值参数忽略
// 3. 同一参数出现多次,每个值各加一个条件(仍然是AND)
// 4. publicationYear不是整数时视为非法参数
func ParseFilter(params url.Values) (Filter, error) {
	var (
		filter  Filter
		invalid []string
	)

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		translate, ok := searchParams[key]
		if !ok {
			invalid = append(invalid, key)
			continue
		}
		for _, value := range params[key] {
			if value == "" {
				continue
			}
			p, ok := translate(value)
			if !ok {
				invalid = append(invalid, key)
				break
			}
			filter.Predicates = append(filter.Predicates, p)
		}
	}

	if len(invalid) > 0 {
		return Filter{}, apperrors.ErrInvalidQuery.
			WithMessage(invalidQueryMessage).
			WithInvalidParameters(invalid...)
	}
	return filter, nil
}

// Matches 在内存中判断图书是否满足所有条件
func (f Filter) Matches(b *Book) bool {
	for _, p := range f.Predicates {
		if !p.Matches(b) {
			return false
		}
	}
	return true
}

// Matches 在内存中判断单个条件
func (p Predicate) Matches(b *Book) bool {
	if p.Field == FieldPublicationYear {
		year, _ := p.Value.(int)
		return b.PublicationYear == year
	}

	want, _ := p.Value.(string)
	if p.Field == FieldCategory {
		return b.HasCategory(want)
	}

	var got string
	switch p.Field {
	case FieldTitle:
		got = b.Title
	case FieldAuthor:
		got = b.Author
	case FieldLanguage:
		got = b.Language
	case FieldFeaturedType:
		got = b.FeaturedType
	default:
		return false
	}

	switch p.Op {
	case OpContainsFold:
		return strings.Contains(strings.ToLower(got), strings.ToLower(want))
	case OpEqualFold:
		return strings.EqualFold(got, want)
	case OpEqual:
		return got == want
	default:
		return false
	}
}
