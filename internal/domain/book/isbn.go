package book

import (
	"regexp"
	"strings"
	"unicode"
)

// isbnPattern ISBN-10(最后一位可以是大写X)或ISBN-13
var isbnPattern = regexp.MustCompile(`^(\d{9}X|\d{10}|\d{13})$`)

// NormalizeISBN 去掉连字符和所有空白字符
// 按ISBN查询、修改、删除之前,以及创建/替换写入之前都要先规范化
func NormalizeISBN(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// ValidateISBNFormat 规范化后是否符合ISBN-10或ISBN-13格式
func ValidateISBNFormat(candidate string) bool {
	return isbnPattern.MatchString(NormalizeISBN(candidate))
}

// ParseISBN 规范化并校验,格式错误返回ErrInvalidISBN
func ParseISBN(raw string) (string, error) {
	isbn := NormalizeISBN(raw)
	if !isbnPattern.MatchString(isbn) {
		return "", ErrInvalidISBN
	}
	return isbn, nil
}
