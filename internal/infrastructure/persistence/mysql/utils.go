package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

// dbError 包装数据库异常
// message只用于日志,响应中统一返回内部错误提示
func dbError(err error, message string) *apperrors.AppError {
	return apperrors.ErrDatabaseError.WithMessage(message).WithCause(err)
}

// isDuplicateError 判断是否为唯一键冲突
// MySQL: Error 1062 Duplicate entry
// SQLite: UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// forUpdate 为查询加行锁(SELECT ... FOR UPDATE)
// SQLite没有行锁,写事务本身已经是库级串行,直接跳过
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// likeEscaper LIKE模式转义,配合 ESCAPE '!' 使用
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern 生成子串匹配的LIKE模式
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// binaryColumn 按字节比较的列表达式
// MySQL默认排序规则(utf8mb4_0900_ai_ci)忽略大小写和重音,
// 分组统计要把"García"和"Garcia"算作两个值,与其他存储保持一致
func binaryColumn(dialect, column string) string {
	if dialect == "mysql" {
		return "CAST(" + column + " AS BINARY)"
	}
	return column
}
