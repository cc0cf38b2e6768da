package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/catalogue/internal/domain/book"
)

// txKey 事务在context中的key
type txKey struct{}

// TxManager 事务管理器
// 设计说明:
// 1. 把*gorm.DB事务放进context,仓储通过getDB(ctx)自动加入事务
// 2. fn返回error时回滚,否则提交
// 3. 嵌套调用复用外层事务(GORM使用SavePoint)
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

var _ book.Transactor = (*TxManager)(nil)

// Transaction 在事务中执行fn
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return getDB(ctx, m.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// getDB 从context获取事务DB,没有事务时使用默认DB
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
