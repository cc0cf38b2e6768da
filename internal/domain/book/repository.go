package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 所有isbn参数都是已规范化的ISBN
// 3. 找不到记录时返回ErrBookNotFound,唯一键冲突返回ErrISBNDuplicate
// 4. 在Transactor.Transaction内调用时,自动加入当前事务
type Repository interface {
	// Create 创建图书(连同分类)
	Create(ctx context.Context, book *Book) error

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// ExistsByISBN ISBN是否已被占用
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	// Replace 整体替换currentISBN对应的图书(ISBN本身也可以变化)
	Replace(ctx context.Context, currentISBN string, book *Book) error

	// Delete 根据ISBN删除图书(物理删除)
	Delete(ctx context.Context, isbn string) error

	// LockByISBN 查询并锁定图书行(SELECT ... FOR UPDATE)
	// 必须在事务中调用
	LockByISBN(ctx context.Context, isbn string) (*Book, error)

	// SaveCounters 在同一条UPDATE中写回下载次数、书单次数和评分统计
	SaveCounters(ctx context.Context, book *Book) error

	// Search 按过滤条件查询(顺序不保证)
	Search(ctx context.Context, filter Filter) ([]*Book, error)

	// Latest 按出版年份倒序,最多limit本
	Latest(ctx context.Context, limit int) ([]*Book, error)

	// Featured 查询推荐类型不为none的图书
	Featured(ctx context.Context) ([]*Book, error)

	// Stats 聚合统计
	Stats(ctx context.Context) (*Stats, error)
}

// Transactor 事务管理接口
// fn返回error时回滚,返回nil时提交
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CoverResolver 封面解析接口
// 返回nil表示没有可用封面,解析失败不返回错误
type CoverResolver interface {
	Resolve(ctx context.Context, isbn string) *string
}
