package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

// blacklistPrefix Token吊销列表的key前缀
const blacklistPrefix = "blacklist:"

// TokenBlacklist Token吊销列表
// 设计说明:
// 1. 每个被吊销的Token一个key,TTL与Token剩余有效期一致,过期自动清理
// 2. 签发方负责写入(SET blacklist:{token} revoked EX <剩余秒数>),本服务只读
type TokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist 创建Token吊销列表
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// IsRevoked Token是否已被吊销
func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false, apperrors.ErrRedisError.WithCause(err)
	}
	return n > 0, nil
}
