package coverimage

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"

	// 注册图片解码器,DecodeConfig按文件头识别格式
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"go.uber.org/zap"

	"github.com/xiebiao/catalogue/internal/domain/book"
	"github.com/xiebiao/catalogue/internal/infrastructure/config"
	"github.com/xiebiao/catalogue/pkg/circuitbreaker"
	"github.com/xiebiao/catalogue/pkg/metrics"
	"github.com/xiebiao/catalogue/pkg/tracing"
)

const (
	tracerName  = "coverimage"
	breakerName = "cover-image"

	// maxHeaderBytes 解析图片尺寸最多读取的字节数
	maxHeaderBytes = 64 << 10
)

// 查询结果(metrics标签)
const (
	resultFound    = "found"
	resultMissing  = "missing"
	resultError    = "error"
	resultRejected = "rejected"
)

// statusError 封面服务返回5xx
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("cover service returned status %d", e.code)
}

// Resolver 封面解析器
// 设计说明:
// 1. 封面地址约定为 {base}/b/isbn/{isbn}-L.jpg
// 2. dimensions策略:解析图片头,宽高都大于1才算有封面(占位图是1x1)
// 3. status策略:HTTP 200即认为有封面
// 4. 网络错误和5xx计入熔断,404、占位图、无法解码只算"没有封面"
// 5. 任何失败都返回nil,不影响图书创建
type Resolver struct {
	baseURL string
	policy  string
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

var _ book.CoverResolver = (*Resolver)(nil)

// NewResolver 创建封面解析器
// breaker_failures为0时使用熔断器默认的连续失败阈值
func NewResolver(cfg config.CoverConfig) *Resolver {
	var readyToTrip func(circuitbreaker.Counts) bool
	if cfg.BreakerFailures > 0 {
		readyToTrip = circuitbreaker.ConsecutiveFailures(cfg.BreakerFailures)
	}

	breaker := circuitbreaker.New(breakerName, circuitbreaker.Config{
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: readyToTrip,
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			zap.L().Warn("熔断器状态变化",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})

	return &Resolver{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		policy:  cfg.Policy,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		logger:  zap.L().Named("coverimage"),
	}
}

// URL 返回ISBN对应的封面地址
func (r *Resolver) URL(isbn string) string {
	return fmt.Sprintf("%s/b/isbn/%s-L.jpg", r.baseURL, isbn)
}

// Resolve 查询封面,没有可用封面时返回nil
func (r *Resolver) Resolve(ctx context.Context, isbn string) *string {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Resolve")
	defer span.End()

	url := r.URL(isbn)

	var found bool
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		found, err = r.probe(ctx, url)
		return err
	})

	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		r.record(resultRejected)
		r.logger.Debug("熔断器打开,跳过封面查询", zap.String("isbn", isbn))
		return nil
	case err != nil:
		r.record(resultError)
		r.logger.Warn("封面查询失败", zap.String("isbn", isbn), zap.Error(err))
		return nil
	case !found:
		r.record(resultMissing)
		return nil
	}

	r.record(resultFound)
	return &url
}

// probe 请求封面地址并按策略判断是否可用
// 只有网络错误和5xx返回error
func (r *Resolver) probe(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return false, &statusError{code: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return false, nil
	}
	if r.policy == config.CoverPolicyStatus {
		return true, nil
	}

	cfg, format, err := image.DecodeConfig(io.LimitReader(resp.Body, maxHeaderBytes))
	if err != nil {
		r.logger.Debug("封面无法解码", zap.String("url", url), zap.Error(err))
		return false, nil
	}
	r.logger.Debug("封面尺寸",
		zap.String("url", url),
		zap.String("format", format),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	return cfg.Width > 1 && cfg.Height > 1, nil
}

func (r *Resolver) record(result string) {
	metrics.IncCounterVec(metrics.CoverLookupsTotal, map[string]string{"result": result})
}
