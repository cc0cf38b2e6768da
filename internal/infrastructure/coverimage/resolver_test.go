package coverimage

import (
	"bytes"
	"context"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/xiebiao/catalogue/internal/infrastructure/config"
	"github.com/xiebiao/catalogue/pkg/circuitbreaker"
	"github.com/xiebiao/catalogue/pkg/metrics"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func encodeGIF(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, image.NewPaletted(image.Rect(0, 0, w, h), palette.Plan9), nil))
	return buf.Bytes()
}

func encodeBMP(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// newCoverServer 按路径返回预设响应
func newCoverServer(t *testing.T, status int, body []byte) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestResolver(baseURL, policy string) *Resolver {
	return NewResolver(config.CoverConfig{
		BaseURL:         baseURL,
		Policy:          policy,
		Timeout:         time.Second,
		BreakerFailures: 2,
		BreakerTimeout:  time.Minute,
	})
}

func TestResolver_URL(t *testing.T) {
	r := newTestResolver("https://covers.openlibrary.org/", config.CoverPolicyDimensions)
	assert.Equal(t, "https://covers.openlibrary.org/b/isbn/9780306406157-L.jpg", r.URL("9780306406157"))
}

func TestResolver_DimensionsPolicy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   func(t *testing.T) []byte
		found  bool
	}{
		{"PNG真实封面", http.StatusOK, func(t *testing.T) []byte { return encodePNG(t, 180, 270) }, true},
		{"BMP真实封面", http.StatusOK, func(t *testing.T) []byte { return encodeBMP(t, 3, 3) }, true},
		{"1x1占位图", http.StatusOK, func(t *testing.T) []byte { return encodeGIF(t, 1, 1) }, false},
		{"宽度为1", http.StatusOK, func(t *testing.T) []byte { return encodePNG(t, 1, 50) }, false},
		{"无法解码", http.StatusOK, func(t *testing.T) []byte { return []byte("not an image") }, false},
		{"404", http.StatusNotFound, func(t *testing.T) []byte { return nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newCoverServer(t, tt.status, tt.body(t))
			r := newTestResolver(srv.URL, config.CoverPolicyDimensions)

			got := r.Resolve(context.Background(), "1234567891")
			if !tt.found {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, srv.URL+"/b/isbn/1234567891-L.jpg", *got)
		})
	}
}

func TestResolver_StatusPolicy(t *testing.T) {
	srv, _ := newCoverServer(t, http.StatusOK, []byte("anything"))
	r := newTestResolver(srv.URL, config.CoverPolicyStatus)

	got := r.Resolve(context.Background(), "1234567891")
	require.NotNil(t, got)

	missing, _ := newCoverServer(t, http.StatusNotFound, nil)
	r = newTestResolver(missing.URL, config.CoverPolicyStatus)
	assert.Nil(t, r.Resolve(context.Background(), "1234567891"))
}

func TestResolver_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	r := NewResolver(config.CoverConfig{
		BaseURL: srv.URL,
		Policy:  config.CoverPolicyStatus,
		Timeout: 20 * time.Millisecond,
	})
	assert.Nil(t, r.Resolve(context.Background(), "1234567891"))
}

func TestResolver_CircuitBreaker(t *testing.T) {
	srv, hits := newCoverServer(t, http.StatusInternalServerError, nil)
	r := newTestResolver(srv.URL, config.CoverPolicyDimensions)
	rejected := testutil.ToFloat64(metrics.CoverLookupsTotal.WithLabelValues(resultRejected))

	assert.Nil(t, r.Resolve(context.Background(), "1234567891"))
	assert.Nil(t, r.Resolve(context.Background(), "1234567891"))
	assert.Equal(t, circuitbreaker.StateOpen, r.breaker.State())

	// 打开后不再访问封面服务
	assert.Nil(t, r.Resolve(context.Background(), "1234567891"))
	assert.EqualValues(t, 2, atomic.LoadInt32(hits))
	assert.Equal(t, rejected+1, testutil.ToFloat64(metrics.CoverLookupsTotal.WithLabelValues(resultRejected)))
}

func TestResolver_MissingDoesNotTrip(t *testing.T) {
	srv, hits := newCoverServer(t, http.StatusNotFound, nil)
	r := newTestResolver(srv.URL, config.CoverPolicyDimensions)

	for i := 0; i < 5; i++ {
		assert.Nil(t, r.Resolve(context.Background(), "1234567891"))
	}
	assert.Equal(t, circuitbreaker.StateClosed, r.breaker.State())
	assert.EqualValues(t, 5, atomic.LoadInt32(hits))
}
