package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccessAndCreated(t *testing.T) {
	c, w := newContext()
	Success(c, gin.H{"isbn": "9780306406157"})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(0), body["code"])
	assert.Equal(t, "9780306406157", body["data"].(map[string]interface{})["isbn"])

	c, w = newContext()
	Created(c, "Book created successfully.", gin.H{})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Book created successfully.", decode(t, w)["message"])
}

func TestError(t *testing.T) {
	t.Run("校验详情按字段索引", func(t *testing.T) {
		c, w := newContext()
		Error(c, apperrors.ErrValidation.WithDetails(
			apperrors.FieldError{Field: "title", Reason: "minlength", Value: "ab"},
			apperrors.FieldError{Field: "language", Reason: "enum", Value: "xx"},
		))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(apperrors.ErrCodeValidation), body["code"])
		details := body["details"].(map[string]interface{})
		assert.Equal(t, map[string]interface{}{"reason": "minlength", "value": "ab"}, details["title"])
		assert.Equal(t, map[string]interface{}{"reason": "enum", "value": "xx"}, details["language"])
		assert.NotContains(t, body, "data")
	})

	t.Run("非法查询参数", func(t *testing.T) {
		c, w := newContext()
		Error(c, apperrors.ErrInvalidQuery.WithInvalidParameters("color"))

		body := decode(t, w)
		assert.Equal(t, []interface{}{"color"}, body["invalidParameters"])
		assert.NotContains(t, body, "details")
	})

	t.Run("内部错误不泄露原因", func(t *testing.T) {
		c, w := newContext()
		Error(c, errors.New("dial tcp 10.0.0.1:3306: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "10.0.0.1")
		assert.Equal(t, apperrors.ErrInternal.Message, decode(t, w)["message"])
	})

	t.Run("包装的数据库错误同样隐藏消息", func(t *testing.T) {
		c, w := newContext()
		Error(c, apperrors.Wrap(errors.New("deadlock"), "更新计数失败"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apperrors.ErrInternal.Message, decode(t, w)["message"])
	})
}

func TestAbort(t *testing.T) {
	c, w := newContext()
	Abort(c, apperrors.ErrUnauthorized)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
