package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/athlete-load-api/internal/models"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestMetaCollectsDegradedAndTiming(t *testing.T) {
	c, _ := newContext()
	assert.Nil(t, Meta(c))

	c.Set(requestStartKey, time.Now().Add(-20*time.Millisecond))
	Degraded(c, "")
	Degraded(c, "store down")
	meta := Meta(c)
	assert.Equal(t, true, meta["degraded"])
	assert.Equal(t, "store down", meta["warning"])
	assert.GreaterOrEqual(t, meta["processing_time_ms"].(int64), int64(20))
}

func TestJSONIncludesMetaAndPagination(t *testing.T) {
	c, w := newContext()
	Degraded(c, "partial data")

	JSON(c, http.StatusOK, []string{"a"}, &models.Pagination{Page: 1, PageSize: 10, TotalCount: 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	body := decode(t, w)
	assert.JSONEq(t, `["a"]`, string(body["data"]))
	assert.JSONEq(t, `{"degraded":true,"warning":"partial data"}`, string(body["meta"]))
	assert.Contains(t, body, "pagination")
	assert.NotContains(t, body, "error")
}

func TestJSONOmitsEmptyMeta(t *testing.T) {
	c, w := newContext()

	Created(c, map[string]string{"id": "rec-1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.NotContains(t, body, "meta")
}

func TestErrorMapsStatus(t *testing.T) {
	c, w := newContext()

	Error(c, appErrors.Clone(appErrors.ErrStoreUnavailable, "record store is unreachable"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrStoreUnavailable.Code)

	c, w = newContext()
	Error(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAttachment(t *testing.T) {
	c, w := newContext()

	Attachment(c, "group-20240506.csv", "text/csv", []byte("a,b\n"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="group-20240506.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "a,b\n", w.Body.String())
}

func TestTimingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timing())
	r.GET("/ping", func(c *gin.Context) { JSON(c, http.StatusOK, "pong", nil) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	body := decode(t, w)
	assert.Contains(t, string(body["meta"]), "processing_time_ms")
}
