package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(header string) (*httptest.ResponseRecorder, string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) {
		seen = Value(c)
		if FromContext(c.Request.Context()) != seen {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(HeaderKey, header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec, seen
}

func TestMiddlewareKeepsIncomingID(t *testing.T) {
	rec, seen := serve("abc-123")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderKey))
}

func TestMiddlewareGeneratesID(t *testing.T) {
	rec, seen := serve("")
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(HeaderKey))

	_, replaced := serve(strings.Repeat("x", 200))
	assert.Len(t, replaced, 36)
}

func TestMiddlewareReplacesUnsafeID(t *testing.T) {
	rec, seen := serve("evil id\r\nX-Injected: 1")
	assert.Len(t, seen, 36)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Injected"))
}
