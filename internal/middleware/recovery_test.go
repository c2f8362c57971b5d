package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RecoveryMiddleware(zap.NewNop()))
	router.GET("/boom", func(c *gin.Context) {
		panic("unexpected")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")
}

func TestTimeoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("handlers see the deadline", func(t *testing.T) {
		router := gin.New()
		router.Use(TimeoutMiddleware(time.Minute))
		router.GET("/", func(c *gin.Context) {
			deadline, ok := c.Request.Context().Deadline()
			assert.True(t, ok)
			assert.True(t, deadline.After(time.Now()))
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("expired deadline surfaces through the context, not the writer", func(t *testing.T) {
		router := gin.New()
		router.Use(TimeoutMiddleware(time.Nanosecond))
		router.GET("/", func(c *gin.Context) {
			<-c.Request.Context().Done()
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": c.Request.Context().Err().Error()})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		// The handler wrote the response itself; the middleware never did.
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "context deadline exceeded")
	})
}
