package devbackend

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter(h *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(h.Authenticate())
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := extractUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "ok": ok})
	})
	r.GET("/private", RequireUser(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthenticateWithToken(t *testing.T) {
	h := NewAuthHandler(nil, []byte("secret"))
	token, err := h.issueToken(User{ID: 42, Username: "ada"})
	require.NoError(t, err)

	r := authRouter(h)
	for _, header := range []string{token, "Bearer " + token} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":42,"ok":true}`, w.Body.String())
	}
}

func TestAnonymousRequests(t *testing.T) {
	r := authRouter(NewAuthHandler(nil, []byte("secret")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.JSONEq(t, `{"id":0,"ok":false}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication credentials were not provided.")
}

func TestExtractUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := extractUserID(c)
	assert.False(t, ok)

	for _, v := range []any{7, uint(7), float64(7)} {
		c.Set("user_id", v)
		id, ok := extractUserID(c)
		assert.True(t, ok)
		assert.Equal(t, 7, id)
	}

	c.Set("user_id", "7")
	_, ok = extractUserID(c)
	assert.False(t, ok)
}
