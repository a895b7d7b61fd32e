package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func verifyRequest(secret, header string) int {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/webhook", VerifyTelegramSecret(secret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	if header != "" {
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestVerifyTelegramSecret(t *testing.T) {
	assert.Equal(t, http.StatusOK, verifyRequest("s3cret", "s3cret"))
	assert.Equal(t, http.StatusUnauthorized, verifyRequest("s3cret", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, verifyRequest("s3cret", ""))

	// No secret configured: webhook registered without one, check skipped
	assert.Equal(t, http.StatusOK, verifyRequest("", ""))
}
