package api

import (
	"crypto/tls"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCallbackURL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(host string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/api/oauth/github", nil)
		c.Request.Host = host
		return c
	}

	c := newCtx("lunatv.example")
	assert.Equal(t, "http://lunatv.example/api/oauth_callback", callbackURL(c))

	c = newCtx("lunatv.example")
	c.Request.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://lunatv.example/api/oauth_callback", callbackURL(c))

	// Behind a TLS-terminating proxy the forwarded proto wins.
	c = newCtx("lunatv.example")
	c.Request.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://lunatv.example/api/oauth_callback", callbackURL(c))
}
