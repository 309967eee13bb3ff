package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidSignature(t *testing.T) {
	body := []byte(`{"id":"txn_1"}`)
	sig := Sign("secret", body)

	assert.True(t, ValidSignature("secret", body, sig))
	assert.False(t, ValidSignature("other", body, sig))
	assert.False(t, ValidSignature("secret", []byte(`{"id":"txn_2"}`), sig))
	assert.False(t, ValidSignature("secret", body, "not-hex"))
	assert.False(t, ValidSignature("secret", body, ""))
}

func TestWebhookSignature_PreservesBody(t *testing.T) {
	e := echo.New()
	body := `{"id":"txn_1"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(WebhookSignatureHeader, Sign("secret", []byte(body)))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := WebhookSignature("secret")(func(c echo.Context) error {
		b, err := io.ReadAll(c.Request().Body)
		require.NoError(t, err)
		seen = string(b)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, h(c))
	assert.Equal(t, body, seen)
}

func TestWebhookSignature_DisabledWithoutSecret(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	h := WebhookSignature("")(func(echo.Context) error {
		called = true
		return nil
	})
	require.NoError(t, h(c))
	assert.True(t, called)
}
