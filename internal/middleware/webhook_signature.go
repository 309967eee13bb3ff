package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const WebhookSignatureHeader = "X-Webhook-Signature"

// WebhookSignature rejects deliveries whose hex HMAC-SHA256 of the raw body
// does not match the signature header. An empty secret disables the check.
func WebhookSignature(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return next
		}
		return func(c echo.Context) error {
			req := c.Request()
			body, err := io.ReadAll(req.Body)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "read request body")
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			signature := strings.TrimPrefix(strings.TrimSpace(req.Header.Get(WebhookSignatureHeader)), "sha256=")
			if !ValidSignature(secret, body, signature) {
				log.Warn().Str("remote_ip", c.RealIP()).Msg("webhook signature mismatch")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid webhook signature")
			}
			return next(c)
		}
	}
}

func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func ValidSignature(secret string, body []byte, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil || len(got) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}
