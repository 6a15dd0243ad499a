package middleware

import (
	"encoding/json"
	"time"

	"salon-booking/logger"
	"salon-booking/types"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger persists request/response pairs through the async logger.
// The response body is capped so oversized payloads do not bloat the table.
func RequestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	const maxBodyBytes = 4096

	return func(c *fiber.Ctx) error {
		err := c.Next()

		entry := types.LogEntry{
			Method:          c.Method(),
			URL:             c.OriginalURL(),
			RequestBody:     truncate(c.Body(), maxBodyBytes),
			ResponseBody:    truncate(c.Response().Body(), maxBodyBytes),
			RequestHeaders:  headerJSON(c.GetReqHeaders()),
			ResponseHeaders: headerJSON(c.GetRespHeaders()),
			StatusCode:      c.Response().StatusCode(),
			CreatedAt:       time.Now(),
		}

		if claims, ok := c.Locals("user").(map[string]interface{}); ok {
			entry.ActorUUID, _ = claims["uuid"].(string)
		}

		asyncLogger.Log(entry)

		return err
	}
}

func truncate(body []byte, max int) string {
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}

func headerJSON(headers map[string][]string) string {
	// Never persist credentials
	delete(headers, "Authorization")
	delete(headers, "Cookie")
	delete(headers, "Set-Cookie")

	encoded, err := json.Marshal(headers)
	if err != nil {
		return ""
	}
	return string(encoded)
}
