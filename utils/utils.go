package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"salon-booking/types"
)

// DefaultCountryCode returns the dialing prefix used when a phone number
// arrives without one.
func DefaultCountryCode() string {
	if cc := os.Getenv("DEFAULT_COUNTRY_CODE"); cc != "" {
		return cc
	}
	return "+91"
}

// NormalizePhone strips separators and prefixes the country code when
// absent, producing an E.164-like number for the SMS gateway.
func NormalizePhone(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	if cleaned == "" {
		return ""
	}

	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}

	cc := DefaultCountryCode()

	// "00" international prefix
	if strings.HasPrefix(cleaned, "00") {
		return "+" + cleaned[2:]
	}

	// Trunk prefix: replace leading zero with the country code
	if strings.HasPrefix(cleaned, "0") {
		return cc + cleaned[1:]
	}

	// Already starts with the country code digits
	if strings.HasPrefix(cleaned, strings.TrimPrefix(cc, "+")) && len(cleaned) > 10 {
		return "+" + cleaned
	}

	return cc + cleaned
}

// ActorFromContext extracts the authenticated user's uuid and role from
// the claims the auth middleware attached to the request.
func ActorFromContext(c *fiber.Ctx) (uuid string, role string, ok bool) {
	claims, found := c.Locals("user").(map[string]interface{})
	if !found {
		return "", "", false
	}

	uuid, _ = claims["uuid"].(string)
	role, _ = claims["role"].(string)
	if uuid == "" {
		return "", "", false
	}
	return uuid, role, true
}

// Unauthorized writes the standard 401 envelope
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Invalid user claims"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
		Message: message,
		Status:  fiber.StatusUnauthorized,
		Data:    nil,
	})
}

// BadRequest writes the standard 400 envelope
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
		Message: message,
		Status:  fiber.StatusBadRequest,
		Data:    nil,
	})
}

// MaskPhone hides the middle digits of a phone number for responses shown
// to operators who should not see the full customer number.
func MaskPhone(phone string) string {
	if len(phone) < 8 {
		return phone
	}
	return fmt.Sprintf("%s*****%s", phone[:3], phone[len(phone)-3:])
}
