package middleware

import (
	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
)

// HeaderSessionID carries the client's session identifier for the
// server-side store mirror. No authentication is attached to it.
const HeaderSessionID = "X-Session-Id"

// SessionMiddleware ensures every request has a session ID, generating one
// when the client sends none, and echoes it on the response so the client
// can keep using it.
func SessionMiddleware(c *fiber.Ctx) error {
	sessionID := c.Get(HeaderSessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	c.Locals("sessionId", sessionID)
	c.Set(HeaderSessionID, sessionID)

	return c.Next()
}

// SessionID returns the request's session identifier
func SessionID(c *fiber.Ctx) string {
	sessionID, ok := c.Locals("sessionId").(string)
	if !ok {
		return ""
	}
	return sessionID
}
