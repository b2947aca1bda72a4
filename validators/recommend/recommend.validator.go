package recommendValidator

import (
	"strings"

	"github.com/phungle2508/antoree-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

// Chat validates the chat widget query
func Chat() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := strings.TrimSpace(c.Query("query"))

		errors := make(map[string]string)
		if query == "" {
			errors["query"] = "Query is required!"
		}
		if len(query) > 500 {
			errors["query"] = "Query must not exceed 500 characters!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("chatQuery", query)
		return c.Next()
	}
}

// SimilarCourses validates the course ID param
func SimilarCourses() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("id"))
		if courseID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
