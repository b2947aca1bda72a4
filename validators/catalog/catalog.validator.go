package catalogValidator

import (
	"strconv"
	"strings"

	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

// CourseList validates the catalog listing filters and pagination
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		filter := catalog.Filter{
			Category: strings.TrimSpace(c.Query("category")),
			Level:    strings.TrimSpace(c.Query("level")),
			Search:   strings.TrimSpace(c.Query("search")),
			Page:     1,
			Limit:    12,
		}

		if filter.Level != "" {
			switch strings.ToLower(filter.Level) {
			case "beginner", "intermediate", "advanced":
			default:
				errors["level"] = "Level must be Beginner, Intermediate or Advanced!"
			}
		}

		if raw := strings.TrimSpace(c.Query("free")); raw != "" {
			free, err := strconv.ParseBool(raw)
			if err != nil {
				errors["free"] = "Free must be a boolean!"
			}
			filter.FreeOnly = free
		}

		if raw := strings.TrimSpace(c.Query("min_rating")); raw != "" {
			rating, err := strconv.ParseFloat(raw, 64)
			if err != nil || rating < 0 || rating > 5 {
				errors["min_rating"] = "Minimum rating must be between 0 and 5!"
			} else {
				filter.MinRating = rating
			}
		}

		if raw := strings.TrimSpace(c.Query("page")); raw != "" {
			page, err := strconv.Atoi(raw)
			if err != nil || page < 1 {
				errors["page"] = "Page must be a positive integer!"
			} else {
				filter.Page = page
			}
		}

		if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 1 || limit > 100 {
				errors["limit"] = "Limit must be between 1 and 100!"
			} else {
				filter.Limit = limit
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseFilter", filter)
		return c.Next()
	}
}

// GetCourseDetail validates the course ID param
func GetCourseDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("id"))
		if courseID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
