package cartValidator

import (
	"strconv"
	"strings"

	"github.com/phungle2508/antoree-backend/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// AddCartItem validates the add-to-cart request body
func AddCartItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID string `json:"course_id" validate:"required"`
			Quantity int    `json:"quantity" validate:"omitempty,min=1"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData.CourseID = strings.TrimSpace(reqData.CourseID)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "CourseID":
					errors["course_id"] = "Course ID is required!"
				case "Quantity":
					errors["quantity"] = "Quantity must be at least 1!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCartItem", reqData)
		return c.Next()
	}
}

// UpdateCartItem validates the course ID param and quantity body
func UpdateCartItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("id"))
		if courseID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}

		reqData := new(struct {
			Quantity *int `json:"quantity"`
		})
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		if reqData.Quantity == nil {
			// Also accept ?quantity= for clients that cannot send bodies on PUT
			raw := strings.TrimSpace(c.Query("quantity"))
			if raw == "" {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"quantity": "Quantity is required!",
				})
			}
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"quantity": "Quantity must be an integer!",
				})
			}
			reqData.Quantity = &parsed
		}

		c.Locals("courseID", courseID)
		c.Locals("quantity", *reqData.Quantity)
		return c.Next()
	}
}

// RemoveCartItem validates the course ID param
func RemoveCartItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("id"))
		if courseID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
