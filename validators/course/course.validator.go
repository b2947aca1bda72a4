package courseValidator

import (
	"strings"

	"github.com/phungle2508/antoree-backend/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CourseView validates the course ID param for the view endpoint
func CourseView() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("id"))
		if courseID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CompleteLecture validates the course and lecture ID params
func CompleteLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("course_id"))
		lectureID := strings.TrimSpace(c.Params("lecture_id"))

		errors := make(map[string]string)
		if courseID == "" {
			errors["course_id"] = "Course ID is required in the URL!"
		}
		if lectureID == "" {
			errors["lecture_id"] = "Lecture ID is required in the URL!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("lectureID", lectureID)
		return c.Next()
	}
}

// SubmitQuiz validates the quiz params and result body
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := strings.TrimSpace(c.Params("course_id"))
		quizID := strings.TrimSpace(c.Params("quiz_id"))

		errors := make(map[string]string)
		if courseID == "" {
			errors["course_id"] = "Course ID is required in the URL!"
		}
		if quizID == "" {
			errors["quiz_id"] = "Quiz ID is required in the URL!"
		}

		reqData := new(struct {
			Score     float64 `json:"score" validate:"min=0,max=100"`
			Completed bool    `json:"completed"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors["score"] = "Score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("quizID", quizID)
		c.Locals("validatedQuizResult", reqData)
		return c.Next()
	}
}
