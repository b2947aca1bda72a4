package userRoutes

import (
	controllers "github.com/phungle2508/antoree-backend/controllers/progress"
	validators "github.com/phungle2508/antoree-backend/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up the profile, enrollment and progress routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")
	userGroup.Get("/profile", controllers.GetUserProfile)
	userGroup.Get("/enrollments", controllers.GetUserEnrollments)
	userGroup.Get("/certificates", controllers.GetUserCertificates)

	courseGroup := app.Group("/course")
	courseGroup.Post("/:id/view", validators.CourseView(), controllers.RecordCourseView)
	courseGroup.Post("/:course_id/lecture/:lecture_id/complete", validators.CompleteLecture(), controllers.CompleteLecture)
	courseGroup.Post("/:course_id/quiz/:quiz_id/submit", validators.SubmitQuiz(), controllers.SubmitQuizResult)
}
