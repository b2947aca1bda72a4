package recommendRoutes

import (
	controllers "github.com/phungle2508/antoree-backend/controllers/recommend"
	validators "github.com/phungle2508/antoree-backend/validators/recommend"

	"github.com/gofiber/fiber/v2"
)

// SetupRecommendRoutes sets up the recommendation, chat and dashboard routes
func SetupRecommendRoutes(app *fiber.App) {
	app.Get("/recommend", controllers.GetRecommendations)
	app.Get("/recommend/course/:id", validators.SimilarCourses(), controllers.GetSimilarCourses)
	app.Get("/chat", validators.Chat(), controllers.ChatWithAI)
	app.Get("/dashboard", controllers.GetDashboard)
}
