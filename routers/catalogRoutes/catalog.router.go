package catalogRoutes

import (
	controllers "github.com/phungle2508/antoree-backend/controllers/catalog"
	validators "github.com/phungle2508/antoree-backend/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// SetupCatalogRoutes sets up the public course catalog routes
func SetupCatalogRoutes(app *fiber.App) {
	catalogGroup := app.Group("/catalog")

	catalogGroup.Get("/list", validators.CourseList(), controllers.GetCourseList)
	catalogGroup.Get("/featured", controllers.GetFeaturedCourses)
	catalogGroup.Get("/popular", controllers.GetPopularCourses)
	catalogGroup.Get("/categories", controllers.GetCategories)
	catalogGroup.Get("/:id", validators.GetCourseDetail(), controllers.GetCourseDetails)
}
