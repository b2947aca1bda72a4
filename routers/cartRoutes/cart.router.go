package cartRoutes

import (
	controllers "github.com/phungle2508/antoree-backend/controllers/cart"
	validators "github.com/phungle2508/antoree-backend/validators/cart"

	"github.com/gofiber/fiber/v2"
)

// SetupCartRoutes sets up the cookie-backed cart routes
func SetupCartRoutes(app *fiber.App) {
	cartGroup := app.Group("/cart")

	cartGroup.Get("/", controllers.GetCart)
	cartGroup.Post("/items", validators.AddCartItem(), controllers.AddCartItem)
	cartGroup.Put("/items/:id", validators.UpdateCartItem(), controllers.UpdateCartItem)
	cartGroup.Delete("/items/:id", validators.RemoveCartItem(), controllers.RemoveCartItem)
	cartGroup.Delete("/", controllers.ClearCart)
}
