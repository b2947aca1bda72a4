package wishlistRoutes

import (
	controllers "github.com/phungle2508/antoree-backend/controllers/wishlist"
	validators "github.com/phungle2508/antoree-backend/validators/wishlist"

	"github.com/gofiber/fiber/v2"
)

// SetupWishlistRoutes sets up the cookie-backed wishlist routes
func SetupWishlistRoutes(app *fiber.App) {
	wishlistGroup := app.Group("/wishlist")

	wishlistGroup.Get("/", controllers.GetWishlist)
	wishlistGroup.Post("/items", validators.AddWishlistItem(), controllers.AddWishlistItem)
	wishlistGroup.Delete("/items/:id", validators.RemoveWishlistItem(), controllers.RemoveWishlistItem)
	wishlistGroup.Delete("/", controllers.ClearWishlist)
}
