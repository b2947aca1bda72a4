package controllers

import (
	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/middleware"
	"github.com/phungle2508/antoree-backend/models"
	"github.com/phungle2508/antoree-backend/store"

	"github.com/gofiber/fiber/v2"
)

// GetCart returns the cart joined with catalog records and line totals
func GetCart(c *fiber.Ctx) error {
	s := store.ForRequest(c)
	items := s.Cart()

	type cartLine struct {
		models.CartItem
		Course   *models.Course `json:"course,omitempty"`
		Subtotal float64        `json:"subtotal"`
	}

	lines := make([]cartLine, 0, len(items))
	var total float64
	for _, item := range items {
		line := cartLine{CartItem: item}
		if course, ok := catalog.Courses.ByID(item.ID); ok {
			line.Course = &course
			if course.Price != nil {
				line.Subtotal = *course.Price * float64(item.Quantity)
			}
		}
		total += line.Subtotal
		lines = append(lines, line)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart fetched successfully!", fiber.Map{
		"items": lines,
		"total": total,
	})
}

// AddCartItem adds a course to the cart or bumps its quantity
func AddCartItem(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCartItem").(*struct {
		CourseID string `json:"course_id" validate:"required"`
		Quantity int    `json:"quantity" validate:"omitempty,min=1"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	// Only known catalog courses can be carted
	if !catalog.Courses.Has(reqData.CourseID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	quantity := reqData.Quantity
	if quantity == 0 {
		quantity = 1
	}

	s := store.ForRequest(c)
	signal, err := s.AppendCart(reqData.CourseID, quantity)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update cart!", nil)
	}

	message := "Item added to cart"
	if signal == store.SignalUpdated {
		message = "Item quantity updated in cart"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, s.Cart())
}

// UpdateCartItem overwrites a cart line's quantity; zero or less removes it
func UpdateCartItem(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	quantity := c.Locals("quantity").(int)

	s := store.ForRequest(c)
	signal, err := s.UpdateCartItemQuantity(courseID, quantity)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update cart!", nil)
	}

	switch signal {
	case store.SignalNotFound:
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found in cart", s.Cart())
	case store.SignalRemoved:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Item removed from cart", s.Cart())
	default:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Item quantity updated in cart", s.Cart())
	}
}

// RemoveCartItem removes a course from the cart. Removing an absent item
// is reported, not failed.
func RemoveCartItem(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	s := store.ForRequest(c)
	signal, err := s.RemoveCartItem(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update cart!", nil)
	}

	if signal == store.SignalNotFound {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found in cart", s.Cart())
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Item removed from cart", s.Cart())
}

// ClearCart destroys the cart collection
func ClearCart(c *fiber.Ctx) error {
	s := store.ForRequest(c)
	if err := s.ClearCart(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to clear cart!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart cleared successfully!", nil)
}
