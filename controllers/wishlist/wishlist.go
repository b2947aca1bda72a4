package controllers

import (
	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/middleware"
	"github.com/phungle2508/antoree-backend/models"
	"github.com/phungle2508/antoree-backend/store"

	"github.com/gofiber/fiber/v2"
)

// GetWishlist returns the wishlist joined with catalog records
func GetWishlist(c *fiber.Ctx) error {
	s := store.ForRequest(c)
	ids := s.Wishlist()

	courses := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		if course, ok := catalog.Courses.ByID(id); ok {
			courses = append(courses, course)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wishlist fetched successfully!", fiber.Map{
		"ids":     ids,
		"courses": courses,
	})
}

// AddWishlistItem saves a course to the wishlist. Saving a course twice is
// an informational no-op, not an error.
func AddWishlistItem(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedWishlistItem").(*struct {
		CourseID string `json:"course_id" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if !catalog.Courses.Has(reqData.CourseID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	s := store.ForRequest(c)
	signal, err := s.AppendWishlist(reqData.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update wishlist!", nil)
	}

	if signal == store.SignalAlreadyExists {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Item already exists in wishlist", s.Wishlist())
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Item added to wishlist", s.Wishlist())
}

// RemoveWishlistItem removes a course from the wishlist
func RemoveWishlistItem(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	s := store.ForRequest(c)
	signal, err := s.RemoveWishlistItem(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update wishlist!", nil)
	}

	if signal == store.SignalNotFound {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found in wishlist", s.Wishlist())
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Item removed from wishlist", s.Wishlist())
}

// ClearWishlist destroys the wishlist collection
func ClearWishlist(c *fiber.Ctx) error {
	s := store.ForRequest(c)
	if err := s.ClearWishlist(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to clear wishlist!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wishlist cleared successfully!", nil)
}
