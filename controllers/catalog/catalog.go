package controllers

import (
	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetCourseList returns the filtered, paginated catalog listing
func GetCourseList(c *fiber.Ctx) error {
	filter, ok := c.Locals("validatedCourseFilter").(catalog.Filter)
	if !ok {
		filter = catalog.Filter{Page: 1, Limit: 12}
	}

	courses, total := catalog.Courses.Search(filter)

	response := fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  filter.Page,
			"limit": filter.Limit,
		},
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetFeaturedCourses returns the home page featured rail
func GetFeaturedCourses(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Featured courses fetched successfully!", catalog.Courses.Featured())
}

// GetPopularCourses returns the home page popular rail
func GetPopularCourses(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Popular courses fetched successfully!", catalog.Courses.Popular())
}

// GetCategories returns the distinct catalog categories
func GetCategories(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", catalog.Courses.Categories())
}

// GetCourseDetails returns one catalog entry with curriculum, quizzes and reviews
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	course, ok := catalog.Courses.ByID(courseID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", course)
}
