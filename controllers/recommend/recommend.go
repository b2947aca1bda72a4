package controllers

import (
	"github.com/phungle2508/antoree-backend/dashboard"
	"github.com/phungle2508/antoree-backend/middleware"
	"github.com/phungle2508/antoree-backend/recommend"
	"github.com/phungle2508/antoree-backend/store"

	"github.com/gofiber/fiber/v2"
)

// GetRecommendations derives recommendations for this browser's state.
// The exclusion guarantee holds even against a misbehaving AI service; a
// failed service call yields an empty list, never an error.
func GetRecommendations(c *fiber.Ctx) error {
	s := store.ForRequest(c)
	courses := recommend.DefaultDeriver.Recommended(s, middleware.SessionID(c))
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recommendations fetched successfully!", courses)
}

// GetSimilarCourses returns courses similar to one catalog entry
func GetSimilarCourses(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	courses := recommend.DefaultDeriver.Similar(courseID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Similar courses fetched successfully!", courses)
}

// ChatWithAI forwards a chat query to the AI service. Failures degrade to
// an empty result so the chat widget renders its fallback state.
func ChatWithAI(c *fiber.Ctx) error {
	query := c.Locals("chatQuery").(string)

	result, err := recommend.DefaultDeriver.Chat(query)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Chat service unavailable, no results.", recommend.ChatResult{
			Courses: []recommend.CourseRecommendation{},
		})
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chat response fetched successfully!", result)
}

// GetDashboard returns the session's reconciled dashboard snapshot from
// the server-side mirror
func GetDashboard(c *fiber.Ctx) error {
	watcher, err := dashboard.DefaultManager.Watcher(middleware.SessionID(c))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to open dashboard!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", watcher.Snapshot())
}
