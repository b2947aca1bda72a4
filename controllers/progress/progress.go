package controllers

import (
	"sort"

	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/middleware"
	"github.com/phungle2508/antoree-backend/models"
	"github.com/phungle2508/antoree-backend/store"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile returns the userData profile, creating the default on
// first access
func GetUserProfile(c *fiber.Ctx) error {
	s := store.ForRequest(c)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", s.UserData())
}

// GetUserEnrollments returns enrolled courses joined with progress,
// most recently accessed first
func GetUserEnrollments(c *fiber.Ctx) error {
	s := store.ForRequest(c)
	data := s.UserData()

	type enrolledCourse struct {
		Course   models.Course   `json:"course"`
		Progress models.Progress `json:"progress"`
	}

	enrollments := make([]enrolledCourse, 0, len(data.EnrolledCourses))
	for _, id := range data.EnrolledCourses {
		course, ok := catalog.Courses.ByID(id)
		if !ok {
			continue
		}
		entry := enrolledCourse{Course: course}
		if p := data.ProgressFor(id); p != nil {
			entry.Progress = *p
		}
		enrollments = append(enrollments, entry)
	}
	sort.SliceStable(enrollments, func(i, j int) bool {
		return enrollments[i].Progress.LastAccessed > enrollments[j].Progress.LastAccessed
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// GetUserCertificates lists the certificates on the profile
func GetUserCertificates(c *fiber.Ctx) error {
	s := store.ForRequest(c)
	data := s.UserData()
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", data.Certificates)
}

// RecordCourseView marks a course as viewed. Viewing a course enrolls it.
func RecordCourseView(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	if !catalog.Courses.Has(courseID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	s := store.ForRequest(c)
	if err := s.RecordCourseView(courseID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record course view!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course view recorded successfully!", s.UserData())
}

// CompleteLecture appends a completed lecture and returns the updated progress
func CompleteLecture(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	lectureID := c.Locals("lectureID").(string)

	course, ok := catalog.Courses.ByID(courseID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// The lecture must belong to the course's curriculum
	found := false
	for _, section := range course.Curriculum {
		for _, lecture := range section.Lectures {
			if lecture.ID == lectureID {
				found = true
				break
			}
		}
	}
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found in this course!", nil)
	}

	s := store.ForRequest(c)
	progress, err := s.RecordLectureCompletion(courseID, lectureID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record lecture completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture completion recorded successfully!", progress)
}

// SubmitQuizResult upserts a quiz attempt on the course's progress entry
func SubmitQuizResult(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)
	quizID := c.Locals("quizID").(string)
	reqData, ok := c.Locals("validatedQuizResult").(*struct {
		Score     float64 `json:"score" validate:"min=0,max=100"`
		Completed bool    `json:"completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	course, found := catalog.Courses.ByID(courseID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	quizExists := false
	for _, quiz := range course.Quizzes {
		if quiz.ID == quizID {
			quizExists = true
			break
		}
	}
	if !quizExists {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found in this course!", nil)
	}

	s := store.ForRequest(c)
	progress, err := s.RecordQuizResult(courseID, quizID, reqData.Score, reqData.Completed)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record quiz result!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz result recorded successfully!", progress)
}
