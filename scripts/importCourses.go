package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/phungle2508/antoree-backend/catalog"
)

// Validates a course catalog file and rewrites it normalized into
// catalog/courses.json, where it gets embedded into the binary.
// Usage: go run scripts/importCourses.go [input.json]
func main() {
	input := "catalog/courses.json"
	if len(os.Args) > 1 {
		input = os.Args[1]
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		log.Fatalf("Failed to open catalog file: %v", err)
	}

	cat, err := catalog.Parse(raw)
	if err != nil {
		log.Fatalf("Failed to parse catalog: %v", err)
	}

	courses := cat.All()
	log.Printf("Total courses to import: %d", len(courses))

	seen := make(map[string]bool)
	lectures := 0
	quizzes := 0
	free := 0
	skipped := 0

	kept := courses[:0]
	for _, course := range courses {
		if course.ID == "" || course.Title == "" {
			log.Printf("Skipping course with missing id or title: %+v", course)
			skipped++
			continue
		}
		if seen[course.ID] {
			log.Fatalf("Duplicate course ID: %s", course.ID)
		}
		seen[course.ID] = true

		lectures += course.TotalLectures()
		quizzes += len(course.Quizzes)
		if course.Price == nil {
			free++
		}
		kept = append(kept, course)
	}

	out, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal catalog: %v", err)
	}
	if err := os.WriteFile("catalog/courses.json", append(out, '\n'), 0644); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}

	log.Printf("Import complete: %d courses, %d lectures, %d quizzes, %d free, %d skipped",
		len(kept), lectures, quizzes, free, skipped)
}
