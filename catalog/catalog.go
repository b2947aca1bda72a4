package catalog

import (
	_ "embed"
	"encoding/json"
	"log"
	"sort"
	"strings"

	"github.com/phungle2508/antoree-backend/models"
)

//go:embed courses.json
var coursesJSON []byte

// Catalog is the static, read-only course list loaded once at startup.
// The core never mutates it.
type Catalog struct {
	courses []models.Course
	byID    map[string]models.Course
}

// Courses is the global catalog instance
var Courses *Catalog

// LoadCatalog parses the embedded course list into the global instance
func LoadCatalog() {
	cat, err := Parse(coursesJSON)
	if err != nil {
		log.Fatalf("Failed to load course catalog: %v", err)
	}
	Courses = cat
	log.Printf("Loaded %d courses into the catalog", len(cat.courses))
}

// Parse builds a catalog from raw JSON
func Parse(data []byte) (*Catalog, error) {
	var courses []models.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, err
	}
	return New(courses), nil
}

// New builds a catalog from an in-memory course list (used by tests)
func New(courses []models.Course) *Catalog {
	byID := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	return &Catalog{courses: courses, byID: byID}
}

// All returns every course in catalog order
func (c *Catalog) All() []models.Course {
	return c.courses
}

// ByID looks a course up by its identifier
func (c *Catalog) ByID(id string) (models.Course, bool) {
	course, ok := c.byID[id]
	return course, ok
}

// Has reports whether id exists in the catalog
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// TotalLectures returns the lecture count for a course, 0 if unknown
func (c *Catalog) TotalLectures(id string) int {
	course, ok := c.byID[id]
	if !ok {
		return 0
	}
	return course.TotalLectures()
}

// Featured returns courses flagged for the home page hero sections
func (c *Catalog) Featured() []models.Course {
	var out []models.Course
	for _, course := range c.courses {
		if course.IsFeatured {
			out = append(out, course)
		}
	}
	return out
}

// Popular returns courses flagged as popular
func (c *Catalog) Popular() []models.Course {
	var out []models.Course
	for _, course := range c.courses {
		if course.IsPopular {
			out = append(out, course)
		}
	}
	return out
}

// Categories returns the distinct categories present in the catalog
func (c *Catalog) Categories() []models.Category {
	seen := make(map[string]bool)
	var out []models.Category
	for _, course := range c.courses {
		if course.Category == "" || seen[course.Category] {
			continue
		}
		seen[course.Category] = true
		out = append(out, models.Category{
			ID:   strings.ToLower(strings.ReplaceAll(course.Category, " ", "-")),
			Name: course.Category,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Filter narrows a catalog listing. Zero values mean "no constraint".
type Filter struct {
	Category  string
	Level     string
	Search    string
	FreeOnly  bool
	MinRating float64
	Page      int
	Limit     int
}

// Search returns the filtered page of courses and the total match count
func (c *Catalog) Search(f Filter) ([]models.Course, int) {
	var matched []models.Course
	query := strings.ToLower(strings.TrimSpace(f.Search))

	for _, course := range c.courses {
		if f.Category != "" && !strings.EqualFold(course.Category, f.Category) {
			continue
		}
		if f.Level != "" && !strings.EqualFold(course.Level, f.Level) {
			continue
		}
		if f.FreeOnly && course.Price != nil {
			continue
		}
		if f.MinRating > 0 && course.Rating < f.MinRating {
			continue
		}
		if query != "" && !matchesQuery(course, query) {
			continue
		}
		matched = append(matched, course)
	}

	total := len(matched)
	if f.Limit <= 0 {
		return matched, total
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * f.Limit
	if start >= total {
		return []models.Course{}, total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total
}

func matchesQuery(course models.Course, query string) bool {
	if strings.Contains(strings.ToLower(course.Title), query) ||
		strings.Contains(strings.ToLower(course.Description), query) {
		return true
	}
	for _, tag := range course.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
