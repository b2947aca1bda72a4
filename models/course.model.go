package models

// Author represents a course instructor in the static catalog
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl"`
	Bio       string `json:"bio"`
}

// Review is a student review attached to a catalog entry
type Review struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	UserName      string  `json:"userName"`
	UserAvatarURL string  `json:"userAvatarUrl"`
	Rating        float64 `json:"rating"`
	Comment       string  `json:"comment"`
	Date          string  `json:"date"`
}

// LectureItem is a single video lecture inside a curriculum section
type LectureItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	VideoURL    string `json:"videoUrl"`
	Description string `json:"description"`
	IsFree      bool   `json:"isFree"`
}

// Section groups lectures inside a course curriculum
type Section struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Lectures []LectureItem `json:"lectures"`
}

// Question is a single MCQ question of a quiz
type Question struct {
	ID                 string   `json:"id"`
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
}

// Quiz is attached to a course and graded client-side
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Course is one read-only entry of the static catalog. The catalog is
// embedded at build time and never mutated at runtime.
type Course struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	LongDescription  string    `json:"longDescription"`
	ImageURL         string    `json:"imageUrl"`
	Category         string    `json:"category"`
	Level            string    `json:"level"` // Beginner, Intermediate, Advanced
	Price            *float64  `json:"price"` // null means free
	IsFeatured       bool      `json:"isFeatured"`
	IsPopular        bool      `json:"isPopular"`
	EnrolledStudents int       `json:"enrolledStudents"`
	Rating           float64   `json:"rating"`
	ReviewCount      int       `json:"reviewCount"`
	Language         string    `json:"language"`
	LastUpdated      string    `json:"lastUpdated"`
	AuthorID         string    `json:"authorId"`
	Curriculum       []Section `json:"curriculum"`
	Requirements     []string  `json:"requirements"`
	Objectives       []string  `json:"objectives"`
	Tags             []string  `json:"tags"`
	Quizzes          []Quiz    `json:"quizzes"`
	Reviews          []Review  `json:"reviews"`
}

// TotalLectures counts lectures across all curriculum sections
func (c Course) TotalLectures() int {
	total := 0
	for _, section := range c.Curriculum {
		total += len(section.Lectures)
	}
	return total
}

// Category is a catalog browse category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
