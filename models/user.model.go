package models

// QuizResult records one quiz attempt inside a course progress entry
type QuizResult struct {
	QuizID    string  `json:"quizId"`
	Score     float64 `json:"score"`
	Completed bool    `json:"completed"`
}

// Progress tracks a user's progress in a single enrolled course.
// CompletedLectures is append-only and intentionally not deduplicated,
// matching the cookie contract shared with the front-end.
type Progress struct {
	CourseID          string       `json:"courseId"`
	CompletedLectures []string     `json:"completedLectures"`
	QuizResults       []QuizResult `json:"quizResults"`
	OverallProgress   int          `json:"overallProgress"` // 0-100
	LastAccessed      string       `json:"lastAccessed"`    // ISO-8601
}

// Certificate is issued for a completed course
type Certificate struct {
	ID         string `json:"id"`
	CourseID   string `json:"courseId"`
	CourseName string `json:"courseName"`
	UserName   string `json:"userName"`
	IssueDate  string `json:"issueDate"`
	ImageURL   string `json:"imageUrl"`
}

// UserData is the singleton profile stored in the userData cookie
type UserData struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	AvatarURL       string        `json:"avatarUrl"`
	EnrolledCourses []string      `json:"enrolledCourses"`
	Progress        []Progress    `json:"progress"`
	Certificates    []Certificate `json:"certificates"`
	JoinDate        string        `json:"joinDate"`
}

// DefaultUserData returns the hard-coded profile written on first access
// when no userData cookie exists yet
func DefaultUserData() UserData {
	return UserData{
		ID:              "u1",
		Name:            "John Doe",
		Email:           "john.doe@example.com",
		AvatarURL:       "https://api.dicebear.com/7.x/avataaars/svg?seed=John",
		EnrolledCourses: []string{},
		Progress:        []Progress{},
		Certificates:    []Certificate{},
		JoinDate:        "2024-01-15",
	}
}

// ProgressFor returns a pointer to the progress entry for courseID, or nil
func (u *UserData) ProgressFor(courseID string) *Progress {
	for i := range u.Progress {
		if u.Progress[i].CourseID == courseID {
			return &u.Progress[i]
		}
	}
	return nil
}

// IsEnrolled reports whether courseID is in the enrolled set
func (u *UserData) IsEnrolled(courseID string) bool {
	for _, id := range u.EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}
