package schema

// LessonPlanTable represents the 'lessons.plan' table
type LessonPlanTable struct {
	Table      string
	ID         string
	UserID     string
	Title      string
	Subject    string
	GradeLevel string
	Duration   string
	Content    string
	IsPublic   string
	CreatedAt  string
	UpdatedAt  string
}

// LessonPlan is the schema definition for lessons.plan
var LessonPlan = LessonPlanTable{
	Table:      "lessons.plan",
	ID:         "id",
	UserID:     "userid",
	Title:      "title",
	Subject:    "subject",
	GradeLevel: "gradelevel",
	Duration:   "duration",
	Content:    "content",
	IsPublic:   "ispublic",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// Columns returns all standard column names
func (t LessonPlanTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Title, t.Subject, t.GradeLevel, t.Duration,
		t.Content, t.IsPublic, t.CreatedAt, t.UpdatedAt,
	}
}
