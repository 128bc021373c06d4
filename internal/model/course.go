package model

import "time"

const (
	CourseLevelBeginner     = "beginner"
	CourseLevelIntermediate = "intermediate"
	CourseLevelAdvanced     = "advanced"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Language    string     `gorm:"size:50;not null" json:"language"` // english, french, german...
	Level       string     `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"level"`
	TeacherID   uint       `gorm:"index;type:bigint unsigned" json:"teacherId"`
	Capacity    int        `gorm:"default:25" json:"capacity"`
	Schedule    string     `gorm:"size:255" json:"schedule"` // human-readable slot, e.g. "Mon/Wed 18:00"
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
}

func (Course) TableName() string {
	return "courses"
}

// Lesson carries its display name as a persisted column so every client sees
// the same labels regardless of device.
// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID        uint       `gorm:"index;type:bigint unsigned" json:"courseId"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	DisplayName     string     `gorm:"size:255" json:"displayName"`
	Description     string     `gorm:"type:text" json:"description"`
	Order           int        `gorm:"default:0" json:"order"`
	MaterialURL     string     `gorm:"size:512" json:"materialUrl"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	DurationMinutes int        `gorm:"default:60" json:"durationMinutes"`
}

func (Lesson) TableName() string {
	return "lessons"
}
