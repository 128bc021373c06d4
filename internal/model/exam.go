package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionFillBlank      = "fill_blank"
	QuestionEssay          = "essay"
)

// swagger:model Exam
type Exam struct {
	UUIDBase
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Category        string     `gorm:"size:100" json:"category"` // grammar, listening, placement...
	CourseID        uint       `gorm:"index;type:bigint unsigned" json:"courseId"`
	CreatorID       uint       `gorm:"index;type:bigint unsigned" json:"creatorId"`
	DurationMinutes int        `gorm:"default:60" json:"durationMinutes"`
	DueDate         time.Time  `json:"dueDate"`
	MaxAttempts     int        `gorm:"default:1" json:"maxAttempts"`
	PassingScore    float64    `gorm:"default:60" json:"passingScore"` // percentage
	IsPublished     bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`

	Sections []ExamSection `gorm:"foreignKey:ExamID;references:ID" json:"sections,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// ExamSection orders questions for display; ordering has no effect on scoring.
// swagger:model ExamSection
type ExamSection struct {
	UUIDBase
	ExamID      string `gorm:"index;type:varchar(36)" json:"examId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"default:0" json:"order"`

	Questions []ExamQuestion `gorm:"foreignKey:SectionID;references:ID" json:"questions,omitempty"`
}

func (ExamSection) TableName() string {
	return "exam_sections"
}

// swagger:model ExamQuestion
type ExamQuestion struct {
	UUIDBase
	SectionID     string         `gorm:"index;type:varchar(36)" json:"sectionId"`
	ExamID        string         `gorm:"index;type:varchar(36)" json:"examId"`
	QuestionType  string         `gorm:"size:50;not null" json:"questionType"` // multiple_choice, fill_blank, essay
	Text          string         `gorm:"type:text;not null" json:"text"`
	Options       datatypes.JSON `gorm:"type:json" json:"options,omitempty"` // [{"id":"a","text":"..."}]
	CorrectAnswer string         `gorm:"type:text" json:"correctAnswer"`     // option id or expected text; unused for essay
	Points        float64        `gorm:"default:0" json:"points"`
	Explanation   string         `gorm:"type:text" json:"explanation"`
	Order         int            `gorm:"default:0" json:"order"`
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}

// QuestionOption is the JSON shape stored in ExamQuestion.Options.
type QuestionOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
