package model

// GradeItem is a weighted component of a course grade (homework, oral exam...).
// swagger:model GradeItem
type GradeItem struct {
	BaseModel
	CourseID uint    `gorm:"index;type:bigint unsigned" json:"courseId"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	Weight   float64 `gorm:"default:1" json:"weight"`
	MaxScore float64 `gorm:"default:100" json:"maxScore"`
}

func (GradeItem) TableName() string {
	return "grade_items"
}

// swagger:model GradeEntry
type GradeEntry struct {
	BaseModel
	ItemID    uint    `gorm:"index;type:bigint unsigned;uniqueIndex:idx_item_student" json:"itemId"`
	StudentID uint    `gorm:"index;type:bigint unsigned;uniqueIndex:idx_item_student" json:"studentId"`
	Score     float64 `json:"score"`
	Feedback  string  `gorm:"type:text" json:"feedback"`
	GraderID  uint    `gorm:"index;type:bigint unsigned" json:"graderId"`
}

func (GradeEntry) TableName() string {
	return "grade_entries"
}
