package model

import "time"

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentWithdrawn = "withdrawn"
)

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	CourseID   uint      `gorm:"index;type:bigint unsigned;uniqueIndex:idx_course_student" json:"courseId"`
	StudentID  uint      `gorm:"index;type:bigint unsigned;uniqueIndex:idx_course_student" json:"studentId"`
	Status     string    `gorm:"type:enum('active','completed','withdrawn');default:'active'" json:"status"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
