package model

import "time"

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// AttendanceSession is one class meeting for which attendance is taken.
// swagger:model AttendanceSession
type AttendanceSession struct {
	BaseModel
	CourseID  uint      `gorm:"index;type:bigint unsigned" json:"courseId"`
	LessonID  uint      `gorm:"index;type:bigint unsigned" json:"lessonId"`
	TeacherID uint      `gorm:"index;type:bigint unsigned" json:"teacherId"`
	Date      time.Time `json:"date"`
}

func (AttendanceSession) TableName() string {
	return "attendance_sessions"
}

// swagger:model AttendanceRecord
type AttendanceRecord struct {
	BaseModel
	SessionID uint   `gorm:"index;type:bigint unsigned;uniqueIndex:idx_session_student" json:"sessionId"`
	StudentID uint   `gorm:"index;type:bigint unsigned;uniqueIndex:idx_session_student" json:"studentId"`
	Status    string `gorm:"type:enum('present','absent','late','excused');default:'present'" json:"status"`
	Note      string `gorm:"size:255" json:"note"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
