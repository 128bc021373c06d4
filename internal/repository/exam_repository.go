package repository

import (
	"context"
	"fmt"
	"language_center_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type ExamRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewExamRepository(db *gorm.DB, rdb *redis.Client) *ExamRepository {
	return &ExamRepository{DB: db, Redis: rdb}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

// FindByID loads the exam with its sections and questions in display order.
func (r *ExamRepository) FindByID(id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("exam_sections.order asc, exam_sections.created_at asc")
		}).
		Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("exam_questions.order asc, exam_questions.created_at asc")
		}).
		First(&exam, "id = ?", id).Error
	return &exam, err
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).Delete(&model.ExamQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_id = ?", id).Delete(&model.ExamSection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_id = ?", id).Delete(&model.ExamSubmission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Exam{}, "id = ?", id).Error
	})
}

type ExamListRow struct {
	model.Exam
	QuestionCount   int `json:"questionCount"`
	SubmissionCount int `json:"submissionCount"`
}

func (r *ExamRepository) List(page, limit int, courseID uint, publishedOnly bool) ([]ExamListRow, int64, error) {
	query := r.DB.Model(&model.Exam{})
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dbQuery := r.DB.Table("exams e").
		Select("e.*, " +
			"(SELECT COUNT(*) FROM exam_questions q WHERE q.exam_id = e.id AND q.deleted_at IS NULL) as question_count, " +
			"(SELECT COUNT(*) FROM exam_submissions s WHERE s.exam_id = e.id AND s.deleted_at IS NULL) as submission_count").
		Where("e.deleted_at IS NULL")
	if courseID != 0 {
		dbQuery = dbQuery.Where("e.course_id = ?", courseID)
	}
	if publishedOnly {
		dbQuery = dbQuery.Where("e.is_published = ?", true)
	}

	var rows []ExamListRow
	offset := (page - 1) * limit
	err := dbQuery.Order("e.created_at desc").Offset(offset).Limit(limit).Scan(&rows).Error
	return rows, total, err
}

func (r *ExamRepository) CreateSection(section *model.ExamSection) error {
	return r.DB.Create(section).Error
}

func (r *ExamRepository) UpdateSection(section *model.ExamSection) error {
	return r.DB.Save(section).Error
}

func (r *ExamRepository) DeleteSection(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", id).Delete(&model.ExamQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ExamSection{}, "id = ?", id).Error
	})
}

func (r *ExamRepository) CreateQuestion(question *model.ExamQuestion) error {
	return r.DB.Create(question).Error
}

func (r *ExamRepository) UpdateQuestion(question *model.ExamQuestion) error {
	return r.DB.Save(question).Error
}

func (r *ExamRepository) DeleteQuestion(id string) error {
	return r.DB.Delete(&model.ExamQuestion{}, "id = ?", id).Error
}

func (r *ExamRepository) CreateSubmission(submission *model.ExamSubmission) error {
	return r.DB.Create(submission).Error
}

func (r *ExamRepository) FindSubmissionByID(id string) (*model.ExamSubmission, error) {
	var s model.ExamSubmission
	err := r.DB.First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ExamRepository) FindLatestSubmission(examID string, studentID uint) (*model.ExamSubmission, error) {
	var s model.ExamSubmission
	err := r.DB.Where("exam_id = ? AND student_id = ?", examID, studentID).
		Order("submitted_at desc").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CountSubmissions is the derived attempt count for (student, exam).
func (r *ExamRepository) CountSubmissions(examID string, studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamSubmission{}).
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		Count(&count).Error
	return count, err
}

// UpdateScoreIfNull persists a computed score only when none is stored yet.
// The guard lives in the WHERE clause so a reloaded results page can never
// clobber a score that was already written (including manual adjustments).
// Returns whether the row was updated.
func (r *ExamRepository) UpdateScoreIfNull(submissionID string, score, totalPossible float64) (bool, error) {
	result := r.DB.Model(&model.ExamSubmission{}).
		Where("id = ? AND score IS NULL", submissionID).
		Updates(map[string]interface{}{"score": score, "total_possible": totalPossible})
	return result.RowsAffected > 0, result.Error
}

// OverrideScore sets the final score unconditionally; reserved for teacher
// adjustments after manual essay grading.
func (r *ExamRepository) OverrideScore(submissionID string, score float64) error {
	return r.DB.Model(&model.ExamSubmission{}).
		Where("id = ?", submissionID).
		Update("score", score).Error
}

type SubmissionListRow struct {
	model.ExamSubmission
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
}

func (r *ExamRepository) ListSubmissionsByExam(examID string, page, limit int, studentName string) ([]SubmissionListRow, int64, error) {
	query := r.DB.Table("exam_submissions s").
		Select("s.*, u.name as student_name, u.email as student_email").
		Joins("JOIN users u ON s.student_id = u.id").
		Where("s.exam_id = ? AND s.deleted_at IS NULL", examID)

	if studentName != "" {
		query = query.Where("u.name LIKE ?", "%"+studentName+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []SubmissionListRow
	offset := (page - 1) * limit
	err := query.Order("s.submitted_at desc").Offset(offset).Limit(limit).Scan(&rows).Error
	return rows, total, err
}

func (r *ExamRepository) ListSubmissionsByStudent(studentID uint) ([]model.ExamSubmission, error) {
	var rows []model.ExamSubmission
	err := r.DB.Where("student_id = ?", studentID).Order("submitted_at desc").Find(&rows).Error
	return rows, err
}

func attemptKey(examID string, studentID uint) string {
	return fmt.Sprintf("exam:attempt:%s:%d", examID, studentID)
}

// MarkAttemptStarted records the wall-clock start of an attempt. SetNX keeps
// the original start on page refresh; the key expires on its own after the
// attempt window. No-op without redis.
func (r *ExamRepository) MarkAttemptStarted(ctx context.Context, examID string, studentID uint, ttl time.Duration) error {
	if r.Redis == nil {
		return nil
	}
	return r.Redis.SetNX(ctx, attemptKey(examID, studentID), time.Now().Unix(), ttl).Err()
}

// AttemptStartedAt returns when the running attempt began, or nil when no
// attempt is in progress (or redis is unavailable).
func (r *ExamRepository) AttemptStartedAt(ctx context.Context, examID string, studentID uint) (*time.Time, error) {
	if r.Redis == nil {
		return nil, nil
	}
	unix, err := r.Redis.Get(ctx, attemptKey(examID, studentID)).Int64()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	started := time.Unix(unix, 0)
	return &started, nil
}

func (r *ExamRepository) ClearAttempt(ctx context.Context, examID string, studentID uint) {
	if r.Redis != nil {
		r.Redis.Del(ctx, attemptKey(examID, studentID))
	}
}
