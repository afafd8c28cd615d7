package repository

import (
	"time"

	"github.com/Shibo14/ielts-mock/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(s *model.Submission) error {
	return r.DB.Create(s).Error
}

func (r *SubmissionRepository) Update(s *model.Submission) error {
	return r.DB.Save(s).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

func (r *SubmissionRepository) FindByIDWithTest(id string) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.Preload("Test").First(&s, "id = ?", id).Error
	return &s, err
}

func (r *SubmissionRepository) ListByUser(userID uint) ([]model.Submission, error) {
	var ss []model.Submission
	err := r.DB.Preload("Test").Where("user_id = ?", userID).
		Order("started_at desc").Find(&ss).Error
	return ss, err
}

// FindOverdue returns in-progress submissions whose deadline
// (started_at + test duration) has passed. Used by the auto-finish sweep.
func (r *SubmissionRepository) FindOverdue(now time.Time) ([]model.Submission, error) {
	var ss []model.Submission
	err := r.DB.Preload("Test").
		Joins("JOIN tests ON tests.id = submissions.test_id").
		Where("submissions.status = ?", model.SubmissionInProgress).
		Where("submissions.started_at < DATE_SUB(?, INTERVAL tests.duration_minutes MINUTE)", now).
		Find(&ss).Error
	return ss, err
}

// UpsertAnswer writes the answer row for (submission, question),
// updating response and correctness in place on re-save.
func (r *SubmissionRepository) UpsertAnswer(a *model.Answer) error {
	var existing model.Answer
	err := r.DB.Where("submission_id = ? AND question_id = ?", a.SubmissionID, a.QuestionID).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(a).Error
	}
	if err != nil {
		return err
	}
	existing.Response = a.Response
	existing.IsCorrect = a.IsCorrect
	return r.DB.Save(&existing).Error
}

func (r *SubmissionRepository) ListAnswers(submissionID string) ([]model.Answer, error) {
	var as []model.Answer
	err := r.DB.Where("submission_id = ?", submissionID).Find(&as).Error
	return as, err
}

func (r *SubmissionRepository) CountCorrect(submissionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Answer{}).
		Where("submission_id = ? AND is_correct = ?", submissionID, true).
		Count(&count).Error
	return count, err
}

// AdminListRow is the flattened shape of the admin results listing.
type AdminListRow struct {
	model.Submission
	UserName       string `gorm:"column:user_name" json:"userName"`
	UserEmail      string `gorm:"column:user_email" json:"userEmail"`
	TestTitle      string `gorm:"column:test_title" json:"testTitle"`
	TotalQuestions int64  `gorm:"column:total_q" json:"totalQuestions"`
}

func (r *SubmissionRepository) ListAll(page, limit int) ([]AdminListRow, int64, error) {
	var rows []AdminListRow
	var total int64

	query := r.DB.Table("submissions").
		Select(`submissions.*, users.full_name AS user_name, users.email AS user_email,
			tests.title AS test_title,
			(SELECT COUNT(*) FROM questions WHERE questions.test_id = tests.id AND questions.deleted_at IS NULL) AS total_q`).
		Joins("JOIN users ON users.id = submissions.user_id").
		Joins("JOIN tests ON tests.id = submissions.test_id").
		Where("submissions.deleted_at IS NULL")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("submissions.started_at desc").
		Offset(offset).Limit(limit).Scan(&rows).Error
	return rows, total, err
}
