package model

import "time"

const (
	SubmissionInProgress = "in_progress"
	SubmissionFinished   = "finished"
)

type Submission struct {
	UUIDBase
	UserID     uint       `gorm:"index;type:bigint unsigned" json:"userId"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TestID     string     `gorm:"index;type:varchar(36)" json:"testId"`
	Test       *Test      `gorm:"foreignKey:TestID" json:"test,omitempty"`
	Status     string     `gorm:"size:20;default:'in_progress'" json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	RawScore   int        `gorm:"default:0" json:"rawScore"`
	BandScore  float64    `gorm:"default:0" json:"bandScore"`
}

func (Submission) TableName() string {
	return "submissions"
}

// TestSlug reports the slug of the attempt's test. ok is false when the
// test row is gone, e.g. soft-deleted after the attempt started.
func (s *Submission) TestSlug() (slug string, ok bool) {
	if s.Test == nil {
		return "", false
	}
	return s.Test.Slug, true
}

// Answer is the per-question response row written by the autosave
// endpoint. One row per (submission, question); re-saves update in place.
type Answer struct {
	UUIDBase
	SubmissionID string `gorm:"uniqueIndex:idx_submission_question;type:varchar(36)" json:"submissionId"`
	QuestionID   string `gorm:"uniqueIndex:idx_submission_question;type:varchar(36)" json:"questionId"`
	Response     string `gorm:"type:text" json:"response"`
	IsCorrect    bool   `gorm:"default:false" json:"isCorrect"`
}

func (Answer) TableName() string {
	return "answers"
}
