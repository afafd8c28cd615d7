package service

import (
	"strings"
	"time"

	"github.com/Shibo14/ielts-mock/internal/model"
	"github.com/Shibo14/ielts-mock/internal/repository"
	"github.com/Shibo14/ielts-mock/internal/util"
	"github.com/Shibo14/ielts-mock/pkg/logger"
	"github.com/Shibo14/ielts-mock/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmissionService struct {
	Repo     *repository.SubmissionRepository
	TestRepo *repository.TestRepository
}

func NewSubmissionService(repo *repository.SubmissionRepository, testRepo *repository.TestRepository) *SubmissionService {
	return &SubmissionService{Repo: repo, TestRepo: testRepo}
}

// Start opens a new timed attempt at the given test.
func (s *SubmissionService) Start(userID uint, slug string) (*model.Submission, error) {
	test, err := s.TestRepo.FindBySlug(slug)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}

	submission := &model.Submission{
		UserID:    userID,
		TestID:    test.ID,
		Status:    model.SubmissionInProgress,
		StartedAt: time.Now(),
	}
	if err := s.Repo.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

type SaveAnswerRequest struct {
	SubmissionID string `json:"submission_id" binding:"required"`
	QuestionID   string `json:"question_id" binding:"required"`
	Response     string `json:"response"`
}

type SaveAnswerResult struct {
	OK        bool `json:"ok"`
	IsCorrect bool `json:"is_correct"`
}

// SaveAnswer grades and upserts a single response. This backs the
// autosave endpoint, so a question can be re-answered any number of
// times while the attempt is open.
func (s *SubmissionService) SaveAnswer(userID uint, req SaveAnswerRequest) (*SaveAnswerResult, error) {
	submission, err := s.Repo.FindByID(req.SubmissionID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	if submission.UserID != userID {
		return nil, util.ErrSubmissionNotYours
	}
	if submission.Status == model.SubmissionFinished {
		return nil, util.ErrAlreadyFinished
	}

	question, err := s.TestRepo.FindQuestionByID(req.QuestionID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	response := strings.TrimSpace(req.Response)
	correct := GradeAnswer(question.QType, response, question.AnswerKey)

	answer := &model.Answer{
		SubmissionID: submission.ID,
		QuestionID:   question.ID,
		Response:     response,
		IsCorrect:    correct,
	}
	if err := s.Repo.UpsertAnswer(answer); err != nil {
		return nil, err
	}

	monitoring.AnswersSaved.Inc()
	return &SaveAnswerResult{OK: true, IsCorrect: correct}, nil
}

// Finish closes the attempt and computes its raw and band scores.
func (s *SubmissionService) Finish(userID uint, submissionID string) (*model.Submission, error) {
	submission, err := s.Repo.FindByID(submissionID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	if submission.UserID != userID {
		return nil, util.ErrSubmissionNotYours
	}
	if submission.Status == model.SubmissionFinished {
		return nil, util.ErrAlreadyFinished
	}

	return s.finish(submission)
}

func (s *SubmissionService) finish(submission *model.Submission) (*model.Submission, error) {
	total, err := s.TestRepo.CountQuestions(submission.TestID)
	if err != nil {
		return nil, err
	}
	correct, err := s.Repo.CountCorrect(submission.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission.RawScore = int(correct)
	submission.BandScore = BandFromRaw(int(correct), int(total))
	submission.Status = model.SubmissionFinished
	submission.FinishedAt = &now

	if err := s.Repo.Update(submission); err != nil {
		return nil, err
	}

	monitoring.SubmissionsFinished.Inc()
	return submission, nil
}

type ResultView struct {
	Submission     *model.Submission `json:"submission"`
	TotalQuestions int64             `json:"totalQuestions"`
	Answers        []model.Answer    `json:"answers"`
}

// Result returns a finished (or running) attempt with its question
// total. Admins may read any attempt, students only their own.
func (s *SubmissionService) Result(claims *util.Claims, submissionID string) (*ResultView, error) {
	submission, err := s.Repo.FindByIDWithTest(submissionID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	if submission.UserID != claims.UserID && claims.Role != model.Admin {
		return nil, util.ErrSubmissionNotYours
	}

	total, err := s.TestRepo.CountQuestions(submission.TestID)
	if err != nil {
		return nil, err
	}

	answers, err := s.Repo.ListAnswers(submission.ID)
	if err != nil {
		return nil, err
	}

	return &ResultView{Submission: submission, TotalQuestions: total, Answers: answers}, nil
}

// RemainingSeconds reports how much exam time an open attempt has left.
func RemainingSeconds(submission *model.Submission, now time.Time) int {
	if submission.Test == nil || submission.Status != model.SubmissionInProgress {
		return 0
	}
	deadline := submission.StartedAt.Add(time.Duration(submission.Test.DurationMinutes) * time.Minute)
	remaining := int(deadline.Sub(now).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *SubmissionService) ListByUser(userID uint) ([]model.Submission, error) {
	return s.Repo.ListByUser(userID)
}

func (s *SubmissionService) AdminList(page, limit int) ([]repository.AdminListRow, int64, error) {
	return s.Repo.ListAll(page, limit)
}

// FinishOverdue closes every in-progress attempt whose time limit has
// elapsed, scoring whatever answers were autosaved. The server-side
// counterpart of the page countdown's auto-submit.
func (s *SubmissionService) FinishOverdue() error {
	overdue, err := s.Repo.FindOverdue(time.Now())
	if err != nil {
		return err
	}
	for i := range overdue {
		submission := &overdue[i]
		if _, err := s.finish(submission); err != nil {
			logger.Log.Error("auto-finish failed",
				zap.String("submission", submission.ID), zap.Error(err))
			continue
		}
		logger.Log.Info("auto-finished overdue submission",
			zap.String("submission", submission.ID),
			zap.Uint("user", submission.UserID))
	}
	return nil
}
