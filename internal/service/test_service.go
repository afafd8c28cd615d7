package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shibo14/ielts-mock/internal/model"
	"github.com/Shibo14/ielts-mock/internal/repository"
	"github.com/Shibo14/ielts-mock/internal/util"
	"github.com/Shibo14/ielts-mock/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const paperCacheTTL = 10 * time.Minute

type TestService struct {
	Repo    *repository.TestRepository
	Redis   *redis.Client
	Storage *StorageService
}

func NewTestService(repo *repository.TestRepository, rdb *redis.Client, storage *StorageService) *TestService {
	return &TestService{Repo: repo, Redis: rdb, Storage: storage}
}

type CreateTestRequest struct {
	Title           string `form:"title" binding:"required"`
	Section         string `form:"section"`
	Level           string `form:"level"`
	DurationMinutes int    `form:"duration"`
	CenterID        uint   `form:"-"`
}

func (s *TestService) CreateTest(req CreateTestRequest) (*model.Test, error) {
	if req.Section == "" {
		req.Section = model.SectionListening
	}
	if req.Level == "" {
		req.Level = "academic"
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 60
	}

	slug := util.Slugify(req.Title)
	if slug == "" {
		slug = fmt.Sprintf("test-%d", time.Now().Unix())
	}
	if exists, err := s.Repo.SlugExists(slug); err != nil {
		return nil, err
	} else if exists {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().Unix())
	}

	test := &model.Test{
		Title:           req.Title,
		Slug:            slug,
		Section:         req.Section,
		Level:           req.Level,
		DurationMinutes: req.DurationMinutes,
		CenterID:        req.CenterID,
	}
	if err := s.Repo.Create(test); err != nil {
		return nil, err
	}
	return test, nil
}

// AttachAudio stores an already-uploaded listening recording on the
// test, keeping the probed duration for the player UI.
func (s *TestService) AttachAudio(test *model.Test, filename string, durationSec float64) error {
	test.AudioFilename = filename
	test.AudioDuration = durationSec
	if err := s.Repo.Update(test); err != nil {
		return err
	}
	s.invalidatePaper(test.Slug)
	return nil
}

// slugOrSkip returns the slug the title would get, or "" when a test
// with that slug already exists. Used by seeding to stay idempotent.
func (s *TestService) slugOrSkip(title string) string {
	slug := util.Slugify(title)
	if slug == "" {
		return ""
	}
	exists, err := s.Repo.SlugExists(slug)
	if err != nil || exists {
		return ""
	}
	return slug
}

func (s *TestService) ListTests() ([]model.Test, error) {
	return s.Repo.List()
}

func (s *TestService) GetBySlug(slug string) (*model.Test, error) {
	test, err := s.Repo.FindBySlug(slug)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrTestNotFound
	}
	return test, err
}

type ImportQuestion struct {
	QType     string          `json:"qtype"`
	Prompt    string          `json:"prompt"`
	Options   json.RawMessage `json:"options"`
	AnswerKey string          `json:"answer_key"`
	Order     int             `json:"order"`
}

// ImportQuestions loads a question bank exported as a JSON array into
// the given test and drops the cached paper.
func (s *TestService) ImportQuestions(testID string, items []ImportQuestion) (int, error) {
	test, err := s.Repo.FindByID(testID)
	if err == gorm.ErrRecordNotFound {
		return 0, util.ErrTestNotFound
	}
	if err != nil {
		return 0, err
	}

	questions := make([]model.Question, 0, len(items))
	for _, item := range items {
		if item.QType == "" {
			item.QType = model.QTypeMCQ
		}
		questions = append(questions, model.Question{
			TestID:     test.ID,
			QType:      item.QType,
			Prompt:     item.Prompt,
			Options:    item.Options,
			AnswerKey:  item.AnswerKey,
			OrderIndex: item.Order,
		})
	}

	if err := s.Repo.CreateQuestions(questions); err != nil {
		return 0, err
	}
	s.invalidatePaper(test.Slug)
	return len(questions), nil
}

// StudentQuestion is a question as the exam page sees it: no answer key.
type StudentQuestion struct {
	ID      string          `json:"id"`
	QType   string          `json:"qtype"`
	Prompt  string          `json:"prompt"`
	Options json.RawMessage `json:"options,omitempty"`
	Order   int             `json:"order"`
}

type Paper struct {
	TestID          string            `json:"testId"`
	Title           string            `json:"title"`
	Section         string            `json:"section"`
	Level           string            `json:"level"`
	DurationMinutes int               `json:"durationMinutes"`
	AudioURL        string            `json:"audioUrl,omitempty"`
	AudioDuration   float64           `json:"audioDurationSec,omitempty"`
	Questions       []StudentQuestion `json:"questions"`
}

// GetPaper assembles the student-facing paper for a test, serving from
// redis when possible.
func (s *TestService) GetPaper(ctx context.Context, slug string) (*Paper, error) {
	cacheKey := "paper:" + slug

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var paper Paper
			if err := json.Unmarshal([]byte(cached), &paper); err == nil {
				return &paper, nil
			}
		}
	}

	test, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	qs, err := s.Repo.ListQuestions(test.ID)
	if err != nil {
		return nil, err
	}

	paper := &Paper{
		TestID:          test.ID,
		Title:           test.Title,
		Section:         test.Section,
		Level:           test.Level,
		DurationMinutes: test.DurationMinutes,
		AudioDuration:   test.AudioDuration,
		Questions:       make([]StudentQuestion, len(qs)),
	}
	if test.AudioFilename != "" && s.Storage != nil {
		paper.AudioURL = s.Storage.GetURL(test.AudioFilename)
	}
	for i, q := range qs {
		paper.Questions[i] = StudentQuestion{
			ID:      q.ID,
			QType:   q.QType,
			Prompt:  q.Prompt,
			Options: q.Options,
			Order:   q.OrderIndex,
		}
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(paper); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, raw, paperCacheTTL).Err(); err != nil {
				logger.Log.Warn("paper cache write failed", zap.String("slug", slug), zap.Error(err))
			}
		}
	}

	return paper, nil
}

func (s *TestService) invalidatePaper(slug string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), "paper:"+slug).Err(); err != nil && err != redis.Nil {
		logger.Log.Warn("paper cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}
