package service

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Shibo14/ielts-mock/internal/model"
	"github.com/Shibo14/ielts-mock/internal/repository"
	"github.com/Shibo14/ielts-mock/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SeedService struct {
	UserRepo *repository.UserRepository
	TestSvc  *TestService
	SeedDir  string
}

func NewSeedService(userRepo *repository.UserRepository, testSvc *TestService, seedDir string) *SeedService {
	return &SeedService{UserRepo: userRepo, TestSvc: testSvc, SeedDir: seedDir}
}

// Run creates the default center, the demo accounts and the sample
// papers. Safe to run repeatedly: existing rows are left alone.
func (s *SeedService) Run() error {
	center, err := s.UserRepo.FindOrCreateCenter("Default Center")
	if err != nil {
		return err
	}

	if err := s.seedUser("Admin", "admin@example.com", "admin123", model.Admin, center.ID); err != nil {
		return err
	}
	if err := s.seedUser("Student", "student@example.com", "student123", model.Student, center.ID); err != nil {
		return err
	}

	if err := s.seedTest("Listening Sample 1", model.SectionListening, 30, center.ID, "sample_listening.json"); err != nil {
		return err
	}
	if err := s.seedTest("Reading Sample 1", model.SectionReading, 60, center.ID, "sample_reading.json"); err != nil {
		return err
	}

	logger.Log.Info("seed completed",
		zap.String("admin", "admin@example.com"),
		zap.String("student", "student@example.com"))
	return nil
}

func (s *SeedService) seedUser(name, email, password string, role model.UserRole, centerID uint) error {
	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.UserRepo.Create(&model.User{
		FullName: name,
		Email:    email,
		Password: hashed,
		Role:     role,
		CenterID: centerID,
	})
}

func (s *SeedService) seedTest(title, section string, duration int, centerID uint, seedFile string) error {
	slug := s.TestSvc.slugOrSkip(title)
	if slug == "" {
		return nil
	}

	test, err := s.TestSvc.CreateTest(CreateTestRequest{
		Title:           title,
		Section:         section,
		DurationMinutes: duration,
		CenterID:        centerID,
	})
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(filepath.Join(s.SeedDir, seedFile))
	if err != nil {
		logger.Log.Warn("seed file missing, test created without questions",
			zap.String("file", seedFile), zap.Error(err))
		return nil
	}

	var items []ImportQuestion
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}

	_, err = s.TestSvc.ImportQuestions(test.ID, items)
	return err
}
