package repository

import (
	"github.com/Shibo14/ielts-mock/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) Update(test *model.Test) error {
	return r.DB.Save(test).Error
}

func (r *TestRepository) FindByID(id string) (*model.Test, error) {
	var t model.Test
	err := r.DB.First(&t, "id = ?", id).Error
	return &t, err
}

func (r *TestRepository) FindBySlug(slug string) (*model.Test, error) {
	var t model.Test
	err := r.DB.First(&t, "slug = ?", slug).Error
	return &t, err
}

// List returns all tests ordered the way the dashboard shows them.
func (r *TestRepository) List() ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Order("section asc, title asc").Find(&tests).Error
	return tests, err
}

func (r *TestRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Test{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *TestRepository) CreateQuestions(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Create(&questions).Error
}

func (r *TestRepository) ListQuestions(testID string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("test_id = ?", testID).
		Order("order_index asc, created_at asc").Find(&qs).Error
	return qs, err
}

func (r *TestRepository) FindQuestionByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, "id = ?", id).Error
	return &q, err
}

func (r *TestRepository) CountQuestions(testID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("test_id = ?", testID).Count(&count).Error
	return count, err
}
