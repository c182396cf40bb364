package service

import (
	"errors"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNameTaken = errors.New("category name must be unique")
	ErrCategoryMissing   = errors.New("category not found")
)

type CategoryService interface {
	CreateCategory(name, description string) (*model.Category, error)
	GetCategories() ([]model.Category, error)
	GetCategory(id uuid.UUID) (*model.Category, error)
	UpdateCategory(id uuid.UUID, name, description string) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(cRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: cRepo}
}

func (s *categoryService) CreateCategory(name, description string) (*model.Category, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	category := &model.Category{Name: name, Description: description}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) GetCategory(id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, ErrCategoryMissing
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(id uuid.UUID, name, description string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, ErrCategoryMissing
	}
	if name != "" {
		category.Name = name
	}
	if description != "" {
		category.Description = description
	}
	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return ErrCategoryMissing
	}
	return s.categoryRepo.Delete(id)
}
