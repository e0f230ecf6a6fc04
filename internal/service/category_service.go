package service

import (
	"database/sql"
	"errors"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/repository"
	"github.com/playfiesta/store_api/internal/utils"
)

// CategoryStore is the category persistence surface. Implemented by
// *repository.CategoryRepository.
type CategoryStore interface {
	ListByDivision(division models.Division) ([]models.Category, error)
	GetByID(id int) (*models.Category, error)
	ExistsSlug(slug string, excludeID int) (bool, error)
	CountProducts(categoryID int) (int, error)
	Create(c *models.Category) error
	Update(c *models.Category) error
	Delete(id int) error
}

// CategoryService handles category CRUD with the in-use delete guard.
type CategoryService struct {
	categories CategoryStore
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// SaveCategoryRequest is the category form input.
type SaveCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug"`
	Division string `json:"division" binding:"required"`
}

// ListCategories returns the categories of a division.
func (s *CategoryService) ListCategories(division models.Division) ([]models.Category, error) {
	return s.categories.ListByDivision(division)
}

// CreateCategory validates and inserts a category.
func (s *CategoryService) CreateCategory(req *SaveCategoryRequest) (*models.Category, error) {
	category, err := s.buildCategory(req, 0)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Create(category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, utils.ErrSlugExists
		}
		return nil, err
	}
	return category, nil
}

// UpdateCategory validates and rewrites a category.
func (s *CategoryService) UpdateCategory(id int, req *SaveCategoryRequest) (*models.Category, error) {
	if _, err := s.categories.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}
	category, err := s.buildCategory(req, id)
	if err != nil {
		return nil, err
	}
	category.ID = id
	if err := s.categories.Update(category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, utils.ErrSlugExists
		}
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category, rejecting the delete while any product
// still references it.
func (s *CategoryService) DeleteCategory(id int) error {
	if _, err := s.categories.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrCategoryNotFound
		}
		return err
	}
	n, err := s.categories.CountProducts(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.ErrCategoryInUse
	}
	if err := s.categories.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *CategoryService) buildCategory(req *SaveCategoryRequest, excludeID int) (*models.Category, error) {
	division := models.Division(req.Division)
	if !division.Valid() {
		return nil, utils.ErrInvalidDivision
	}
	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	taken, err := s.categories.ExistsSlug(slug, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, utils.ErrSlugExists
	}
	return &models.Category{Name: req.Name, Slug: slug, Division: division}, nil
}
