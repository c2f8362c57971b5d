package settings

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/repository"
	custom_error "github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/errors"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
)

type CategoryRepository struct {
	repository *repository.Repository
}

func NewCategoryRepository(r *repository.Repository) *CategoryRepository {
	return &CategoryRepository{repository: r}
}

func (r *CategoryRepository) GetCategories() ([]models.Category, error) {
	categories := []models.Category{}
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "description").
		From("categories").
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructs(&categories); err != nil {
		return nil, fmt.Errorf("unable to select categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) PersistCategory(category *models.Category) error {
	query := r.repository.GoquDBWrapper.Insert("categories").
		Rows(goqu.Record{
			"name":        category.Name,
			"description": category.Description,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&category.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("unable to insert category", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

func (r *CategoryRepository) UpdateCategory(id int, req UpdateRequest) (*models.Category, error) {
	record := goqu.Record{}
	if req.Name != nil {
		record["name"] = *req.Name
	}
	if req.Description != nil {
		record["description"] = *req.Description
	}
	if len(record) == 0 {
		return r.findCategory(id)
	}

	var category models.Category
	found, err := r.repository.GoquDBWrapper.
		Update("categories").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Returning("id", "name", "description").
		Executor().
		ScanStruct(&category)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("unable to update category", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("category", id)
	}

	return &category, nil
}

func (r *CategoryRepository) findCategory(id int) (*models.Category, error) {
	var category models.Category
	found, err := r.repository.GoquDBWrapper.
		Select("id", "name", "description").
		From("categories").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanStruct(&category)
	if err != nil {
		return nil, fmt.Errorf("unable to select category: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("category", id)
	}

	return &category, nil
}

func (r *CategoryRepository) RemoveCategory(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("categories").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("category", id)
	}

	return nil
}
