package settings

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/repository"
	custom_error "github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/errors"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
)

// LocationRepository manages the administered location reference list. Assets
// point at locations by id without a foreign key, so removing a location
// leaves referencing assets in place with a dangling id that the asset query
// resolves to no location.
type LocationRepository struct {
	repository *repository.Repository
}

func NewLocationRepository(r *repository.Repository) *LocationRepository {
	return &LocationRepository{repository: r}
}

func (r *LocationRepository) GetLocations() ([]models.Location, error) {
	locations := []models.Location{}
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "description").
		From("locations").
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructs(&locations); err != nil {
		return nil, fmt.Errorf("unable to select locations: %w", err)
	}

	return locations, nil
}

func (r *LocationRepository) PersistLocation(location *models.Location) error {
	query := r.repository.GoquDBWrapper.Insert("locations").
		Rows(goqu.Record{
			"name":        location.Name,
			"description": location.Description,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&location.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("unable to insert location", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert location: %w", err)
	}

	return nil
}

func (r *LocationRepository) UpdateLocation(id int, req UpdateRequest) (*models.Location, error) {
	record := goqu.Record{}
	if req.Name != nil {
		record["name"] = *req.Name
	}
	if req.Description != nil {
		record["description"] = *req.Description
	}
	if len(record) == 0 {
		return r.findLocation(id)
	}

	var location models.Location
	found, err := r.repository.GoquDBWrapper.
		Update("locations").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Returning("id", "name", "description").
		Executor().
		ScanStruct(&location)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("unable to update location", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("location", id)
	}

	return &location, nil
}

func (r *LocationRepository) findLocation(id int) (*models.Location, error) {
	var location models.Location
	found, err := r.repository.GoquDBWrapper.
		Select("id", "name", "description").
		From("locations").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanStruct(&location)
	if err != nil {
		return nil, fmt.Errorf("unable to select location: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("location", id)
	}

	return &location, nil
}

func (r *LocationRepository) RemoveLocation(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("locations").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("location", id)
	}

	return nil
}
