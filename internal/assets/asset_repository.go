package assets

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/repository"
	custom_error "github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/errors"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
)

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{
		repository: r,
	}
}

// Find returns matching assets for the listing, newest first.
func (r *AssetsRepository) Find(filter Filter) ([]models.Asset, error) {
	return r.findOrdered(filter, goqu.I("a.created_at").Desc())
}

// FindForReport returns matching assets sorted by name ascending, the order
// the report generators emit rows in.
func (r *AssetsRepository) FindForReport(filter Filter) ([]models.Asset, error) {
	return r.findOrdered(filter, goqu.I("a.name").Asc())
}

func (r *AssetsRepository) findOrdered(filter Filter, order exp.OrderedExpression) ([]models.Asset, error) {
	query := r.getAssetQuery()
	for _, condition := range filter.BuildConditions() {
		query = query.Where(condition)
	}
	query = query.Order(order)

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %w", err)
	}

	assets := make([]models.Asset, 0, len(flatAssets))
	for _, flatAsset := range flatAssets {
		asset, err := flatAsset.TransformToAsset()
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

func (r *AssetsRepository) FindByID(id int) (*models.Asset, error) {
	query := r.getAssetQuery().Where(goqu.Ex{"a.id": id})

	var flatAsset models.FlatAssetRecord
	found, err := query.Executor().ScanStruct(&flatAsset)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset from database: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("asset", id)
	}

	asset, err := flatAsset.TransformToAsset()
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

func (r *AssetsRepository) Insert(asset models.Asset) (*models.Asset, error) {
	imagesJSON, err := json.Marshal(asset.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal asset images: %w", err)
	}

	record := goqu.Record{
		"name":             asset.Name,
		"owner":            asset.Owner,
		"description":      asset.Description,
		"category":         asset.Category,
		"condition":        asset.Condition.String(),
		"acquisition_date": asset.AcquisitionDate,
		"images":           imagesJSON,
	}
	if asset.Location != nil {
		record["location_id"] = asset.Location.ID
	}

	query := r.repository.GoquDBWrapper.Insert("assets").
		Rows(record).
		Returning("id")

	var assetID int
	if _, err := query.Executor().ScanVal(&assetID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("unable to insert asset", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert asset record: %w", err)
	}

	return r.FindByID(assetID)
}

// Update overwrites only the supplied columns and returns the fresh record.
func (r *AssetsRepository) Update(id int, record goqu.Record) (*models.Asset, error) {
	if len(record) == 0 {
		return r.FindByID(id)
	}
	record["updated_at"] = time.Now()

	result, err := r.repository.GoquDBWrapper.
		Update("assets").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, custom_error.NewNotFoundError("asset", id)
	}

	return r.FindByID(id)
}

func (r *AssetsRepository) UpdateQRCode(id int, qrCode string) error {
	_, err := r.repository.GoquDBWrapper.
		Update("assets").
		Set(goqu.Record{"qr_code": qrCode}).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update asset qr code: %w", err)
	}

	return nil
}

// DeleteWithHistory removes the asset's condition history and then the asset
// record itself, in that order, so a dangling history can never outlive its
// parent. Both deletes run in one transaction.
func (r *AssetsRepository) DeleteWithHistory(id int) error {
	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if _, err := tx.Delete("asset_history").
			Where(goqu.Ex{"asset_id": id}).
			Executor().
			Exec(); err != nil {
			return fmt.Errorf("failed to delete asset history: %w", err)
		}

		result, err := tx.Delete("assets").
			Where(goqu.Ex{"id": id}).
			Executor().
			Exec()
		if err != nil {
			return fmt.Errorf("failed to delete asset: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return custom_error.NewNotFoundError("asset", id)
		}

		return nil
	})
}

// DistinctCategories lists category labels currently used by at least one
// asset, which may differ from the administered Category reference list.
func (r *AssetsRepository) DistinctCategories() ([]string, error) {
	query := r.repository.GoquDBWrapper.
		From("assets").
		SelectDistinct("category").
		Order(goqu.I("category").Asc())

	var categories []string
	if err := query.Executor().ScanVals(&categories); err != nil {
		return nil, fmt.Errorf("unable to select distinct categories: %w", err)
	}

	return categories, nil
}

// DistinctLocationRefs lists non-empty location references currently in use.
func (r *AssetsRepository) DistinctLocationRefs() ([]int, error) {
	query := r.repository.GoquDBWrapper.
		From("assets").
		SelectDistinct("location_id").
		Where(goqu.I("location_id").IsNotNull()).
		Order(goqu.I("location_id").Asc())

	var locationIDs []int
	if err := query.Executor().ScanVals(&locationIDs); err != nil {
		return nil, fmt.Errorf("unable to select distinct locations: %w", err)
	}

	return locationIDs, nil
}

func (r *AssetsRepository) getAssetQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		goqu.I("a.id").As("asset_id"),
		goqu.I("a.name").As("name"),
		goqu.I("a.owner").As("owner"),
		goqu.I("a.description").As("description"),
		goqu.I("a.category").As("category"),
		goqu.I("a.condition").As("condition"),
		goqu.I("a.acquisition_date").As("acquisition_date"),
		goqu.I("a.images").As("images"),
		goqu.I("a.qr_code").As("qr_code"),
		goqu.I("a.created_at").As("created_at"),
		goqu.I("a.updated_at").As("updated_at"),
		goqu.I("a.location_id").As("location_id"),
		goqu.I("l.name").As("location_name"),
		goqu.I("l.description").As("location_description"),
	).
		From(goqu.T("assets").As("a")).
		LeftJoin(
			goqu.T("locations").As("l"),
			goqu.On(goqu.Ex{"a.location_id": goqu.I("l.id")}),
		)
}
