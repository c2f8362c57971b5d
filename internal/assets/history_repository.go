package assets

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/repository"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
)

// HistoryRepository persists condition transitions. The table is append-only:
// entries are never updated, only written and cascade-deleted with the asset.
type HistoryRepository struct {
	repository *repository.Repository
}

func NewHistoryRepository(r *repository.Repository) *HistoryRepository {
	return &HistoryRepository{repository: r}
}

func (r *HistoryRepository) PersistEntry(entry models.AssetHistory) error {
	query := r.repository.GoquDBWrapper.Insert("asset_history").
		Rows(goqu.Record{
			"asset_id":           entry.AssetID,
			"previous_condition": entry.PreviousCondition.String(),
			"new_condition":      entry.NewCondition.String(),
			"notes":              entry.Notes,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// GetAssetHistory returns the asset's condition transitions newest first.
// Unknown asset ids yield an empty list, which also covers orphaned entries
// left behind by a crash between a history delete and an asset delete.
func (r *HistoryRepository) GetAssetHistory(assetID int) ([]models.AssetHistory, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("asset_history").As("h")).
		Select(
			goqu.I("h.id").As("id"),
			goqu.I("h.asset_id").As("asset_id"),
			goqu.I("h.previous_condition").As("previous_condition"),
			goqu.I("h.new_condition").As("new_condition"),
			goqu.I("h.notes").As("notes"),
			goqu.I("h.changed_at").As("changed_at"),
		).
		Where(goqu.Ex{"h.asset_id": assetID}).
		Order(goqu.I("h.changed_at").Desc())

	entries := []models.AssetHistory{}
	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("unable to select asset history: %w", err)
	}

	return entries, nil
}
