package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/metadata"
)

// Asset is one tracked physical item. The category label is denormalized:
// renaming a Category does not touch assets that already carry the old label.
type Asset struct {
	ID              int                `json:"id"`
	Name            string             `json:"name"`
	Owner           string             `json:"owner"`
	Description     string             `json:"description"`
	Category        string             `json:"category"`
	Condition       metadata.Condition `json:"condition"`
	AcquisitionDate time.Time          `json:"acquisitionDate"`
	Images          []string           `json:"images"`
	QRCode          string             `json:"qrCode,omitempty"`
	PublicURL       string             `json:"publicUrl,omitempty"`
	Location        *Location          `json:"location,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// FlatAssetRecord is the scan target for the joined asset select. The location
// columns come from a LEFT JOIN and may all be null; location_id may also be a
// dangling reference to a deleted location, in which case the joined name is
// null and the asset is exposed without a location.
type FlatAssetRecord struct {
	ID              int            `db:"asset_id"`
	Name            string         `db:"name"`
	Owner           string         `db:"owner"`
	Description     string         `db:"description"`
	Category        string         `db:"category"`
	Condition       string         `db:"condition"`
	AcquisitionDate time.Time      `db:"acquisition_date"`
	Images          []byte         `db:"images"`
	QRCode          sql.NullString `db:"qr_code"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	LocationID      sql.NullInt64  `db:"location_id"`
	LocationName    sql.NullString `db:"location_name"`
	LocationDesc    sql.NullString `db:"location_description"`
}

func (fa *FlatAssetRecord) TransformToAsset() (Asset, error) {
	images := []string{}
	if len(fa.Images) > 0 {
		if err := json.Unmarshal(fa.Images, &images); err != nil {
			return Asset{}, fmt.Errorf("failed to unmarshal asset images: %w", err)
		}
	}

	asset := Asset{
		ID:              fa.ID,
		Name:            fa.Name,
		Owner:           fa.Owner,
		Description:     fa.Description,
		Category:        fa.Category,
		Condition:       metadata.Condition(fa.Condition),
		AcquisitionDate: fa.AcquisitionDate,
		Images:          images,
		QRCode:          fa.QRCode.String,
		CreatedAt:       fa.CreatedAt,
		UpdatedAt:       fa.UpdatedAt,
	}

	if fa.LocationID.Valid && fa.LocationName.Valid {
		asset.Location = &Location{
			ID:   int(fa.LocationID.Int64),
			Name: fa.LocationName.String,
		}
		if fa.LocationDesc.Valid {
			asset.Location.Description = &fa.LocationDesc.String
		}
	}

	return asset, nil
}
