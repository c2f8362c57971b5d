package models

import (
	"time"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/metadata"
)

// AssetHistory is one immutable condition transition. Entries are only written
// when the condition actually changes and are destroyed with their asset.
type AssetHistory struct {
	ID                int                `json:"id" db:"id"`
	AssetID           int                `json:"assetId" db:"asset_id"`
	PreviousCondition metadata.Condition `json:"previousCondition" db:"previous_condition"`
	NewCondition      metadata.Condition `json:"newCondition" db:"new_condition"`
	Notes             string             `json:"notes" db:"notes"`
	ChangedAt         time.Time          `json:"changedAt" db:"changed_at"`
}
