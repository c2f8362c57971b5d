package assets

import (
	"mime/multipart"
	"strings"
	"time"

	custom_error "github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/errors"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/metadata"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
)

// MaxImagesPerAsset caps the stored image references an asset may hold.
const MaxImagesPerAsset = 3

type CreateAssetRequest struct {
	Name            string
	Owner           string
	Description     string
	Category        string
	Condition       string
	AcquisitionDate string
	LocationID      *int
	Images          []*multipart.FileHeader
}

// UpdateAssetRequest carries partial-update semantics: nil string fields keep
// the stored value. Location is the exception and is always replaced, since
// the protocol has no keep-previous sentinel for it: an empty string clears
// the reference.
type UpdateAssetRequest struct {
	Name            *string
	Owner           *string
	Description     *string
	Category        *string
	Condition       *string
	Notes           string
	AcquisitionDate *string
	Location        string
	RemovedImages   []string
	NewImages       []*multipart.FileHeader
}

func (req CreateAssetRequest) toAsset() (models.Asset, error) {
	asset := models.Asset{
		Name:        strings.TrimSpace(req.Name),
		Owner:       strings.TrimSpace(req.Owner),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
	}

	if asset.Name == "" {
		return models.Asset{}, custom_error.NewValidationError("name", "is required")
	}
	if asset.Owner == "" {
		return models.Asset{}, custom_error.NewValidationError("owner", "is required")
	}
	if asset.Description == "" {
		return models.Asset{}, custom_error.NewValidationError("description", "is required")
	}
	if asset.Category == "" {
		return models.Asset{}, custom_error.NewValidationError("category", "is required")
	}

	if req.AcquisitionDate == "" {
		return models.Asset{}, custom_error.NewValidationError("acquisitionDate", "is required")
	}
	acquisitionDate, err := parseDate(req.AcquisitionDate)
	if err != nil {
		return models.Asset{}, custom_error.NewValidationError("acquisitionDate", "must be formatted as YYYY-MM-DD")
	}
	asset.AcquisitionDate = acquisitionDate

	if req.Condition == "" {
		asset.Condition = metadata.ConditionGood
	} else {
		condition, err := metadata.NewCondition(req.Condition)
		if err != nil {
			return models.Asset{}, custom_error.NewValidationError("condition", err.Error())
		}
		asset.Condition = condition
	}

	if req.LocationID != nil {
		asset.Location = &models.Location{ID: *req.LocationID}
	}

	return asset, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateParamLayout, value)
}
