package assets

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/doug-martin/goqu/v9"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/imagestore"
	custom_error "github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/errors"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/metadata"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
)

type AssetStore interface {
	Find(filter Filter) ([]models.Asset, error)
	FindByID(id int) (*models.Asset, error)
	Insert(asset models.Asset) (*models.Asset, error)
	Update(id int, record goqu.Record) (*models.Asset, error)
	UpdateQRCode(id int, qrCode string) error
	DeleteWithHistory(id int) error
}

type HistoryStore interface {
	PersistEntry(entry models.AssetHistory) error
}

// AssetService orchestrates asset mutations across the record store, the
// condition history and the image store, in the order that keeps them
// consistent: history before record writes, image files around them.
type AssetService struct {
	assets    AssetStore
	history   HistoryStore
	images    imagestore.Store
	logger    *zap.Logger
	clientURL string
}

func NewAssetService(assets AssetStore, history HistoryStore, images imagestore.Store, logger *zap.Logger, clientURL string) *AssetService {
	return &AssetService{
		assets:    assets,
		history:   history,
		images:    images,
		logger:    logger,
		clientURL: clientURL,
	}
}

func (s *AssetService) List(filter Filter) ([]models.Asset, error) {
	assets, err := s.assets.Find(filter)
	if err != nil {
		return nil, err
	}
	for i := range assets {
		s.decorate(&assets[i])
	}
	return assets, nil
}

func (s *AssetService) Get(id int) (*models.Asset, error) {
	asset, err := s.assets.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.decorate(asset)
	return asset, nil
}

// Create validates the request, stores the uploaded images and inserts the
// record. More than three images is rejected outright. No history entry is
// written: there is no previous condition to record.
func (s *AssetService) Create(req CreateAssetRequest) (*models.Asset, error) {
	asset, err := req.toAsset()
	if err != nil {
		return nil, err
	}

	if len(req.Images) > MaxImagesPerAsset {
		return nil, custom_error.NewValidationError("images", fmt.Sprintf("an asset can hold at most %d images", MaxImagesPerAsset))
	}

	stored := []string{}
	for _, file := range req.Images {
		ref, err := s.images.Save(file)
		if err != nil {
			s.removeImages(stored)
			return nil, err
		}
		stored = append(stored, ref)
	}
	asset.Images = stored

	created, err := s.assets.Insert(asset)
	if err != nil {
		s.removeImages(stored)
		return nil, err
	}

	s.attachQRCode(created)
	s.decorate(created)
	return created, nil
}

// Update applies partial-update semantics. A condition change writes exactly
// one history entry before the record itself is touched, so the trail can
// never lag behind the asset. Image removals and additions are resolved next,
// with surplus uploads past the three-image cap skipped rather than rejected,
// which keeps retried requests idempotent.
func (s *AssetService) Update(id int, req UpdateAssetRequest) (*models.Asset, error) {
	current, err := s.assets.FindByID(id)
	if err != nil {
		return nil, err
	}

	record := goqu.Record{}

	if req.Condition != nil {
		newCondition, err := metadata.NewCondition(*req.Condition)
		if err != nil {
			return nil, custom_error.NewValidationError("condition", err.Error())
		}
		if newCondition != current.Condition {
			notes := req.Notes
			if notes == "" {
				notes = fmt.Sprintf("Kondisi berubah dari %s menjadi %s", current.Condition, newCondition)
			}
			entry := models.AssetHistory{
				AssetID:           current.ID,
				PreviousCondition: current.Condition,
				NewCondition:      newCondition,
				Notes:             notes,
			}
			if err := s.history.PersistEntry(entry); err != nil {
				return nil, err
			}
		}
		record["condition"] = newCondition.String()
	}

	images, err := s.resolveImages(current.Images, req.RemovedImages, req.NewImages)
	if err != nil {
		return nil, err
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal asset images: %w", err)
	}
	record["images"] = imagesJSON

	if req.Name != nil {
		record["name"] = *req.Name
	}
	if req.Owner != nil {
		record["owner"] = *req.Owner
	}
	if req.Description != nil {
		record["description"] = *req.Description
	}
	if req.Category != nil {
		record["category"] = *req.Category
	}
	if req.AcquisitionDate != nil {
		acquisitionDate, err := parseDate(*req.AcquisitionDate)
		if err != nil {
			return nil, custom_error.NewValidationError("acquisitionDate", "must be formatted as YYYY-MM-DD")
		}
		record["acquisition_date"] = acquisitionDate
	}

	// Location is always replaced, never merged: empty clears it.
	if req.Location == "" {
		record["location_id"] = nil
	} else {
		locationID, err := parseLocationRef(req.Location)
		if err != nil {
			return nil, err
		}
		record["location_id"] = locationID
	}

	updated, err := s.assets.Update(id, record)
	if err != nil {
		return nil, err
	}

	s.decorate(updated)
	return updated, nil
}

// Delete removes the stored image files best-effort, then the condition
// history, then the record. A file that refuses to go away is logged and
// skipped; the record mutation still proceeds.
func (s *AssetService) Delete(id int) error {
	current, err := s.assets.FindByID(id)
	if err != nil {
		return err
	}

	s.removeImages(current.Images)

	return s.assets.DeleteWithHistory(id)
}

// resolveImages drops the explicitly removed references (deleting their files
// best-effort), then appends new uploads until the cap is reached. Surplus
// uploads are never written to the image store.
func (s *AssetService) resolveImages(current []string, removed []string, uploads []*multipart.FileHeader) ([]string, error) {
	images := []string{}
	for _, ref := range current {
		if containsRef(removed, ref) {
			if err := s.images.Remove(ref); err != nil {
				s.logger.Warn("unable to remove stored image", zap.String("ref", ref), zap.Error(err))
			}
			continue
		}
		images = append(images, ref)
	}

	for _, file := range uploads {
		if len(images) >= MaxImagesPerAsset {
			break
		}
		ref, err := s.images.Save(file)
		if err != nil {
			return nil, err
		}
		images = append(images, ref)
	}

	return images, nil
}

func (s *AssetService) removeImages(refs []string) {
	for _, ref := range refs {
		if err := s.images.Remove(ref); err != nil {
			s.logger.Warn("unable to remove stored image", zap.String("ref", ref), zap.Error(err))
		}
	}
}

// attachQRCode stores a QR image of the public detail URL on the freshly
// created asset. Failures only cost the QR code, never the asset.
func (s *AssetService) attachQRCode(asset *models.Asset) {
	if s.clientURL == "" {
		return
	}

	png, err := qrcode.Encode(s.publicURL(asset.ID), qrcode.Medium, 256)
	if err != nil {
		s.logger.Warn("unable to generate asset qr code", zap.Int("asset_id", asset.ID), zap.Error(err))
		return
	}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	if err := s.assets.UpdateQRCode(asset.ID, dataURL); err != nil {
		s.logger.Warn("unable to store asset qr code", zap.Int("asset_id", asset.ID), zap.Error(err))
		return
	}
	asset.QRCode = dataURL
}

func (s *AssetService) decorate(asset *models.Asset) {
	if s.clientURL != "" {
		asset.PublicURL = s.publicURL(asset.ID)
	}
}

func (s *AssetService) publicURL(id int) string {
	return fmt.Sprintf("%s/asset/%d", s.clientURL, id)
}

func containsRef(refs []string, ref string) bool {
	for _, candidate := range refs {
		if candidate == ref {
			return true
		}
	}
	return false
}

func parseLocationRef(value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, custom_error.NewValidationError("location", "must be a numeric location id")
	}
	return id, nil
}
