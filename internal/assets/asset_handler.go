package assets

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/errors"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/security"
)

type AssetOperations interface {
	List(filter Filter) ([]models.Asset, error)
	Get(id int) (*models.Asset, error)
	Create(req CreateAssetRequest) (*models.Asset, error)
	Update(id int, req UpdateAssetRequest) (*models.Asset, error)
	Delete(id int) error
}

type HistoryReader interface {
	GetAssetHistory(assetID int) ([]models.AssetHistory, error)
}

type CatalogReader interface {
	DistinctCategories() ([]string, error)
	DistinctLocationRefs() ([]int, error)
}

type AssetHandler struct {
	Service AssetOperations
	History HistoryReader
	Catalog CatalogReader
}

func (h *AssetHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/assets", h.ListAssets)
	router.GET("/assets/categories/list", h.GetUsedCategories)
	router.GET("/assets/locations/list", h.GetUsedLocations)
	router.GET("/assets/:id", h.GetAsset)
	router.GET("/assets/:id/history", h.GetAssetHistory)

	protected := router.Group("/assets")
	protected.Use(security.JWTMiddleware(), security.Authorize("admin"))
	protected.POST("", h.CreateAsset)
	protected.PUT("/:id", h.UpdateAsset)
	protected.DELETE("/:id", h.DeleteAsset)
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
	filter, err := FilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assets, err := h.Service.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to list assets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset id"})
		return
	}

	asset, err := h.Service.Get(id)
	if err != nil {
		switch err.(type) {
		case *custom_error.NotFoundError:
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get asset", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) GetAssetHistory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset id"})
		return
	}

	entries, err := h.History.GetAssetHistory(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get asset history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *AssetHandler) GetUsedCategories(c *gin.Context) {
	categories, err := h.Catalog.DistinctCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to list categories", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *AssetHandler) GetUsedLocations(c *gin.Context) {
	locations, err := h.Catalog.DistinctLocationRefs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to list locations", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, locations)
}

// CreateAsset accepts a multipart form: scalar fields plus up to three files
// under the "images" key.
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	req := CreateAssetRequest{
		Name:            c.PostForm("name"),
		Owner:           c.PostForm("owner"),
		Description:     c.PostForm("description"),
		Category:        c.PostForm("category"),
		Condition:       c.PostForm("condition"),
		AcquisitionDate: c.PostForm("acquisitionDate"),
	}

	if location := c.PostForm("location"); location != "" {
		locationID, err := strconv.Atoi(location)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "location must be a numeric location id"})
			return
		}
		req.LocationID = &locationID
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		req.Images = form.File["images"]
	}

	asset, err := h.Service.Create(req)
	if err != nil {
		h.writeMutationError(c, err, "Failed to create asset")
		return
	}

	c.JSON(http.StatusCreated, asset)
}

// UpdateAsset accepts a multipart form where absent scalar fields keep their
// stored value. Image changes arrive as "removedImages" references and
// "newImages" files.
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset id"})
		return
	}

	req := UpdateAssetRequest{
		Name:            formValue(c, "name"),
		Owner:           formValue(c, "owner"),
		Description:     formValue(c, "description"),
		Category:        formValue(c, "category"),
		Condition:       formValue(c, "condition"),
		AcquisitionDate: formValue(c, "acquisitionDate"),
		Notes:           c.PostForm("notes"),
		Location:        c.PostForm("location"),
		RemovedImages:   c.PostFormArray("removedImages"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		req.NewImages = form.File["newImages"]
	}

	asset, err := h.Service.Update(id, req)
	if err != nil {
		h.writeMutationError(c, err, "Failed to update asset")
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset id"})
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.writeMutationError(c, err, "Failed to delete asset")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

func (h *AssetHandler) writeMutationError(c *gin.Context, err error, fallback string) {
	switch err.(type) {
	case *custom_error.ValidationError:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case *custom_error.NotFoundError:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case *custom_error.UniqueViolationError:
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case *custom_error.ForeignKeyViolationError:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}

// formValue maps absent or empty form fields to nil, which the service reads
// as keep-the-stored-value.
func formValue(c *gin.Context, key string) *string {
	if value, ok := c.GetPostForm(key); ok && value != "" {
		return &value
	}
	return nil
}
