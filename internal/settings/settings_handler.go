package settings

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	custom_error "github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/errors"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/security"
)

type CategoryStore interface {
	GetCategories() ([]models.Category, error)
	PersistCategory(category *models.Category) error
	UpdateCategory(id int, req UpdateRequest) (*models.Category, error)
	RemoveCategory(id int) error
}

type LocationStore interface {
	GetLocations() ([]models.Location, error)
	PersistLocation(location *models.Location) error
	UpdateLocation(id int, req UpdateRequest) (*models.Location, error)
	RemoveLocation(id int) error
}

// UpdateRequest is shared by category and location updates. Nil fields keep
// the stored value.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type createRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type SettingsHandler struct {
	Categories CategoryStore
	Locations  LocationStore
}

func (h *SettingsHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/settings/categories", h.GetCategories)
	router.GET("/settings/locations", h.GetLocations)

	protected := router.Group("/settings")
	protected.Use(security.JWTMiddleware(), security.Authorize("admin"))
	protected.POST("/categories", h.CreateCategory)
	protected.PUT("/categories/:id", h.UpdateCategory)
	protected.DELETE("/categories/:id", h.RemoveCategory)
	protected.POST("/locations", h.CreateLocation)
	protected.PUT("/locations/:id", h.UpdateLocation)
	protected.DELETE("/locations/:id", h.RemoveLocation)
}

func (h *SettingsHandler) GetCategories(c *gin.Context) {
	categories, err := h.Categories.GetCategories()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list categories", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *SettingsHandler) CreateCategory(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	if err := h.Categories.PersistCategory(&category); err != nil {
		if _, ok := err.(*custom_error.UniqueViolationError); ok {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not insert category", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *SettingsHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	category, err := h.Categories.UpdateCategory(id, req)
	if err != nil {
		h.writeMutationError(c, err, "Could not update category")
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *SettingsHandler) RemoveCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	if err := h.Categories.RemoveCategory(id); err != nil {
		h.writeMutationError(c, err, "Could not delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func (h *SettingsHandler) GetLocations(c *gin.Context) {
	locations, err := h.Locations.GetLocations()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list locations", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (h *SettingsHandler) CreateLocation(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Location name is required"})
		return
	}

	location := models.Location{Name: req.Name, Description: req.Description}
	if err := h.Locations.PersistLocation(&location); err != nil {
		if _, ok := err.(*custom_error.UniqueViolationError); ok {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Location name already exists"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not insert location", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, location)
}

func (h *SettingsHandler) UpdateLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	location, err := h.Locations.UpdateLocation(id, req)
	if err != nil {
		h.writeMutationError(c, err, "Could not update location")
		return
	}

	c.JSON(http.StatusOK, location)
}

func (h *SettingsHandler) RemoveLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return
	}

	if err := h.Locations.RemoveLocation(id); err != nil {
		h.writeMutationError(c, err, "Could not delete location")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}

func (h *SettingsHandler) writeMutationError(c *gin.Context, err error, fallback string) {
	switch err.(type) {
	case *custom_error.NotFoundError:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case *custom_error.UniqueViolationError:
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
