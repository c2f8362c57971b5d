package assets

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	custom_error "github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/errors"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/metadata"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/security"
)

type MockAssetOperations struct {
	mock.Mock
}

func (m *MockAssetOperations) List(filter Filter) ([]models.Asset, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockAssetOperations) Get(id int) (*models.Asset, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetOperations) Create(req CreateAssetRequest) (*models.Asset, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetOperations) Update(id int, req UpdateAssetRequest) (*models.Asset, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetOperations) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockHistoryReader struct {
	mock.Mock
}

func (m *MockHistoryReader) GetAssetHistory(assetID int) ([]models.AssetHistory, error) {
	args := m.Called(assetID)
	return args.Get(0).([]models.AssetHistory), args.Error(1)
}

type MockCatalogReader struct {
	mock.Mock
}

func (m *MockCatalogReader) DistinctCategories() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalogReader) DistinctLocationRefs() ([]int, error) {
	args := m.Called()
	return args.Get(0).([]int), args.Error(1)
}

func newTestRouter(t *testing.T, service *MockAssetOperations, history *MockHistoryReader, catalog *MockCatalogReader) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := &AssetHandler{Service: service, History: history, Catalog: catalog}
	handler.RegisterRoutes(router)

	return router
}

func adminToken(t *testing.T) string {
	t.Helper()

	token, err := security.GenerateJWT("admin")
	assert.NoError(t, err)
	return token
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		assert.NoError(t, writer.WriteField(key, value))
	}
	assert.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func TestListAssets(t *testing.T) {
	service := new(MockAssetOperations)
	router := newTestRouter(t, service, new(MockHistoryReader), new(MockCatalogReader))

	service.On("List", mock.Anything).Return([]models.Asset{{ID: 1, Name: "Laptop A"}}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assets?condition=good", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Laptop A")
}

func TestListAssetsInvalidFilter(t *testing.T) {
	service := new(MockAssetOperations)
	router := newTestRouter(t, service, new(MockHistoryReader), new(MockCatalogReader))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assets?condition=broken", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "List", mock.Anything)
}

func TestGetAssetNotFound(t *testing.T) {
	service := new(MockAssetOperations)
	router := newTestRouter(t, service, new(MockHistoryReader), new(MockCatalogReader))

	service.On("Get", 99).Return(nil, custom_error.NewNotFoundError("asset", 99)).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assets/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAssetHistoryHandler(t *testing.T) {
	history := new(MockHistoryReader)
	router := newTestRouter(t, new(MockAssetOperations), history, new(MockCatalogReader))

	history.On("GetAssetHistory", 5).Return([]models.AssetHistory{
		{ID: 1, AssetID: 5, PreviousCondition: metadata.ConditionGood, NewCondition: metadata.ConditionMinorDamage},
	}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assets/5/history", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "minor-damage")
}

func TestGetUsedCategories(t *testing.T) {
	catalog := new(MockCatalogReader)
	router := newTestRouter(t, new(MockAssetOperations), new(MockHistoryReader), catalog)

	catalog.On("DistinctCategories").Return([]string{"Elektronik", "Furnitur"}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assets/categories/list", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var categories []string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Equal(t, []string{"Elektronik", "Furnitur"}, categories)
}

func TestCreateAssetRequiresToken(t *testing.T) {
	service := new(MockAssetOperations)
	router := newTestRouter(t, service, new(MockHistoryReader), new(MockCatalogReader))

	body, contentType := multipartBody(t, map[string]string{"name": "Laptop A"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assets", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	service.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateAssetHandler(t *testing.T) {
	service := new(MockAssetOperations)
	router := newTestRouter(t, service, new(MockHistoryReader), new(MockCatalogReader))

	service.On("Create", mock.MatchedBy(func(req CreateAssetRequest) bool {
		return req.Name == "Laptop A" &&
			req.Owner == "Budi" &&
			req.LocationID != nil && *req.LocationID == 3
	})).Return(&models.Asset{ID: 1, Name: "Laptop A"}, nil).Once()

	body, contentType := multipartBody(t, map[string]string{
		"name":            "Laptop A",
		"owner":           "Budi",
		"description":     "Laptop kerja",
		"category":        "Elektronik",
		"acquisitionDate": "2024-03-10",
		"location":        "3",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assets", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	service.AssertExpectations(t)
}

func TestCreateAssetValidationError(t *testing.T) {
	service := new(MockAssetOperations)
	router := newTestRouter(t, service, new(MockHistoryReader), new(MockCatalogReader))

	service.On("Create", mock.Anything).
		Return(nil, custom_error.NewValidationError("name", "is required")).Once()

	body, contentType := multipartBody(t, map[string]string{"owner": "Budi"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assets", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAssetPartialFields(t *testing.T) {
	service := new(MockAssetOperations)
	router := newTestRouter(t, service, new(MockHistoryReader), new(MockCatalogReader))

	service.On("Update", 7, mock.MatchedBy(func(req UpdateAssetRequest) bool {
		return req.Name == nil &&
			req.Condition != nil && *req.Condition == "retired" &&
			req.Notes == "Sudah tidak dipakai" &&
			len(req.RemovedImages) == 1 && req.RemovedImages[0] == "/uploads/a.jpg"
	})).Return(&models.Asset{ID: 7, Condition: metadata.ConditionRetired}, nil).Once()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	assert.NoError(t, writer.WriteField("condition", "retired"))
	assert.NoError(t, writer.WriteField("notes", "Sudah tidak dipakai"))
	assert.NoError(t, writer.WriteField("removedImages", "/uploads/a.jpg"))
	assert.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/assets/7", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestDeleteAssetHandler(t *testing.T) {
	service := new(MockAssetOperations)
	router := newTestRouter(t, service, new(MockHistoryReader), new(MockCatalogReader))

	service.On("Delete", 7).Return(nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/assets/7", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Asset deleted successfully")
}

func TestDeleteAssetFailure(t *testing.T) {
	service := new(MockAssetOperations)
	router := newTestRouter(t, service, new(MockHistoryReader), new(MockCatalogReader))

	service.On("Delete", 7).Return(errors.New("db down")).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/assets/7", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
