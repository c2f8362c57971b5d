package settings

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	custom_error "github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/errors"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/security"
)

type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) GetCategories() ([]models.Category, error) {
	args := m.Called()
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryStore) PersistCategory(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryStore) UpdateCategory(id int, req UpdateRequest) (*models.Category, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryStore) RemoveCategory(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockLocationStore struct {
	mock.Mock
}

func (m *MockLocationStore) GetLocations() ([]models.Location, error) {
	args := m.Called()
	return args.Get(0).([]models.Location), args.Error(1)
}

func (m *MockLocationStore) PersistLocation(location *models.Location) error {
	args := m.Called(location)
	return args.Error(0)
}

func (m *MockLocationStore) UpdateLocation(id int, req UpdateRequest) (*models.Location, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationStore) RemoveLocation(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func newSettingsRouter(t *testing.T, categories *MockCategoryStore, locations *MockLocationStore) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := &SettingsHandler{Categories: categories, Locations: locations}
	handler.RegisterRoutes(router)

	return router
}

func authorizedRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()

	token, err := security.GenerateJWT("admin")
	assert.NoError(t, err)

	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestGetCategoriesIsPublic(t *testing.T) {
	categories := new(MockCategoryStore)
	router := newSettingsRouter(t, categories, new(MockLocationStore))

	categories.On("GetCategories").Return([]models.Category{{ID: 1, Name: "Elektronik"}}, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/settings/categories", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Elektronik")
}

func TestCreateCategory(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		categories := new(MockCategoryStore)
		router := newSettingsRouter(t, categories, new(MockLocationStore))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/settings/categories", bytes.NewReader([]byte(`{"name":"Elektronik"}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		categories.AssertNotCalled(t, "PersistCategory", mock.Anything)
	})

	t.Run("requires a name", func(t *testing.T) {
		categories := new(MockCategoryStore)
		router := newSettingsRouter(t, categories, new(MockLocationStore))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authorizedRequest(t, "POST", "/settings/categories", []byte(`{"name":"  "}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate names conflict", func(t *testing.T) {
		categories := new(MockCategoryStore)
		router := newSettingsRouter(t, categories, new(MockLocationStore))

		categories.On("PersistCategory", mock.Anything).
			Return(custom_error.WrapDBError("unable to insert category", "23505")).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authorizedRequest(t, "POST", "/settings/categories", []byte(`{"name":"Elektronik"}`)))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("created category is echoed with its id", func(t *testing.T) {
		categories := new(MockCategoryStore)
		router := newSettingsRouter(t, categories, new(MockLocationStore))

		categories.On("PersistCategory", mock.MatchedBy(func(category *models.Category) bool {
			return category.Name == "Elektronik"
		})).Run(func(args mock.Arguments) {
			args.Get(0).(*models.Category).ID = 12
		}).Return(nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authorizedRequest(t, "POST", "/settings/categories", []byte(`{"name":"Elektronik"}`)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":12`)
	})
}

func TestUpdateLocation(t *testing.T) {
	locations := new(MockLocationStore)
	router := newSettingsRouter(t, new(MockCategoryStore), locations)

	locations.On("UpdateLocation", 3, mock.MatchedBy(func(req UpdateRequest) bool {
		return req.Name != nil && *req.Name == "Gudang Baru" && req.Description == nil
	})).Return(&models.Location{ID: 3, Name: "Gudang Baru"}, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authorizedRequest(t, "PUT", "/settings/locations/3", []byte(`{"name":"Gudang Baru"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	locations.AssertExpectations(t)
}

func TestRemoveLocation(t *testing.T) {
	t.Run("missing location yields 404", func(t *testing.T) {
		locations := new(MockLocationStore)
		router := newSettingsRouter(t, new(MockCategoryStore), locations)

		locations.On("RemoveLocation", 99).Return(custom_error.NewNotFoundError("location", 99)).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authorizedRequest(t, "DELETE", "/settings/locations/99", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("deleting a referenced location still succeeds", func(t *testing.T) {
		locations := new(MockLocationStore)
		router := newSettingsRouter(t, new(MockCategoryStore), locations)

		locations.On("RemoveLocation", 3).Return(nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authorizedRequest(t, "DELETE", "/settings/locations/3", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Location deleted successfully")
	})
}
