package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"example.com/acgl/services/inventory/api/routes"
	"example.com/acgl/services/inventory/config"
	"example.com/acgl/services/inventory/internal/auth"
	"example.com/acgl/services/inventory/internal/database"
	"example.com/acgl/services/inventory/internal/models"
	"example.com/acgl/services/inventory/internal/repository"
	"example.com/acgl/services/inventory/internal/service"
	"example.com/acgl/services/inventory/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiTest struct {
	router *gin.Engine
	db     *gorm.DB
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "inventory.db") +
		"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)"

	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := database.FromGorm(gormDB)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := repository.NewRepository(db)
	sessions := session.NewMemoryStore(time.Hour)
	svc := service.NewService(repo, sessions, log)

	sessionCfg := config.SessionConfig{
		TTL:        time.Hour,
		CookieName: "inventory_session",
	}

	router := gin.New()
	routes.SetupRoutes(router, svc, sessions, sessionCfg, log)

	// Seed the account the tests sign in with
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	require.NoError(t, repo.SaveUser(context.Background(), &models.User{
		Username:     "admin",
		PasswordHash: hash,
		UserType:     "admin",
		FullName:     "Administrator",
		IsActive:     true,
	}))

	return &apiTest{router: router, db: gormDB}
}

func (a *apiTest) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed), "body: %s", w.Body.String())
	}
	return w, parsed
}

func (a *apiTest) login(t *testing.T) string {
	t.Helper()

	w, body := a.do(t, http.MethodPost, "/api/login", "", gin.H{
		"username": "admin",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthCheck(t *testing.T) {
	api := newAPITest(t)

	w, body := api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestLoginSetsCookieAndReturnsUser(t *testing.T) {
	api := newAPITest(t)

	w, body := api.do(t, http.MethodPost, "/api/login", "", gin.H{
		"username": "admin",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "admin", user["username"])
	assert.Equal(t, "admin", user["user_type"])
	assert.Equal(t, "Administrator", user["full_name"])

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "inventory_session", cookies[0].Name)
	assert.Equal(t, body["token"], cookies[0].Value)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	api := newAPITest(t)

	w, body := api.do(t, http.MethodPost, "/api/login", "", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", body["error"])

	w, body = api.do(t, http.MethodPost, "/api/login", "", gin.H{
		"username": "ghost",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestLoginRequiresBothFields(t *testing.T) {
	api := newAPITest(t)

	w, body := api.do(t, http.MethodPost, "/api/login", "", gin.H{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username and password are required", body["error"])
}

func TestMutationsRequireSession(t *testing.T) {
	api := newAPITest(t)

	w, _ := api.do(t, http.MethodPost, "/api/assets", "", gin.H{
		"asset_number": "A-001",
		"asset_name":   "Laptop",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = api.do(t, http.MethodPost, "/api/assets", "bogus-token", gin.H{
		"asset_number": "A-001",
		"asset_name":   "Laptop",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Reads stay open
	w, _ = api.do(t, http.MethodGet, "/api/assets", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	api := newAPITest(t)
	token := api.login(t)

	w, _ := api.do(t, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(t, http.MethodPost, "/api/assets", token, gin.H{
		"asset_number": "A-001",
		"asset_name":   "Laptop",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAssetLifecycle(t *testing.T) {
	api := newAPITest(t)
	token := api.login(t)

	w, body := api.do(t, http.MethodPost, "/api/assets", token, gin.H{
		"asset_number": "A-001",
		"asset_name":   "Laptop",
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.Equal(t, "Asset created successfully", body["message"])
	assert.EqualValues(t, 1, body["sr_no"])
	firstID := body["asset_id"]

	w, body = api.do(t, http.MethodPost, "/api/assets", token, gin.H{
		"asset_number": "A-002",
		"asset_name":   "Desktop",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, body["sr_no"])

	// Delete the first, then create again: sr_no 1 is gone for good
	w, _ = api.do(t, http.MethodDelete, "/api/assets/"+jsonID(t, firstID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = api.do(t, http.MethodPost, "/api/assets", token, gin.H{
		"asset_number": "A-003",
		"asset_name":   "Monitor",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, body["sr_no"])

	w, body = api.do(t, http.MethodGet, "/api/assets", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows, ok := body["assets"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 2, "the deleted asset stays out of the listing")
}

func TestUpdateAsset(t *testing.T) {
	api := newAPITest(t)
	token := api.login(t)

	w, body := api.do(t, http.MethodPost, "/api/assets", token, gin.H{
		"asset_number": "A-001",
		"asset_name":   "Laptop",
		"hostname":     "old-host",
	})
	require.Equal(t, http.StatusOK, w.Code)
	id := jsonID(t, body["asset_id"])

	w, body = api.do(t, http.MethodPut, "/api/assets/"+id, token, gin.H{
		"asset_number": "A-001",
		"asset_name":   "Laptop",
		"hostname":     "new-host",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Asset updated successfully", body["message"])

	w, body = api.do(t, http.MethodGet, "/api/assets", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := body["assets"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "new-host", row["hostname"])
	assert.EqualValues(t, 1, row["sr_no"])
}

func TestUpdateMissingAsset(t *testing.T) {
	api := newAPITest(t)
	token := api.login(t)

	w, body := api.do(t, http.MethodPut, "/api/assets/9999", token, gin.H{
		"asset_number": "A-001",
		"asset_name":   "Laptop",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Asset not found", body["error"])
}

func TestCreateAssetMissingRequiredField(t *testing.T) {
	api := newAPITest(t)
	token := api.login(t)

	w, _ := api.do(t, http.MethodPost, "/api/assets", token, gin.H{
		"asset_name": "Laptop",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchAndFilters(t *testing.T) {
	api := newAPITest(t)
	token := api.login(t)

	require.NoError(t, api.db.Create(&models.Plant{Name: "Dharwad", IsActive: true}).Error)

	w, _ := api.do(t, http.MethodPost, "/api/assets", token, gin.H{
		"asset_number": "A-001",
		"asset_name":   "Dell Laptop",
		"plant_id":     1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = api.do(t, http.MethodPost, "/api/assets", token, gin.H{
		"asset_number": "A-002",
		"asset_name":   "HP Printer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, body := api.do(t, http.MethodGet, "/api/assets?search=dell", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["assets"], 1)

	w, body = api.do(t, http.MethodGet, "/api/assets?plant_id=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := body["assets"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Dharwad", rows[0].(map[string]interface{})["plant_name"])

	w, body = api.do(t, http.MethodGet, "/api/assets?plant_id=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid plant ID", body["error"])
}

func TestServerCollectionsAreSeparate(t *testing.T) {
	api := newAPITest(t)
	token := api.login(t)

	w, body := api.do(t, http.MethodPost, "/api/servers/sap", token, gin.H{
		"server_brand": "Dell",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["sr_no"])

	w, body = api.do(t, http.MethodPost, "/api/servers/non-sap", token, gin.H{
		"server_brand": "HP",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["sr_no"], "the two server collections number independently")

	w, body = api.do(t, http.MethodGet, "/api/servers/sap", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["servers"], 1)
}

func TestPlantAssetsScopedByPath(t *testing.T) {
	api := newAPITest(t)
	token := api.login(t)

	w, body := api.do(t, http.MethodPost, "/api/plant-assets/1", token, gin.H{
		"asset_name": "Welder",
		// The body claims another plant; the path wins
		"plant_id": 99,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.EqualValues(t, 1, body["sr_no"])

	w, body = api.do(t, http.MethodPost, "/api/plant-assets/2", token, gin.H{
		"asset_name": "Press",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["sr_no"], "each plant numbers from 1")

	w, body = api.do(t, http.MethodGet, "/api/plant-assets/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := body["assets"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Welder", rows[0].(map[string]interface{})["asset_name"])
}

func TestDashboardStatsEndpoint(t *testing.T) {
	api := newAPITest(t)
	token := api.login(t)

	w, _ := api.do(t, http.MethodPost, "/api/assets", token, gin.H{
		"asset_number": "A-001",
		"asset_name":   "Laptop",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, body := api.do(t, http.MethodGet, "/api/dashboard/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	stats, ok := body["stats"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, stats["assets"])
	assert.EqualValues(t, 0, stats["servers"])
	for _, key := range []string{"assets", "software_licenses", "servers", "switches", "cctv", "printers", "plants", "departments"} {
		assert.Contains(t, stats, key)
	}
}

func TestReferenceLists(t *testing.T) {
	api := newAPITest(t)

	require.NoError(t, api.db.Create(&models.Plant{Name: "Dharwad", IsActive: true}).Error)
	require.NoError(t, api.db.Create(&models.Plant{Name: "Belgaum", IsActive: false}).Error)
	require.NoError(t, api.db.Create(&models.Department{Name: "Maintenance", IsActive: true}).Error)

	w, body := api.do(t, http.MethodGet, "/api/plants", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	plants := body["plants"].([]interface{})
	require.Len(t, plants, 1, "inactive plants stay hidden")
	assert.Equal(t, "Dharwad", plants[0].(map[string]interface{})["name"])

	w, body = api.do(t, http.MethodGet, "/api/departments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["departments"], 1)
}

// jsonID renders a numeric JSON value as a path segment.
func jsonID(t *testing.T, v interface{}) string {
	t.Helper()
	f, ok := v.(float64)
	require.True(t, ok, "expected numeric id, got %T", v)
	return strconv.FormatUint(uint64(f), 10)
}
