package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"stellar-delivery-api/config"
	"stellar-delivery-api/middleware"
	"stellar-delivery-api/models"
	"stellar-delivery-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testPassword = "password123"

// newTestServer wires a fresh in-memory database into the package-level DB
// handle and returns a router with all routes mounted.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps the in-memory database shared across sessions.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func createUser(t *testing.T, email string, role models.UserRole) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func createRequester(t *testing.T, email string) (models.User, models.RequesterProfile, string) {
	t.Helper()
	user := createUser(t, email, models.RoleRequester)
	profile := models.RequesterProfile{UserID: user.ID, Name: "Test Requester"}
	require.NoError(t, config.DB.Create(&profile).Error)
	return user, profile, tokenFor(t, &user)
}

func createDeliverer(t *testing.T, email string) (models.User, models.DelivererProfile, string) {
	t.Helper()
	user := createUser(t, email, models.RoleDeliverer)
	profile := models.DelivererProfile{UserID: user.ID, Name: "Test Deliverer", WorkStatus: models.WorkOnline}
	require.NoError(t, config.DB.Create(&profile).Error)
	return user, profile, tokenFor(t, &user)
}

func createStore(t *testing.T, email string) (models.User, models.StoreProfile, string) {
	t.Helper()
	user := createUser(t, email, models.RoleStore)
	profile := models.StoreProfile{UserID: user.ID, StoreName: "Test Store", Address: "Tokyo", IsOpen: true}
	require.NoError(t, config.DB.Create(&profile).Error)
	return user, profile, tokenFor(t, &user)
}

func createProduct(t *testing.T, storeID uint, name string, price int) models.Product {
	t.Helper()
	product := models.Product{
		StoreID:     storeID,
		Name:        name,
		Price:       price,
		IsAvailable: true,
	}
	require.NoError(t, config.DB.Create(&product).Error)
	return product
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(user)
	require.NoError(t, err)
	return token
}

// doJSON performs a request with a JSON body and optional bearer token.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// placeOrder creates a simple order through the API and returns its id.
func placeOrder(t *testing.T, r *gin.Engine, token string, storeID uint, lines []map[string]interface{}) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/orders", map[string]interface{}{
		"store_id":         storeID,
		"delivery_address": "1-2-3 Shibuya",
		"details":          lines,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	order, ok := body["order"].(map[string]interface{})
	require.True(t, ok, "order missing in %v", body)
	return uint(order["id"].(float64))
}

func setOrderStatus(t *testing.T, orderID uint, status models.OrderStatus) {
	t.Helper()
	require.NoError(t, config.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error)
}

func line(productID uint, qty int) map[string]interface{} {
	return map[string]interface{}{"product_id": productID, "quantity": qty}
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, emailSeq())
}

var seq int

func emailSeq() int {
	seq++
	return seq
}
