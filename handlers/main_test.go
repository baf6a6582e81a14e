package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"cafe-order-api/config"
	"cafe-order-api/middleware"
	"cafe-order-api/models"
	"cafe-order-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTest wires an in-memory database and a full router, mirroring main().
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	// A second pool connection would see its own empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.HomepageImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	config.DB = db
	config.App = config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
		},
		Storage: config.StorageConfig{
			UploadDir: t.TempDir(),
			PublicURL: "/uploads",
		},
		Retention: config.RetentionConfig{MaxAgeDays: 30},
	}

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func seedAdmin(t *testing.T) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	admin := models.User{
		Name:         "Kasir",
		Email:        "kasir@cafe.local",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	token, err := middleware.GenerateToken(&admin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return admin, token
}

func seedMenuItem(t *testing.T, name string, price float64, available bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:      name,
		Price:     price,
		Category:  models.CategoryDrink,
		Available: available,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item %q: %v", name, err)
	}
	return item
}

func seedOrder(t *testing.T, table int, status models.OrderStatus, total float64, createdAt time.Time) models.Order {
	t.Helper()
	order := models.Order{
		TableNumber: table,
		Status:      status,
		TotalAmount: total,
		CreatedAt:   createdAt,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
