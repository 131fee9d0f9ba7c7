package config

import (
	"os"

	"stellar-delivery-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens, read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "stellar_delivery_super_secret"))

// UploadDir is where image uploads are written; served under /uploads.
var UploadDir = getEnv("UPLOAD_DIR", "./uploads")

// DatabasePath points at the sqlite file; tests override with :memory:.
var DatabasePath = getEnv("DATABASE_PATH", "stellar_delivery.db")

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnv reads a .env file if one is present, then refreshes the
// env-derived values. Missing .env is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}
	JWTSecret = []byte(getEnv("JWT_SECRET", "stellar_delivery_super_secret"))
	UploadDir = getEnv("UPLOAD_DIR", "./uploads")
	DatabasePath = getEnv("DATABASE_PATH", "stellar_delivery.db")
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := Migrate(DB); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	log.Info().Str("path", DatabasePath).Msg("database connected and migrated")
}

// Migrate creates tables for all models if absent.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RequesterProfile{},
		&models.RequesterAddress{},
		&models.DelivererProfile{},
		&models.StoreProfile{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderDetail{},
		&models.OrderStatusHistory{},
		&models.Delivery{},
		&models.DeliveryLocation{},
		&models.Notification{},
		&models.Payment{},
		&models.Payout{},
		&models.Sale{},
		&models.Image{},
		&models.ProductRecipe{},
		&models.RecipeIngredient{},
		&models.RecipeStep{},
	)
}
