package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/agenciadecir/gympro/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port      string
	JWTSecret string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	// requests per minute allowed on the AI endpoints, per user
	AIRateRPM int

	S3Bucket      string
	S3Region      string
	CloudFrontURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        getenv("DB_PORT", "5432"),
		AIAPIKey:      os.Getenv("AI_API_KEY"),
		AIBaseURL:     getenv("AI_BASE_URL", "https://api.openai.com/v1"),
		AIModel:       getenv("AI_MODEL", "gpt-4o-mini"),
		AIRateRPM:     10,
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      getenv("S3_REGION", os.Getenv("AWS_REGION")),
		CloudFrontURL: os.Getenv("CLOUDFRONT_URL"),
	}
	if v := os.Getenv("AI_RATE_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AIRateRPM = n
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ConnectDB opens the Postgres connection and runs migrations. The returned
// handle is passed to every component that needs persistence; there is no
// package-level database state.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Routine{},
		&models.WorkoutDay{},
		&models.Exercise{},
		&models.Diet{},
		&models.Meal{},
		&models.MealItem{},
		&models.Recipe{},
		&models.PhysicalProgress{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}
	return nil
}
