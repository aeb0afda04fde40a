package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	// Basis-URL des Profil-Backends (REST).
	APIBaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:8000"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"4242"`

	// Timeout für einzelne Backend-Anfragen.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	// Lesezugriffe dürfen höchstens einmal transparent wiederholt werden.
	ReadRetries int `envconfig:"READ_RETRIES" default:"1"`

	// User-Scope, für den die Facade standardmäßig liest.
	DefaultUserID int `envconfig:"DEFAULT_USER_ID" default:"1"`

	// Zeitplan für die periodische Cache-Revalidierung.
	RevalidateSchedule string `envconfig:"REVALIDATE_SCHEDULE" default:"@every 15m"`

	// Pfad, unter dem das Session-Token persistiert wird.
	SessionFile string `envconfig:"SESSION_FILE" default:".profile-sync-session"`

	// S3-kompatibler Object-Store für Poster, Profilbilder und Logos.
	StorageS3Key    string `envconfig:"STORAGE_S3_KEY"`
	StorageS3Secret string `envconfig:"STORAGE_S3_SECRET"`
	StorageS3URL    string `envconfig:"STORAGE_S3_URL"`
	StorageS3Region string `envconfig:"STORAGE_S3_REGION" default:"us-east-1"`
	StorageS3Bucket string `envconfig:"STORAGE_S3_BUCKET" default:"profile-media"`
}

// StorageConfigured meldet, ob der Object-Store nutzbar konfiguriert ist.
func (c *Config) StorageConfigured() bool {
	return c.StorageS3URL != "" && c.StorageS3Key != "" && c.StorageS3Secret != ""
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
