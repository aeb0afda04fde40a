package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	appconfig "profile-sync/config"
	"profile-sync/gateways/biosections"
	"profile-sync/gateways/organization"
	"profile-sync/gateways/profiles"
	"profile-sync/gateways/publications"
	"profile-sync/gateways/teaching"
	"profile-sync/models"
	"profile-sync/session"
	"profile-sync/transport"
)

type BackupConfig struct {
	APIBaseURL      string        `envconfig:"API_BASE_URL" required:"true"`
	BackupUserID    int           `envconfig:"BACKUP_USER_ID" default:"1"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	SessionFile     string        `envconfig:"SESSION_FILE" default:".profile-sync-session"`
	BackupBucket    string        `envconfig:"BACKUP_S3_BUCKET" required:"true"`
	BackupEndpoint  string        `envconfig:"BACKUP_S3_ENDPOINT" required:"true"`
	BackupAccessKey string        `envconfig:"BACKUP_S3_ACCESS_KEY" required:"true"`
	BackupSecretKey string        `envconfig:"BACKUP_S3_SECRET_KEY" required:"true"`
	BackupRegion    string        `envconfig:"BACKUP_S3_REGION" required:"true"`
	KeepBackups     int           `envconfig:"KEEP_BACKUPS" default:"4"`
}

// snapshot ist der serialisierte Stand aller Entity-Familien eines Users.
type snapshot struct {
	CreatedAt    time.Time                    `json:"created_at"`
	UserID       int                          `json:"user_id"`
	Profile      *models.Profile              `json:"profile,omitempty"`
	Publications []models.Publication         `json:"publications"`
	BioSections  []models.BioSection          `json:"bio_sections"`
	Teaching     []models.TeachingExperience  `json:"teaching"`
	Courses      map[int][]models.Course      `json:"courses"`
	Centers      []models.OrganizationCenter  `json:"centers"`
	Partners     []models.OrganizationPartner `json:"partners"`
	Careers      []models.OrganizationCareer  `json:"careers"`
}

func main() {
	log.Println("Starte Backup-Prozess...")

	var cfg BackupConfig
	err := envconfig.Process("", &cfg)
	if err != nil {
		log.Fatalf("Fehler beim Laden der Konfiguration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Fehler beim Initialisieren des Loggers: %v", err)
	}
	defer logger.Sync()

	// 1. Snapshot aller Entity-Familien vom Backend ziehen
	snap, err := pullSnapshot(cfg, logger)
	if err != nil {
		log.Fatalf("Fehler beim Ziehen des Snapshots: %v", err)
	}

	data, err := compressSnapshot(snap)
	if err != nil {
		log.Fatalf("Fehler beim Serialisieren des Snapshots: %v", err)
	}

	// 2. S3-Client erstellen
	s3Client, err := createS3Client(cfg)
	if err != nil {
		log.Fatalf("Fehler beim Erstellen des S3-Clients: %v", err)
	}

	// 3. Backup nach S3 hochladen
	fileName := fmt.Sprintf("backup-%s.json.gz", time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	err = uploadToS3(s3Client, cfg, fileName, data)
	if err != nil {
		log.Fatalf("Fehler beim Hochladen nach S3: %v", err)
	}
	log.Printf("Backup erfolgreich nach s3://%s/%s hochgeladen", cfg.BackupBucket, fileName)

	// 4. Alte Backups rotieren
	err = rotateBackups(s3Client, cfg)
	if err != nil {
		log.Fatalf("Fehler bei der Rotation alter Backups: %v", err)
	}

	log.Println("Backup-Prozess erfolgreich abgeschlossen.")
}

func pullSnapshot(cfg BackupConfig, logger *zap.Logger) (*snapshot, error) {
	appCfg := &appconfig.Config{
		APIBaseURL:     cfg.APIBaseURL,
		RequestTimeout: cfg.RequestTimeout,
		SessionFile:    cfg.SessionFile,
	}
	sess := session.New(appCfg.SessionFile, logger)
	client := transport.NewClient(appCfg, sess, logger)

	pubGW := publications.New(client, logger)
	bioGW := biosections.New(client, logger)
	teachGW := teaching.New(client, logger)
	profileGW := profiles.New(client, logger)
	orgGW := organization.New(client, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	snap := &snapshot{
		CreatedAt: time.Now().UTC(),
		UserID:    cfg.BackupUserID,
		Courses:   make(map[int][]models.Course),
	}

	var err error
	snap.Profile, err = profileGW.Get(ctx, cfg.BackupUserID)
	if err != nil {
		// Ein fehlendes Profil ist kein Abbruchgrund für das Backup.
		if !transport.IsNotFound(err) {
			return nil, fmt.Errorf("profile: %w", err)
		}
		log.Printf("Kein Profil für User %d gefunden, überspringe.", cfg.BackupUserID)
	}
	if snap.Publications, err = pubGW.List(ctx, cfg.BackupUserID); err != nil {
		return nil, fmt.Errorf("publications: %w", err)
	}
	if snap.BioSections, err = bioGW.List(ctx, cfg.BackupUserID); err != nil {
		return nil, fmt.Errorf("bio sections: %w", err)
	}
	if snap.Teaching, err = teachGW.List(ctx, cfg.BackupUserID); err != nil {
		return nil, fmt.Errorf("teaching: %w", err)
	}
	for _, t := range snap.Teaching {
		courses, err := teachGW.ListCourses(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("courses for teaching %d: %w", t.ID, err)
		}
		snap.Courses[t.ID] = courses
	}
	if snap.Centers, err = orgGW.ListCenters(ctx); err != nil {
		return nil, fmt.Errorf("centers: %w", err)
	}
	if snap.Partners, err = orgGW.ListPartners(ctx); err != nil {
		return nil, fmt.Errorf("partners: %w", err)
	}
	if snap.Careers, err = orgGW.ListCareers(ctx); err != nil {
		return nil, fmt.Errorf("careers: %w", err)
	}

	return snap, nil
}

func compressSnapshot(snap *snapshot) ([]byte, error) {
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gzipWriter).Encode(snap); err != nil {
		return nil, err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func createS3Client(cfg BackupConfig) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: cfg.BackupEndpoint,
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.BackupAccessKey, cfg.BackupSecretKey, "")),
		awsconfig.WithRegion(cfg.BackupRegion),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

func uploadToS3(client *s3.Client, cfg BackupConfig, key string, data []byte) error {
	_, err := client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(cfg.BackupBucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return err
}

func rotateBackups(client *s3.Client, cfg BackupConfig) error {
	// Der Bucket enthält auch hochgeladene Medien; nur Backup-Objekte rotieren.
	output, err := client.ListObjectsV2(context.TODO(), &s3.ListObjectsV2Input{
		Bucket: aws.String(cfg.BackupBucket),
		Prefix: aws.String("backup-"),
	})
	if err != nil {
		return err
	}

	if len(output.Contents) <= cfg.KeepBackups {
		log.Printf("Weniger als %d Backups vorhanden, keine Rotation nötig.", cfg.KeepBackups)
		return nil
	}

	sort.Slice(output.Contents, func(i, j int) bool {
		return output.Contents[i].LastModified.After(*output.Contents[j].LastModified)
	})

	for _, obj := range output.Contents[cfg.KeepBackups:] {
		log.Printf("Lösche altes Backup: %s", *obj.Key)
		_, err := client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
			Bucket: aws.String(cfg.BackupBucket),
			Key:    obj.Key,
		})
		if err != nil {
			log.Printf("Fehler beim Löschen von %s: %v", *obj.Key, err)
		}
	}

	return nil
}
