package storage

import (
	"bytes"
	"context"
	"fmt"

	"profile-sync/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewClient erstellt einen S3-Client für den konfigurierten Object-Store.
// Poster, Profilbilder und Partner-Logos gehen direkt dorthin, am
// Profil-Backend vorbei; im Backend landet nur die öffentliche URL.
func NewClient(cfg *config.Config) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.StorageS3URL,
				SigningRegion:     cfg.StorageS3Region,
				HostnameImmutable: true,
			}, nil
		},
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.StorageS3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.StorageS3Key, cfg.StorageS3Secret, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// UploadMedia lädt eine Binärdatei hoch und gibt den öffentlichen Link zurück.
func UploadMedia(ctx context.Context, client *s3.Client, cfg *config.Config, key, contentType string, data []byte) (string, error) {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(cfg.StorageS3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	link := fmt.Sprintf("%s/%s/%s", cfg.StorageS3URL, cfg.StorageS3Bucket, key)
	return link, nil
}
