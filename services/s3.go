package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignedURLExpiration = 15 * time.Minute

var ErrStorageDisabled = errors.New("photo storage is not configured")

type AWSServiceProvider interface {
	InitPresignClient(ctx context.Context) error
	PresignPhotoUpload(ctx context.Context, bucketName string, fileName string) (string, error)
	PresignPhotoRead(ctx context.Context, bucketName, fileKey string) (string, error)
}

type StorageConfig struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
}

// AWSService presigns clothing photo uploads and downloads against an
// S3 compatible bucket (Cloudflare R2 by default).
type AWSService struct {
	Config          StorageConfig
	S3PresignClient *s3.PresignClient
}

func (awsService *AWSService) InitPresignClient(ctx context.Context) error {
	if awsService.Config.AccountID == "" {
		return ErrStorageDisabled
	}
	accountID := awsService.Config.AccountID
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
		}, nil
	})
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(r2Resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(awsService.Config.AccessKeyID, awsService.Config.AccessKeySecret, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	awsService.S3PresignClient = s3.NewPresignClient(s3.NewFromConfig(cfg))
	return nil
}

func (awsService *AWSService) PresignPhotoUpload(ctx context.Context, bucketName string, fileName string) (string, error) {
	if awsService.S3PresignClient == nil {
		return "", ErrStorageDisabled
	}
	request, err := awsService.S3PresignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(fileName),
	}, s3.WithPresignExpires(presignedURLExpiration))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return request.URL, nil
}

func (awsService *AWSService) PresignPhotoRead(ctx context.Context, bucketName, fileKey string) (string, error) {
	if awsService.S3PresignClient == nil {
		return "", ErrStorageDisabled
	}
	presignedGetRequest, err := awsService.S3PresignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(fileKey),
	}, s3.WithPresignExpires(presignedURLExpiration))
	if err != nil {
		return "", fmt.Errorf("failed to presign request: %w", err)
	}
	return presignedGetRequest.URL, nil
}
