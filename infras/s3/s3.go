package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"dinebook/config"
	"dinebook/infras/otel"
	"dinebook/shared/constant"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// S3 stores documents produced by the service (reservation receipts) in an S3 compatible bucket.
type S3 interface {
	PutObject(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error)
	DeleteObject(ctx context.Context, directory, fileName string) error
	ObjectKeyFromURL(url string) string
}

type s3Impl struct {
	client *s3.Client
	config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) bucket() string {
	return svc.config.External.S3.BucketName
}

func (svc *s3Impl) PutObject(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PutObject")
	defer scope.End()
	defer scope.TraceIfError(&err)

	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    svc.bucket(),
	})

	reader := bytes.NewReader(data)

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket()),
		Key:           aws.String(objectKey),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(reader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload object to S3")

		return constant.Empty, fmt.Errorf("failed to upload object to S3: %w", err)
	}

	return svc.publicURL(objectKey), nil
}

func (svc *s3Impl) DeleteObject(ctx context.Context, directory, fileName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteObject")
	defer scope.End()
	defer scope.TraceIfError(&err)

	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    svc.bucket(),
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket()),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete object from S3")

		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	return nil
}

// ObjectKeyFromURL strips the public domain (or the API endpoint plus bucket) from an object URL.
func (svc *s3Impl) ObjectKeyFromURL(url string) string {
	return objectKeyFromURL(svc.config.External.S3.PublicDomain, svc.config.External.S3.APIEndpoint, svc.bucket(), url)
}

func (svc *s3Impl) publicURL(objectKey string) string {
	publicDomain := strings.TrimSuffix(svc.config.External.S3.PublicDomain, "/")
	if publicDomain == constant.Empty {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(svc.config.External.S3.APIEndpoint, "/"), svc.bucket(), objectKey)
	}

	return fmt.Sprintf("%s/%s", publicDomain, objectKey)
}

func objectKeyFromURL(publicDomain, apiEndpoint, bucket, url string) string {
	if publicDomain != constant.Empty {
		prefix := strings.TrimSuffix(publicDomain, "/") + "/"
		if key, ok := strings.CutPrefix(url, prefix); ok {
			return key
		}
	}

	bucketURL := fmt.Sprintf("%s/%s/", strings.TrimSuffix(apiEndpoint, "/"), bucket)
	if key, ok := strings.CutPrefix(url, bucketURL); ok {
		return key
	}

	return constant.Empty
}

func New(config *config.Config, otel otel.Otel) S3 {
	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(config.External.S3.APIEndpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{
		client: client,
		config: config,
		otel:   otel,
	}
}
