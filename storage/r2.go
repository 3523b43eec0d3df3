package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Store stores objects in a Cloudflare R2 bucket through the S3 API.
// Public URLs are served from R2_PUBLIC_DOMAIN (a custom domain or the
// bucket's r2.dev URL).
type R2Store struct {
	s3           *s3.Client
	bucket       string
	publicDomain string
}

func NewR2Store(ctx context.Context) (*R2Store, error) {
	bucket := os.Getenv("R2_BUCKET")
	accessKey := os.Getenv("R2_ACCESS_KEY_ID")
	secretKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	endpoint := os.Getenv("R2_ENDPOINT") // https://<account-id>.r2.cloudflarestorage.com

	if bucket == "" || accessKey == "" || secretKey == "" || endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2Store{
		s3:           client,
		bucket:       bucket,
		publicDomain: strings.TrimRight(os.Getenv("R2_PUBLIC_DOMAIN"), "/"),
	}, nil
}

func (s *R2Store) Put(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(objectName),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicDomain, s.bucket, objectName), nil
}

func (s *R2Store) Delete(ctx context.Context, objectName string) error {
	_, err := s.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", objectName, err)
	}
	return nil
}

func (s *R2Store) ObjectName(publicURL string) (string, error) {
	if s.publicDomain != "" && strings.HasPrefix(publicURL, s.publicDomain+"/"+s.bucket+"/") {
		return strings.TrimPrefix(publicURL, s.publicDomain+"/"+s.bucket+"/"), nil
	}

	// r2.dev style: https://<bucket>.<account>.r2.dev/<object>
	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(publicURL, prefix) {
			withoutScheme := strings.TrimPrefix(publicURL, prefix)
			slash := strings.Index(withoutScheme, "/")
			if slash == -1 {
				return "", fmt.Errorf("no object path in url")
			}
			return withoutScheme[slash+1:], nil
		}
	}

	return "", fmt.Errorf("not a recognised R2 public url")
}
