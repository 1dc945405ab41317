package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	imagePrefix    = "images/"
	presignExpires = 5 * time.Minute
)

// S3API is the part of *s3.Client used for uploads
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Presigner is the part of *s3.PresignClient used for presigned URLs
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*PresignedRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*PresignedRequest, error)
}

// PresignedRequest mirrors the URL part of the signer output
type PresignedRequest struct {
	URL    string
	Method string
}

// S3Service stores profile images in a bucket
type S3Service struct {
	Client        S3API
	Presigner     Presigner
	Bucket        string
	PublicBaseURL string
	Region        string
}

// NewS3Client builds the S3 client, pointing it at endpoint with path-style addressing when given.
func NewS3Client(cfg aws.Config, endpoint string) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
}

// UploadImage stores body under images/<uuid> and returns the key and the download URL
func (s *S3Service) UploadImage(ctx context.Context, contentType string, body io.ReadSeeker) (string, string, error) {
	if s.Bucket == "" {
		return "", "", fmt.Errorf("image upload: bucket is not configured")
	}
	key := imagePrefix + uuid.NewString()

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}
	return key, s.DownloadURL(key), nil
}

// DownloadURL is the public URL of key
func (s *S3Service) DownloadURL(key string) string {
	if s.PublicBaseURL != "" {
		return strings.TrimRight(s.PublicBaseURL, "/") + "/" + key
	}
	if s.Region != "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Bucket, s.Region, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.Bucket, key)
}

// GenerateUploadURL generates a presigned URL for uploading a file
func (s *S3Service) GenerateUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	key := imagePrefix + uuid.NewString() + "-" + sanitizeFileName(fileName)
	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	req, err := s.Presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(presignExpires))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return req.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a file
func (s *S3Service) GenerateReadURL(ctx context.Context, key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}
	req, err := s.Presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(presignExpires))
	if err != nil {
		return "", fmt.Errorf("failed to presign read: %w", err)
	}
	return req.URL, nil
}

func sanitizeFileName(name string) string {
	name = name[strings.LastIndexAny(name, `/\`)+1:]
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// s3Presigner adapts *s3.PresignClient to Presigner
type s3Presigner struct {
	client *s3.PresignClient
}

// NewPresigner wraps the presign client of c
func NewPresigner(c *s3.Client) Presigner {
	return &s3Presigner{client: s3.NewPresignClient(c)}
}

func (p *s3Presigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*PresignedRequest, error) {
	req, err := p.client.PresignPutObject(ctx, params, optFns...)
	if err != nil {
		return nil, err
	}
	return &PresignedRequest{URL: req.URL, Method: req.Method}, nil
}

func (p *s3Presigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*PresignedRequest, error) {
	req, err := p.client.PresignGetObject(ctx, params, optFns...)
	if err != nil {
		return nil, err
	}
	return &PresignedRequest{URL: req.URL, Method: req.Method}, nil
}
