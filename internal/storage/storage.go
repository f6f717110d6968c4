package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// DefaultMaxWidth is the widest an uploaded image is stored.
const DefaultMaxWidth = 1024

// ErrNotConfigured is returned by New when S3 settings are missing.
var ErrNotConfigured = errors.New("missing S3 configuration")

// ErrNotImage is returned for uploads that do not decode as an image.
var ErrNotImage = errors.New("file is not a supported image")

// Config holds the S3-compatible bucket settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	MaxWidth  int
}

// ConfigFromEnv reads AWS_ENDPOINT_URL_S3, AWS_ACCESS_KEY_ID,
// AWS_SECRET_ACCESS_KEY, BUCKET_NAME, AWS_REGION (default "auto") and
// UPLOAD_MAX_WIDTH (default 1024).
func ConfigFromEnv() Config {
	cfg := Config{
		Endpoint:  os.Getenv("AWS_ENDPOINT_URL_S3"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Bucket:    os.Getenv("BUCKET_NAME"),
		Region:    os.Getenv("AWS_REGION"),
		MaxWidth:  DefaultMaxWidth,
	}
	if cfg.Region == "" {
		cfg.Region = "auto"
	}
	if n, err := strconv.Atoi(os.Getenv("UPLOAD_MAX_WIDTH")); err == nil && n > 0 {
		cfg.MaxWidth = n
	}
	return cfg
}

// Enabled reports whether every required setting is present.
func (c Config) Enabled() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

// objectAPI is the part of the S3 client used here.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Storage struct {
	client   objectAPI
	bucket   string
	baseURL  string
	maxWidth int
}

func New(ctx context.Context, c Config) (*Storage, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")),
		config.WithRegion(c.Region),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.Endpoint)
		o.UsePathStyle = true
	})

	return newWithClient(client, c), nil
}

func newWithClient(client objectAPI, c Config) *Storage {
	maxWidth := c.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	return &Storage{
		client:   client,
		bucket:   c.Bucket,
		baseURL:  strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket + "/",
		maxWidth: maxWidth,
	}
}

// Upload uploads a file and returns the URL
func (s *Storage) Upload(ctx context.Context, file io.Reader, contentType string, ext string) (string, error) {
	key := fmt.Sprintf("images/%s%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         file,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", err
	}

	return s.baseURL + key, nil
}

// UploadImage normalises an image (orientation, max width) and uploads it.
func (s *Storage) UploadImage(ctx context.Context, r io.Reader) (string, error) {
	data, contentType, ext, err := NormalizeImage(r, s.maxWidth)
	if err != nil {
		return "", err
	}
	return s.Upload(ctx, bytes.NewReader(data), contentType, ext)
}

// Delete removes a file from storage
func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// KeyFromURL returns the object key of a URL produced by Upload, or "" when
// the URL points elsewhere.
func (s *Storage) KeyFromURL(u string) string {
	if !strings.HasPrefix(u, s.baseURL) {
		return ""
	}
	return strings.TrimPrefix(u, s.baseURL)
}

// NormalizeImage decodes an image, applies EXIF orientation, shrinks it to
// maxWidth and re-encodes it. PNG and GIF sources are stored as PNG,
// everything else as JPEG.
func NormalizeImage(r io.Reader, maxWidth int) (data []byte, contentType, ext string, err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, "", "", err
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, "", "", ErrNotImage
	}
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", "", ErrNotImage
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	switch format {
	case "png", "gif":
		err = imaging.Encode(&buf, img, imaging.PNG)
		contentType, ext = "image/png", ".png"
	default:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85))
		contentType, ext = "image/jpeg", ".jpg"
	}
	if err != nil {
		return nil, "", "", err
	}
	return buf.Bytes(), contentType, ext, nil
}
