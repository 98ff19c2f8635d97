package storage

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"

	"bazzangee/internal/metrics"
)

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	Timeout       time.Duration
}

type objectDeleter interface {
	DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

type S3Uploader struct {
	uploader s3manageriface.UploaderAPI
	deleter  objectDeleter
	bucket   string
	baseURL  string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewS3Uploader builds an uploader against AWS S3 or any S3-compatible
// endpoint. Without static keys the default credential chain is used.
func NewS3Uploader(cfg S3Config, logger *slog.Logger) (*S3Uploader, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	client := s3.New(sess)
	return NewS3UploaderWithClients(s3manager.NewUploaderWithClient(client), client, cfg, logger), nil
}

func NewS3UploaderWithClients(uploader s3manageriface.UploaderAPI, deleter objectDeleter, cfg S3Config, logger *slog.Logger) *S3Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &S3Uploader{
		uploader: uploader,
		deleter:  deleter,
		bucket:   cfg.Bucket,
		baseURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
		timeout:  timeout,
		logger:   logger,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, file *multipart.FileHeader, dirName, savedURL string, orderFoodID *int64) (string, error) {
	if file == nil {
		return savedURL, nil
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key := ObjectKey(dirName, file.Filename, orderFoodID)

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	start := time.Now()
	_, err = u.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType(file)),
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
	})
	metrics.RecordUpload(err == nil, time.Since(start))
	if err != nil {
		u.logger.Error("upload_failed", "key", key, "error", err)
		return "", fmt.Errorf("unable to upload file to S3: %w", err)
	}

	u.logger.Info("upload_completed", "key", key, "size", file.Size)
	return u.baseURL + "/" + key, nil
}

// Delete removes the object behind url. URLs that do not belong to this
// bucket are ignored.
func (u *S3Uploader) Delete(ctx context.Context, url string) error {
	key, ok := u.keyFor(url)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.deleter.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	u.logger.Info("object_deleted", "key", key)
	return nil
}

func (u *S3Uploader) keyFor(url string) (string, bool) {
	prefix := u.baseURL + "/"
	if url == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
