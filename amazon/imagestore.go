package amazon

import (
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/config"
)

// ErrContentNotFound is returned when no content exists under a storage key.
type contentNotFound string

func (e contentNotFound) Error() string { return string(e) }

// ErrContentNotFound is the sentinel for a missing storage key.
const ErrContentNotFound = contentNotFound("image content not found")

// ImageStore persists and retrieves image content streams by storage key.
type ImageStore interface {
	Upload(content io.Reader, key string, contentType string) error
	GetStream(key string) (io.ReadCloser, error)
	Delete(key string) error
}

// S3ImageStore is where image content is written permanently.
type S3ImageStore struct {
	// Bucket is the bucket name.
	Bucket string
	// KeyPrefix is prepended to every storage key.
	KeyPrefix string
	// AWSSession is the session.
	AWSSession *session.Session
	// S3 is the actual S3 api.
	S3     *s3.S3
	logger *zap.Logger
}

// NewS3ImageStore creates a place to write image content in to S3.
func NewS3ImageStore(sess *session.Session, conf config.S3Configuration, logger *zap.Logger) *S3ImageStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3ImageStore{
		Bucket:     conf.Bucket,
		KeyPrefix:  conf.KeyPrefix,
		AWSSession: sess,
		S3:         s3.New(sess),
		logger:     logger,
	}
}

func (s *S3ImageStore) storageKey(key string) string {
	if s.KeyPrefix == "" {
		return key
	}
	return path.Join(s.KeyPrefix, key)
}

// Upload writes an image content stream into S3.
func (s *S3ImageStore) Upload(content io.Reader, key string, contentType string) error {
	uploader := s3manager.NewUploader(s.AWSSession)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Body:        content,
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(s.storageKey(key)),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("s3 upload failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// GetStream retrieves an image content stream from S3.
func (s *S3ImageStore) GetStream(key string) (io.ReadCloser, error) {
	out, err := s.S3.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.storageKey(key)),
	})
	if err != nil {
		// Normalizing the error so callers can check a sentinel value.
		if strings.Contains(err.Error(), "NoSuchKey") {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return out.Body, nil
}

// Delete removes image content from S3. Deleting a missing key is not an
// error.
func (s *S3ImageStore) Delete(key string) error {
	_, err := s.S3.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.storageKey(key)),
	})
	if err != nil {
		s.logger.Error("s3 delete failed", zap.String("key", key), zap.Error(err))
	}
	return err
}
