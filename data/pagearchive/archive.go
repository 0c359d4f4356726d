// Package pagearchive keeps the raw html of every results page in object
// storage so a run can be parsed again later.
package pagearchive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Pjt727/soc/collection/schedule"
)

var ErrNotConfigured = errors.New("MINIO_ENDPOINT is not set")

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ConfigFromEnv reads the MINIO_* variables
func ConfigFromEnv() (Config, error) {
	config := Config{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Bucket:    os.Getenv("MINIO_BUCKET"),
	}
	if config.Endpoint == "" {
		return config, ErrNotConfigured
	}
	if config.Bucket == "" {
		config.Bucket = "soc-pages"
	}
	if useSSL := os.Getenv("MINIO_USE_SSL"); useSSL != "" {
		parsed, err := strconv.ParseBool(useSSL)
		if err != nil {
			return config, fmt.Errorf("MINIO_USE_SSL: %w", err)
		}
		config.UseSSL = parsed
	}
	return config, nil
}

type Archive struct {
	client *minio.Client
	bucket string
}

func New(ctx context.Context, config Config) (*Archive, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", config.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", config.Bucket, err)
		}
	}
	return &Archive{client: client, bucket: config.Bucket}, nil
}

// ObjectKey is <term>/<run id>/page-<n>.html
func ObjectKey(run *schedule.Run, page int) string {
	return fmt.Sprintf("%s/%s/page-%d.html", run.Term, run.ID, page)
}

func (a *Archive) ArchivePage(ctx context.Context, run *schedule.Run, page int, raw []byte) error {
	_, err := a.client.PutObject(
		ctx,
		a.bucket,
		ObjectKey(run, page),
		bytes.NewReader(raw),
		int64(len(raw)),
		minio.PutObjectOptions{
			ContentType: "text/html",
			UserMetadata: map[string]string{
				"run-started": run.Started.UTC().Format("2006-01-02T15:04:05Z"),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to upload page %d: %w", page, err)
	}
	return nil
}

// Page downloads one archived page, used to parse an old run again.
func (a *Archive) Page(ctx context.Context, key string) ([]byte, error) {
	object, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	raw, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return raw, nil
}

// RunPages lists the archived page keys of one run in page order.
func (a *Archive) RunPages(ctx context.Context, term string, runID string) ([]string, error) {
	prefix := term + "/" + runID + "/"
	var keys []string
	for object := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, object.Err)
		}
		keys = append(keys, object.Key)
	}
	return SortPageKeys(keys), nil
}
