package blobstore

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/createbucketoptions"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type S3StoreConfig struct {
	Bucket   string
	Region   string
	S3Client s3.S3Client
}

/*
S3Store keeps blobs as objects in a single bucket. Each Put is a single
PUT request, which S3 applies atomically.
*/
type S3Store struct {
	bucket   string
	region   string
	s3Client s3.S3Client
}

func NewS3Store(config S3StoreConfig) S3Store {
	return S3Store{
		bucket:   config.Bucket,
		region:   config.Region,
		s3Client: config.S3Client,
	}
}

/*
EnsureBucket creates the bucket when it does not exist yet.
*/
func (s S3Store) EnsureBucket() error {
	var (
		err    error
		exists bool
	)

	if exists, err = s.s3Client.BucketExists(s.bucket); err != nil {
		return fmt.Errorf("error ensuring bucket '%s' exists: %w", s.bucket, err)
	}

	if exists {
		return nil
	}

	slog.Info("creating bucket", "bucketName", s.bucket)

	err = s.s3Client.CreateBucket(
		s.bucket,
		createbucketoptions.WithRegion(s.region),
	)

	if err != nil {
		return fmt.Errorf("error creating bucket '%s': %w", s.bucket, err)
	}

	return nil
}

func (s S3Store) Exists(key string) (bool, error) {
	var (
		err     error
		cleaned string
		stat    *s3.ObjectMetadata
	)

	if cleaned, err = CleanKey(key); err != nil {
		return false, err
	}

	if stat, err = s.s3Client.StatObject(s.bucket, cleaned); err != nil {
		return false, fmt.Errorf("error retrieving metadata for '%s': %w", cleaned, err)
	}

	return stat != nil, nil
}

func (s S3Store) Get(key string) ([]byte, error) {
	var (
		err     error
		cleaned string
		exists  bool
		object  s3.GetObjectResponse
		b       []byte
	)

	if cleaned, err = CleanKey(key); err != nil {
		return nil, err
	}

	if exists, err = s.Exists(cleaned); err != nil {
		return nil, err
	}

	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrNotFound, cleaned)
	}

	if object, err = s.s3Client.Get(s.bucket, cleaned); err != nil {
		return nil, fmt.Errorf("error retrieving object '%s': %w", cleaned, err)
	}

	defer object.Body.Close()

	if b, err = io.ReadAll(object.Body); err != nil {
		return nil, fmt.Errorf("error reading object '%s': %w", cleaned, err)
	}

	return b, nil
}

func (s S3Store) Put(key string, data []byte) error {
	var (
		err     error
		cleaned string
	)

	if cleaned, err = CleanKey(key); err != nil {
		return err
	}

	if _, err = s.s3Client.Put(s.bucket, cleaned, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("error uploading object '%s': %w", cleaned, err)
	}

	return nil
}

func (s S3Store) Delete(key string) error {
	var (
		err     error
		cleaned string
	)

	if cleaned, err = CleanKey(key); err != nil {
		return err
	}

	if _, err = s.s3Client.Delete(s.bucket, []string{cleaned}); err != nil {
		return fmt.Errorf("error deleting object '%s': %w", cleaned, err)
	}

	return nil
}

func (s S3Store) Keys(prefix string) ([]string, error) {
	var (
		err      error
		cleaned  string
		response s3.ListResponse
	)

	if cleaned, err = CleanKey(prefix); err != nil {
		return nil, err
	}

	response, err = s.s3Client.List(
		s.bucket,
		cleaned+"/",
		listoptions.WithGetAll(),
		listoptions.WithFilter(func(obj types.Object) bool {
			return !strings.HasSuffix(aws.ToString(obj.Key), "/")
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("error listing objects under '%s': %w", cleaned, err)
	}

	result := make([]string, 0, len(response.Objects))

	for _, obj := range response.Objects {
		result = append(result, obj.Key)
	}

	sort.Strings(result)
	return result, nil
}
