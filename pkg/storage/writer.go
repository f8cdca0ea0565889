package storage

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	s3Scheme   = "s3://"
	fileScheme = "file://"

	dirPermissions = 0o755
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3ClientFactory func(ctx context.Context) (putObjectAPI, error)

// Writer opens destinations for files that are written in one go: local paths or s3://bucket/key URLs.
type Writer struct {
	fs       afero.Fs
	s3Client s3ClientFactory
}

func NewWriter(fs afero.Fs) *Writer {
	return &Writer{
		fs:       fs,
		s3Client: defaultS3Client,
	}
}

func defaultS3Client(ctx context.Context) (putObjectAPI, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load the AWS config")
	}

	return s3.NewFromConfig(awsCfg), nil
}

// Open returns a writer for the given destination. The content is persisted at the latest when the writer is closed.
func (w *Writer) Open(ctx context.Context, path string) (io.WriteCloser, error) {
	if strings.HasPrefix(strings.ToLower(path), s3Scheme) {
		return w.openS3(ctx, path)
	}

	localPath := strings.TrimPrefix(path, fileScheme)
	if localPath == "" {
		return nil, errors.New("empty output path")
	}

	if err := w.fs.MkdirAll(filepath.Dir(localPath), dirPermissions); err != nil {
		return nil, errors.Wrapf(err, "failed to create the directory for '%s'", localPath)
	}

	file, err := w.fs.Create(localPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create '%s'", localPath)
	}

	return file, nil
}

func (w *Writer) openS3(ctx context.Context, url string) (io.WriteCloser, error) {
	bucket, key, err := parseS3URL(url)
	if err != nil {
		return nil, err
	}

	client, err := w.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	return &s3Writer{
		ctx:    ctx,
		client: client,
		bucket: bucket,
		key:    key,
	}, nil
}

func parseS3URL(url string) (bucket, key string, err error) {
	path := url[len(s3Scheme):]
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Errorf("invalid S3 URL '%s', expected s3://bucket/key", url)
	}

	return parts[0], parts[1], nil
}

// s3Writer buffers the content and uploads it with a single PutObject call on Close.
type s3Writer struct {
	ctx    context.Context
	client putObjectAPI
	bucket string
	key    string
	buffer bytes.Buffer
	closed bool
}

func (w *s3Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.New("writer is closed")
	}

	return w.buffer.Write(p)
}

func (w *s3Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	_, err := w.client.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.key),
		Body:   bytes.NewReader(w.buffer.Bytes()),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to upload to s3://%s/%s", w.bucket, w.key)
	}

	return nil
}
