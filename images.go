// MIT License

// Copyright (c) 2023 anagilda

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package mobilestore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var imageLog *logrus.Entry = GetLogger("images")

// ObjectUploader the bucket upload capability used in production mode
type ObjectUploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// minioUploader uploads into an s3 compatible bucket
type minioUploader struct {
	client *minio.Client
	bucket string
}

func (u *minioUploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

// NewBucketUploader build the bucket client from the storage section
func NewBucketUploader(cfg *StorageConfig) (ObjectUploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("build bucket client: %w", err)
	}
	return &minioUploader{client: client, bucket: cfg.Bucket}, nil
}

// ImageStore writes image blobs under a model derived key
// Development mode only writes to the local media dir, production mode
// additionally uploads the object to the bucket, the toggle comes from
// configuration, never from the pipeline
type ImageStore struct {
	fs       afero.Fs
	mediaDir string
	env      string
	uploader ObjectUploader
}

// ImageStoreOption optional parameters of the image store
type ImageStoreOption func(s *ImageStore)

// ImageStoreWithFs swap the backing filesystem, used by tests
func ImageStoreWithFs(fs afero.Fs) ImageStoreOption {
	return func(s *ImageStore) {
		s.fs = fs
	}
}

// ImageStoreWithUploader set the production bucket uploader
func ImageStoreWithUploader(uploader ObjectUploader) ImageStoreOption {
	return func(s *ImageStore) {
		s.uploader = uploader
	}
}

func NewImageStore(cfg *StorageConfig, opts ...ImageStoreOption) *ImageStore {
	store := &ImageStore{
		fs:       afero.NewOsFs(),
		mediaDir: cfg.MediaDir,
		env:      cfg.Env,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Key the addressable path of a model's image
func (s *ImageStore) Key(model string) string {
	return path.Join("img", Minify(model)+".jpg")
}

// Save write the blob locally and, in production mode, upload it to the
// bucket under the same key
func (s *ImageStore) Save(ctx context.Context, model string, data []byte) (string, error) {
	key := s.Key(model)
	filePath := filepath.Join(s.mediaDir, filepath.FromSlash(key))
	if err := s.fs.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return "", fmt.Errorf("create media dir for %q: %w", model, err)
	}
	if err := afero.WriteFile(s.fs, filePath, data, 0o644); err != nil {
		return "", fmt.Errorf("write image of %q: %w", model, err)
	}
	if s.env == EnvProduction && s.uploader != nil {
		if err := s.uploader.Upload(ctx, key, data, "image/jpeg"); err != nil {
			return "", fmt.Errorf("upload image of %q: %w", model, err)
		}
		imageLog.Infof("Image of %q uploaded to bucket (%s)", model, key)
	}
	return key, nil
}
