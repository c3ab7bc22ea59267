package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Upload is where stored bytes can be fetched from.
type Upload struct {
	URL string `json:"url"`
}

// Uploader stores raw bytes and returns a durable retrieval URL.
type Uploader interface {
	Store(ctx context.Context, r io.Reader, originalName string) (Upload, error)
}

// LocalStorage writes uploads into Dir and serves them under Prefix.
type LocalStorage struct {
	Dir    string
	Prefix string
}

func NewLocalStorage(dir, prefix string) *LocalStorage {
	if prefix == "" {
		prefix = "/uploads"
	}
	return &LocalStorage{Dir: dir, Prefix: strings.TrimRight(prefix, "/")}
}

func (s *LocalStorage) Store(ctx context.Context, r io.Reader, originalName string) (Upload, error) {
	if err := ctx.Err(); err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return Upload{}, fmt.Errorf("%w: mkdir uploads dir: %v", ErrUploadFailed, err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	fullpath := filepath.Join(s.Dir, filename)

	f, err := os.OpenFile(fullpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: create file: %v", ErrUploadFailed, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(fullpath)
		return Upload{}, fmt.Errorf("%w: write file: %v", ErrUploadFailed, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(fullpath)
		return Upload{}, fmt.Errorf("%w: close file: %v", ErrUploadFailed, err)
	}

	return Upload{URL: s.Prefix + "/" + filename}, nil
}

// Owns reports whether url points at a file kept by this storage.
func (s *LocalStorage) Owns(url string) bool {
	return url != "" && strings.HasPrefix(url, s.Prefix+"/")
}

// Remove deletes the file behind a local URL. URLs of other stores and files
// that are already gone are ignored.
func (s *LocalStorage) Remove(url string) error {
	if !s.Owns(url) {
		return nil
	}
	name := path.Base(strings.TrimPrefix(url, s.Prefix+"/"))
	if name == "." || name == "/" || name == ".." {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// cloudinaryAPI is the part of the Cloudinary upload client we use.
type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryUploader streams uploads into a Cloudinary folder.
type CloudinaryUploader struct {
	api    cloudinaryAPI
	folder string
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinaryUploader{api: &cld.Upload, folder: folder}, nil
}

func (u *CloudinaryUploader) Store(ctx context.Context, r io.Reader, originalName string) (Upload, error) {
	res, err := u.api.Upload(ctx, r, uploader.UploadParams{Folder: u.folder})
	if err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if res == nil {
		return Upload{}, fmt.Errorf("%w: empty response for %s", ErrUploadFailed, originalName)
	}
	if res.Error.Message != "" {
		return Upload{}, fmt.Errorf("%w: %s", ErrUploadFailed, res.Error.Message)
	}
	if res.SecureURL == "" {
		return Upload{}, fmt.Errorf("%w: no secure url for %s", ErrUploadFailed, originalName)
	}
	return Upload{URL: res.SecureURL}, nil
}
