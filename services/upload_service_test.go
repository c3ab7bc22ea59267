package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func TestLocalStorageStoreAndRemove(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStorage(dir, "/uploads")

	up, err := store.Store(context.Background(), bytes.NewReader([]byte("jpeg-bytes")), "photo.JPG")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !strings.HasPrefix(up.URL, "/uploads/") || !strings.HasSuffix(up.URL, ".jpg") {
		t.Fatalf("unexpected url %q", up.URL)
	}

	path := filepath.Join(dir, strings.TrimPrefix(up.URL, "/uploads/"))
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "jpeg-bytes" {
		t.Fatalf("stored file = %q, %v", data, err)
	}

	if err := store.Remove(up.URL); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file removed, stat err = %v", err)
	}
	if err := store.Remove(up.URL); err != nil {
		t.Fatalf("Remove of missing file should be ignored, got %v", err)
	}
}

func TestLocalStorageNamesDoNotCollide(t *testing.T) {
	store := NewLocalStorage(t.TempDir(), "/uploads")
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		up, err := store.Store(context.Background(), strings.NewReader("x"), "same.png")
		if err != nil {
			t.Fatalf("Store: %v", err)
		}
		if seen[up.URL] {
			t.Fatalf("duplicate url %s", up.URL)
		}
		seen[up.URL] = true
	}
}

func TestLocalStorageIgnoresForeignURLs(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.txt")
	if err := os.WriteFile(keep, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewLocalStorage(dir, "/uploads")

	for _, url := range []string{"https://res.cloudinary.com/demo/keep.txt", "", "/static/keep.txt"} {
		if store.Owns(url) {
			t.Fatalf("Owns(%q) = true", url)
		}
		if err := store.Remove(url); err != nil {
			t.Fatalf("Remove(%q): %v", url, err)
		}
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("foreign url removed a local file: %v", err)
	}
}

func TestLocalStorageCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocalStorage(t.TempDir(), "").Store(ctx, strings.NewReader("x"), "a.png")
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}

type fakeCloudinary struct {
	folder string
	result *uploader.UploadResult
	err    error
}

func (f *fakeCloudinary) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.folder = params.Folder
	return f.result, f.err
}

func TestCloudinaryUploaderStore(t *testing.T) {
	fake := &fakeCloudinary{result: &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/hotel-rooms/abc.jpg"}}
	u := &CloudinaryUploader{api: fake, folder: "hotel-rooms"}

	up, err := u.Store(context.Background(), strings.NewReader("x"), "abc.jpg")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if up.URL != fake.result.SecureURL {
		t.Fatalf("url = %q", up.URL)
	}
	if fake.folder != "hotel-rooms" {
		t.Fatalf("folder = %q", fake.folder)
	}
}

func TestCloudinaryUploaderFailures(t *testing.T) {
	cases := map[string]*fakeCloudinary{
		"transport":   {err: errors.New("connection reset")},
		"api error":   {result: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid api_key"}}},
		"missing url": {result: &uploader.UploadResult{}},
	}
	for name, fake := range cases {
		t.Run(name, func(t *testing.T) {
			u := &CloudinaryUploader{api: fake, folder: "hotel-rooms"}
			if _, err := u.Store(context.Background(), strings.NewReader("x"), "a.jpg"); !errors.Is(err, ErrUploadFailed) {
				t.Fatalf("expected ErrUploadFailed, got %v", err)
			}
		})
	}
}
