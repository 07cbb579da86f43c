package service

import (
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const baseDir = "media"

func InArray[T comparable](val T, array []T) bool {
	for _, v := range array {
		if val == v {
			return true
		}
	}
	return false
}

// FileRef is the opaque reference handed back by the store. The vendor
// record keeps it as raw JSON and never interprets its shape.
type FileRef struct {
	URL        string    `json:"url"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Uploader stores raw uploads and returns an opaque reference to them.
// The local-disk implementation below is the default; a remote object
// store can be dropped in behind the same contract.
type Uploader interface {
	Upload(file *multipart.FileHeader, folder string) (json.RawMessage, error)
}

type DiskUploader struct {
	BaseURL string
}

func NewDiskUploader(baseURL string) *DiskUploader {
	return &DiskUploader{BaseURL: baseURL}
}

// Upload writes the file under media/<folder> and returns its reference.
func (u *DiskUploader) Upload(file *multipart.FileHeader, folder string) (json.RawMessage, error) {
	if file == nil {
		return nil, nil
	}

	expectedContentType := []string{
		"image/jpeg",
		"image/png",
	}

	incomeContentType := file.Header.Get("Content-Type")
	if !InArray(incomeContentType, expectedContentType) {
		return nil, errors.Errorf("invalid file type, expected: %v, got: %s", expectedContentType, incomeContentType)
	}

	targetPath := filepath.Join(baseDir, folder)
	if _, err := os.Stat(targetPath); errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(targetPath, os.ModePerm); err != nil {
			return nil, err
		}
	}

	path := filepath.Join(targetPath, time.Now().Format(time.RFC3339)+"-"+file.Filename)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Println("file upload src.Close() error:", closeErr)
		}
	}()

	out, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			log.Println("file upload out.Close() error:", closeErr)
		}
	}()

	size, err := io.Copy(out, src)
	if err != nil {
		return nil, err
	}

	ref := FileRef{
		URL:        u.BaseURL + "/" + filepath.ToSlash(path),
		Path:       path,
		Size:       size,
		UploadedAt: time.Now(),
	}

	return json.Marshal(ref)
}
