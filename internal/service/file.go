package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mindsync/wellness/internal/model"
	"github.com/mindsync/wellness/internal/storage"
)

// Upload is a validated file taken off a request.
type Upload struct {
	Reader       io.Reader
	OriginalName string
	MimeType     string
	Size         int64
}

type FileService struct {
	storage storage.Storage
}

func NewFileService(storage storage.Storage) *FileService {
	return &FileService{
		storage: storage,
	}
}

// Upload stores the file under a generated name.
// Note: File validation (type, size, content) should be done by the caller before calling Upload
func (s *FileService) Upload(ctx context.Context, fileType string, upload *Upload) (*model.File, error) {
	ext := strings.ToLower(filepath.Ext(upload.OriginalName))
	filename := uuid.New().String() + ext

	storagePath := path.Join(folder(fileType), filename) // avatar -> avatars/<uuid>.png

	err := s.storage.Save(ctx, storagePath, upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &model.File{
		Type:         fileType,
		Filename:     filename,
		OriginalName: upload.OriginalName,
		MimeType:     upload.MimeType,
		Size:         upload.Size,
		StoragePath:  storagePath,
		URL:          s.storage.URL(storagePath),
	}, nil
}

// DeleteByURL removes a stored file of the given type. Addresses that point
// elsewhere, like the default avatar or an external URL, are left alone.
func (s *FileService) DeleteByURL(ctx context.Context, fileType, url string) error {
	storagePath, ok := s.storage.PathFromURL(url)
	if !ok || !strings.HasPrefix(filepath.ToSlash(storagePath), folder(fileType)+"/") {
		return nil
	}

	err := s.storage.Delete(ctx, storagePath)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", storagePath, err)
	}

	slog.Debug("deleted stored file", "path", storagePath)
	return nil
}

func folder(fileType string) string {
	return fileType + "s"
}
