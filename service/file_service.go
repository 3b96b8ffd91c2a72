package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileService accepts an uploaded manual, stores it and indexes it.
type FileService struct {
	uploadDir string
	indexer   *IndexingService
}

func NewFileService(uploadDir string, indexer *IndexingService) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileService{
		uploadDir: uploadDir,
		indexer:   indexer,
	}, nil
}

// SaveAndIndex writes the uploaded file to the upload directory and runs the
// indexing job over it.
func (s *FileService) SaveAndIndex(ctx context.Context, file *multipart.FileHeader, title string) (*IndexSummary, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if title == "" {
		title = strings.TrimSuffix(file.Filename, ext)
	}
	filename := sanitizeFileName(fmt.Sprintf("%s_%d%s", title, time.Now().Unix(), ext))
	savedPath := filepath.Join(s.uploadDir, filename)

	dst, err := os.Create(savedPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	return s.indexer.Run(ctx, savedPath)
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}
