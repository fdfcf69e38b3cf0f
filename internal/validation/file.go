package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	// MimePrefix is the family the sniffed content type must belong to.
	MimePrefix string
	// Extensions maps each accepted extension to the content type it must carry.
	Extensions map[string]string
	MaxSize    int64
}

// ImageConstraints accepts any image format the content sniffer recognizes.
var ImageConstraints = FileConstraints{
	MimePrefix: "image/",
	Extensions: map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".bmp":  "image/bmp",
		".ico":  "image/x-icon",
	},
	MaxSize: 5 << 20, // 5MB
}

// ValidateFile checks an upload against the constraints and returns the sniffed
// MIME type. Every rejection wraps ErrUploadRejected.
func ValidateFile(header *multipart.FileHeader, constraints FileConstraints) (string, error) {
	// Check file size first (before reading content)
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return "", fmt.Errorf("%w: file too large, maximum size is %d MB", ErrUploadRejected, maxMB)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// http.DetectContentType reads max 512 bytes to determine MIME type
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Magic numbers, not the client's Content-Type header
	detectedType := http.DetectContentType(buffer[:n])
	if !strings.HasPrefix(detectedType, constraints.MimePrefix) {
		return "", fmt.Errorf("%w: only image files are allowed (detected: %s)", ErrUploadRejected, detectedType)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if constraints.Extensions[ext] != detectedType {
		return "", fmt.Errorf("%w: file extension %q does not match %s content", ErrUploadRejected, ext, detectedType)
	}

	return detectedType, nil
}
