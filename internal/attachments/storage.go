package attachments

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
}

// fileTypeFor classifies an upload by extension. Unsupported extensions
// return an empty string and the file is skipped.
func fileTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case imageExtensions[ext]:
		return "image"
	case videoExtensions[ext]:
		return "video"
	default:
		return ""
	}
}

// diskStore writes uploads beneath a base directory, one subdirectory per
// file type.
type diskStore struct {
	baseDir string
}

func (d diskStore) Save(header *multipart.FileHeader, fileType string) (string, string, error) {
	dir := filepath.Join(d.baseDir, fileType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}

	fileName := uuid.NewString() + "_" + sanitizeFileName(header.Filename)
	path := filepath.Join(dir, fileName)

	src, err := header.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("write file: %w", err)
	}
	return fileName, path, nil
}

// SaveImage stores a single image upload under {baseDir}/image and returns
// the generated file name and path. Non-image extensions are rejected.
func SaveImage(baseDir string, header *multipart.FileHeader) (string, string, error) {
	if header == nil || header.Size == 0 {
		return "", "", fmt.Errorf("file is empty")
	}
	if fileTypeFor(header.Filename) != "image" {
		return "", "", fmt.Errorf("unsupported image extension %q", filepath.Ext(header.Filename))
	}
	return diskStore{baseDir: baseDir}.Save(header, "image")
}

func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
