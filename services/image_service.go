package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage prefixes for uploaded files, relative to the uploads root.
const (
	RoomCoverDir   = "rooms"
	RoomGalleryDir = "rooms/gallery"
	GalleryDir     = "gallery"
	AvatarDir      = "avatars"
)

const uploadsRoot = "uploads"

// SaveUploadedFile copies the uploaded file under uploads/<subdir> and
// returns the relative storage path (e.g. "rooms/gallery/xxx.jpg") that
// gets persisted to the DB.
func SaveUploadedFile(file *multipart.FileHeader, subdir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(uploadsRoot, filepath.FromSlash(subdir))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := uuid.NewString() + ext
	fullpath := filepath.Join(dir, filename)

	dst, err := os.Create(fullpath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	// stored in DB as "rooms/gallery/xxx.jpg"
	return filepath.ToSlash(filepath.Join(subdir, filename)), nil
}

// AbsoluteURL resolves a stored path into a URL. With a request available
// the URL is absolute (scheme + host); without one the uploads path is
// returned as-is so callers still get something renderable.
func AbsoluteURL(r *http.Request, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	rel := "/" + uploadsRoot + "/" + strings.TrimPrefix(path, "/")
	if r == nil {
		return rel
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, rel)
}
