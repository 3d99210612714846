package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ImageService stores uploaded images under BaseDir and hands back the
// relative path kept in the DB (e.g. "rooms/xxx.jpg").
type ImageService struct {
	BaseDir string
	Log     *logrus.Logger
}

func NewImageService(baseDir string, log *logrus.Logger) *ImageService {
	if baseDir == "" {
		baseDir = "uploads"
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ImageService{BaseDir: baseDir, Log: log}
}

func (s *ImageService) SaveBase64Image(b64 string, subdir string) (string, error) {
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		b64 = b64[idx+7:]
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	dir := filepath.Join(s.BaseDir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	filename := uuid.NewString() + ".jpg"
	fullpath := filepath.Join(dir, filename)

	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	// เก็บลง DB เป็น "rooms/xxx.jpg"
	return filepath.ToSlash(filepath.Join(subdir, filename)), nil
}

// DeleteImage removes a stored file. Missing files are not an error; other
// failures are logged and swallowed so cleanup never blocks the caller.
func (s *ImageService) DeleteImage(relPath string) {
	if strings.TrimSpace(relPath) == "" {
		return
	}
	full := filepath.Join(s.BaseDir, filepath.FromSlash(relPath))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.Log.WithError(err).WithField("path", relPath).Warn("failed to delete image")
	}
}
