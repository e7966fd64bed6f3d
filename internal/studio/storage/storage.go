package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ============================================================
// Logo Storage
// ============================================================

// LogoStorage хранит загруженные пользователями изображения логотипов.
type LogoStorage struct {
	root string
}

func NewLogoStorage(root string) *LogoStorage {
	return &LogoStorage{root: root}
}

// Dir возвращает корневую папку логотипов.
func (s *LogoStorage) Dir() string {
	return s.root
}

// Path возвращает путь файла по имени.
func (s *LogoStorage) Path(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}

// Save кладёт изображение под уникальным именем и возвращает ref
// для LogoElement.
func (s *LogoStorage) Save(originalName string, data []byte) (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("mkdir logo dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	if err := os.WriteFile(s.Path(name), data, 0o644); err != nil {
		return "", fmt.Errorf("save logo: %w", err)
	}
	return "upload:" + name, nil
}

// AllowedExt проверяет расширение изображения.
func AllowedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".svg", ".webp":
		return true
	}
	return false
}
