// Package storage сохраняет фотографии записок.
// Единственная реализация — локальный диск: файлы раздаются тем же
// сервисом по PHOTO_BASE_URL. Интерфейс хранилища объявлен на стороне
// потребителя (commitment.PhotoStore), здесь только реализация.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Disk сохраняет фотографии в локальную директорию.
type Disk struct {
	dir     string // Корневая директория с фото
	baseURL string // Префикс публичного URL
}

// NewDisk создаёт дисковое хранилище и гарантирует наличие директории.
func NewDisk(dir, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию фото: %w", err)
	}
	log.WithField("dir", dir).Info("Хранилище фотографий готово")
	return &Disk{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save записывает фото и возвращает его публичный URL.
// Имя файла генерируется заново (UUID) — клиентское имя не используется
// как путь, от него берётся только расширение.
func (d *Disk) Save(ctx context.Context, userID int64, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".heic":
		// известные форматы фото
	default:
		ext = ".jpg"
	}

	name := fmt.Sprintf("%d_%s%s", userID, uuid.NewString(), ext)
	path := filepath.Join(d.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("не удалось записать фото: %w", err)
	}

	return d.baseURL + "/" + name, nil
}

// Dir возвращает корневую директорию (для отдачи файлов HTTP-сервером).
func (d *Disk) Dir() string {
	return d.dir
}
