package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
)

var keyRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// FileKV keeps every entry in its own JSON file under dir.
type FileKV struct {
	dir    string
	logger *zap.Logger
}

func NewFileKV(dir string, logger *zap.Logger) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ошибка создания каталога хранилища %s: %w", dir, err)
	}
	return &FileKV{dir: dir, logger: logger}, nil
}

func (f *FileKV) path(key string) (string, error) {
	if !keyRegex.MatchString(key) {
		return "", fmt.Errorf("недопустимый ключ %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения %s: %w", path, err)
	}
	return data, nil
}

// Set writes through a temporary file and renames it so readers never see a partial entry.
func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("ошибка записи %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ошибка записи %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("ошибка сохранения %s: %w", path, err)
	}

	f.logger.Debug("запись сохранена", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}
