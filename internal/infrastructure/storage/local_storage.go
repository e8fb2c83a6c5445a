package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/azenterprise-api/internal/application/ports"
)

var _ ports.DocumentStorage = (*LocalStorage)(nil)

// LocalStorage guarda los archivos bajo un directorio que el servidor HTTP
// expone como estático (ver router: /uploads).
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage crea el directorio si no existe.
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir directorio raíz de los archivos.
func (s *LocalStorage) Dir() string { return s.dir }

// Delete borra el archivo de key; si no existe no hace nada.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	key = strings.TrimPrefix(filepath.ToSlash(key), "/")
	if key == "" || !filepath.IsLocal(key) {
		return fmt.Errorf("storage: key inválida %q", key)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: borrar %s: %w", key, err)
	}
	return nil
}

// Put escribe el archivo de forma atómica (temporal + rename).
// Las keys con ".." o absolutas se rechazan.
func (s *LocalStorage) Put(ctx context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	key = strings.TrimPrefix(filepath.ToSlash(key), "/")
	if key == "" || !filepath.IsLocal(key) {
		return "", fmt.Errorf("storage: key inválida %q", key)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("storage: crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("storage: escribir %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("storage: cerrar %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("storage: mover %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
