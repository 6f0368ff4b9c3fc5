package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tiendafacil/server/internal/models"
)

// ErrNotFound se devuelve cuando la clave no tiene blob guardado
var ErrNotFound = errors.New("blob no encontrado")

// BlobStore es el almacén de objetos del catálogo: un JSON por tenant,
// reemplazo atómico en cada importación.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// PostgresBlobStore implementa BlobStore sobre una tabla de blobs con upsert
type PostgresBlobStore struct {
	db *gorm.DB
}

func NewPostgresBlobStore(db *gorm.DB) *PostgresBlobStore {
	return &PostgresBlobStore{db: db}
}

func (s *PostgresBlobStore) Put(ctx context.Context, key string, data []byte) error {
	blob := models.CatalogBlob{
		Key:       key,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("error guardando blob %s: %w", key, err)
	}
	return nil
}

func (s *PostgresBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob models.CatalogBlob
	err := s.db.WithContext(ctx).First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error leyendo blob %s: %w", key, err)
	}
	return blob.Data, nil
}

func (s *PostgresBlobStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&models.CatalogBlob{}, "key = ?", key).Error
}
