package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tiendafacil/server/internal/storage"
)

// memBlobStore es un BlobStore en memoria para los tests
type memBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (m *memBlobStore) Put(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

func (m *memBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (m *memBlobStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

type avisoCapturado struct {
	tenantID string
	imported int
}

type notifierFake struct {
	avisos []avisoCapturado
}

func (n *notifierFake) NotifyCatalogUpdated(tenantID string, imported int) {
	n.avisos = append(n.avisos, avisoCapturado{tenantID: tenantID, imported: imported})
}

const csvPrueba = "Descripción;Precio;Desde\n" +
	"Leche Entera;350;15/01/2024\n" +
	"Leche Entera;340;15/01/2024\n" +
	"Azúcar Rubia;1.200,50;20/01/2024\n"

func TestImportFileReemplazaElCatalogo(t *testing.T) {
	blobs := newMemBlobStore()
	svc := NewCatalogService(blobs, nil, nil, 0)
	notifier := &notifierFake{}
	svc.SetNotifier(notifier)

	ctx := context.Background()
	snapshot, skipped, err := svc.ImportFile(ctx, "tenant-1", []byte(csvPrueba), "precios.csv")
	if err != nil {
		t.Fatalf("ImportFile devolvió error: %v", err)
	}

	// Tres filas aceptadas, dos "Leche Entera" reducidas a una
	if snapshot.RowCount != 3 {
		t.Errorf("RowCount = %d, se esperaban 3 filas", snapshot.RowCount)
	}
	if skipped != 0 {
		t.Errorf("Skipped = %d, se esperaba 0", skipped)
	}
	if len(snapshot.Items) != 2 {
		t.Fatalf("se esperaban 2 productos reducidos, hay %d", len(snapshot.Items))
	}

	// Empate de fecha: queda el precio más bajo
	for _, item := range snapshot.Items {
		if item.Name == "Leche Entera" && item.Price != 340 {
			t.Errorf("en empate de fecha debería quedar 340, quedó %v", item.Price)
		}
	}

	if len(notifier.avisos) != 1 || notifier.avisos[0].imported != 2 {
		t.Errorf("el aviso de catálogo actualizado no llegó: %+v", notifier.avisos)
	}

	// El snapshot se relee desde el blob persistido
	leido, err := svc.GetSnapshot(ctx, "tenant-1")
	if err != nil {
		t.Fatalf("GetSnapshot devolvió error: %v", err)
	}
	if leido.RowCount != 3 || len(leido.Items) != 2 {
		t.Errorf("el snapshot persistido no coincide: %+v", leido)
	}
	if leido.SourceMode != "local-upload" {
		t.Errorf("SourceMode = %q, se esperaba \"local-upload\"", leido.SourceMode)
	}
}

func TestGetSnapshotSinCatalogo(t *testing.T) {
	svc := NewCatalogService(newMemBlobStore(), nil, nil, 0)

	_, err := svc.GetSnapshot(context.Background(), "tenant-sin-catalogo")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("se esperaba ErrNotFound, se obtuvo %v", err)
	}
}

func TestSearchInsensibleAAcentos(t *testing.T) {
	svc := NewCatalogService(newMemBlobStore(), nil, nil, 0)
	ctx := context.Background()
	if _, _, err := svc.ImportFile(ctx, "tenant-1", []byte(csvPrueba), "precios.csv"); err != nil {
		t.Fatal(err)
	}

	items, err := svc.Search(ctx, "tenant-1", "azucar")
	if err != nil {
		t.Fatalf("Search devolvió error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Azúcar Rubia" {
		t.Errorf("la búsqueda sin acentos debería encontrar \"Azúcar Rubia\": %+v", items)
	}

	todos, err := svc.Search(ctx, "tenant-1", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if len(todos) != 2 {
		t.Errorf("la búsqueda vacía devuelve todo el catálogo, hay %d", len(todos))
	}
}

func TestImportFileAisladoPorComercio(t *testing.T) {
	svc := NewCatalogService(newMemBlobStore(), nil, nil, 0)
	ctx := context.Background()

	if _, _, err := svc.ImportFile(ctx, "tenant-a", []byte(csvPrueba), "precios.csv"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetSnapshot(ctx, "tenant-b"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("el catálogo de un comercio no debe verse desde otro: %v", err)
	}
}
