// Package backup implements export and restore of the whole in-memory
// dataset as a zip archive holding a single versioned data.json document.
package backup

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/adapter/repository/memory"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/customer"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/installment"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/product"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/setting"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/user"
	"github.com/google/uuid"
)

// SchemaVersion is the current backup format version. Bump on any
// incompatible change to the Archive layout.
const SchemaVersion = 1

// dataFileName is the single JSON document inside the zip archive
const dataFileName = "data.json"

var (
	ErrUnsupportedSchema = errors.New("unsupported backup schema version")
	ErrMissingDataFile   = errors.New("backup archive does not contain data.json")
)

// Archive is the serialized form of the dataset
type Archive struct {
	SchemaVersion int                    `json:"schema_version"`
	ExportedAt    time.Time              `json:"exported_at"`
	Customers     []*customer.Customer   `json:"customers"`
	Products      []*product.Product     `json:"products"`
	Invoices      []*invoice.Invoice     `json:"invoices"`
	Plans         []*installment.Plan    `json:"installment_plans"`
	Payments      []*installment.Payment `json:"installment_payments"`
	Users         []*user.User           `json:"users"`
	Settings      []*setting.Setting     `json:"settings"`
}

// Service exports and restores the in-memory store
type Service struct {
	store *memory.Store
}

// NewService creates a backup Service over the given store
func NewService(store *memory.Store) *Service {
	return &Service{store: store}
}

// Export writes a zip archive of the current dataset to w
func (s *Service) Export(w io.Writer) error {
	ds := s.store.Snapshot()

	archive := Archive{
		SchemaVersion: SchemaVersion,
		ExportedAt:    time.Now(),
		Customers:     ds.Customers,
		Products:      ds.Products,
		Invoices:      ds.Invoices,
		Plans:         ds.Plans,
		Payments:      ds.Payments,
		Users:         ds.Users,
		Settings:      ds.Settings,
	}

	payload, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup payload: %w", err)
	}

	zw := zip.NewWriter(w)
	f, err := zw.Create(dataFileName)
	if err != nil {
		return fmt.Errorf("failed to create archive entry: %w", err)
	}
	if _, err := f.Write(payload); err != nil {
		return fmt.Errorf("failed to write archive entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}

	return nil
}

// ExportToFile writes the archive into dir under a unique name and returns
// the full path
func (s *Service) ExportToFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("backup-%s-%s.zip", time.Now().Format("20060102-150405"), uuid.New().String()[:8])
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if err := s.Export(f); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Import replaces the whole dataset with the contents of a zip archive.
// The payload is fully decoded and validated before the store is touched;
// on any error the previous dataset stays intact.
func (s *Service) Import(r io.ReaderAt, size int64) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("failed to open backup archive: %w", err)
	}

	var dataFile *zip.File
	for _, f := range zr.File {
		if f.Name == dataFileName {
			dataFile = f
			break
		}
	}
	if dataFile == nil {
		return ErrMissingDataFile
	}

	rc, err := dataFile.Open()
	if err != nil {
		return fmt.Errorf("failed to open data.json: %w", err)
	}
	defer rc.Close()

	var archive Archive
	if err := json.NewDecoder(rc).Decode(&archive); err != nil {
		return fmt.Errorf("failed to decode backup payload: %w", err)
	}

	if archive.SchemaVersion != SchemaVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrUnsupportedSchema, archive.SchemaVersion, SchemaVersion)
	}

	s.store.Replace(&memory.Dataset{
		Customers: archive.Customers,
		Products:  archive.Products,
		Invoices:  archive.Invoices,
		Plans:     archive.Plans,
		Payments:  archive.Payments,
		Users:     archive.Users,
		Settings:  archive.Settings,
	})
	return nil
}

// ImportFile restores the dataset from a zip archive on disk
func (s *Service) ImportFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat backup file: %w", err)
	}

	return s.Import(f, info.Size())
}
