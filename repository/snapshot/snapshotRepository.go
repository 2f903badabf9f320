// Package snapshot persists the fleet state as three JSON files under
// a data directory. Entities round-trip through their plain field
// projections; derived values are recomputed, never stored.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"carrental/model"
)

const (
	vehiclesFile  = "vehicles.json"
	customersFile = "customers.json"
	rentalsFile   = "rentals.json"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func writeFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readFile loads JSON into out. A missing file is not an error; the
// collection just starts empty.
func readFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("snapshot: read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("snapshot: decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// SaveAll writes the full state. Collections are written one by one;
// the first failure aborts.
func (s *Store) SaveAll(vehicles []*model.Vehicle, customers []*model.Customer, rentals []*model.Rental) error {
	if err := writeFile(s.path(vehiclesFile), vehicles); err != nil {
		return err
	}
	if err := writeFile(s.path(customersFile), customers); err != nil {
		return err
	}
	return writeFile(s.path(rentalsFile), rentals)
}

// LoadAll reads the full state back. Missing files yield empty
// collections so a fresh data dir works out of the box.
func (s *Store) LoadAll() ([]*model.Vehicle, []*model.Customer, []*model.Rental, error) {
	var vehicles []*model.Vehicle
	if err := readFile(s.path(vehiclesFile), &vehicles); err != nil {
		return nil, nil, nil, err
	}
	var customers []*model.Customer
	if err := readFile(s.path(customersFile), &customers); err != nil {
		return nil, nil, nil, err
	}
	var rentals []*model.Rental
	if err := readFile(s.path(rentalsFile), &rentals); err != nil {
		return nil, nil, nil, err
	}
	return vehicles, customers, rentals, nil
}

// Exists reports whether any snapshot file is present.
func (s *Store) Exists() bool {
	for _, name := range []string{vehiclesFile, customersFile, rentalsFile} {
		if _, err := os.Stat(s.path(name)); err == nil {
			return true
		}
	}
	return false
}
