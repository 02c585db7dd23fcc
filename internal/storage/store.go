// Package storage persists the tracker as a records CSV and a budget YAML file.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fintrack-dev/fintrack/internal/budget"
	"github.com/fintrack-dev/fintrack/internal/tracker"
)

// Store reads and writes one tracker's data files.
type Store struct {
	recordsPath     string
	budgetPath      string
	caseInsensitive bool
}

// NewStore creates a Store for the given files.
func NewStore(recordsPath, budgetPath string, caseInsensitive bool) *Store {
	return &Store{
		recordsPath:     recordsPath,
		budgetPath:      budgetPath,
		caseInsensitive: caseInsensitive,
	}
}

// Load reads both files. Missing files load as an empty tracker.
func (s *Store) Load() (*tracker.State, error) {
	ledger, err := s.loadLedger()
	if err != nil {
		return nil, err
	}
	state := tracker.NewWithLedger(ledger)

	f, err := os.Open(s.recordsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening records %s: %w", s.recordsPath, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading records %s: %w", s.recordsPath, err)
	}
	for _, r := range records {
		state.Add(r)
	}
	return state, nil
}

func (s *Store) loadLedger() (*budget.Ledger, error) {
	f, err := os.Open(s.budgetPath)
	if errors.Is(err, fs.ErrNotExist) {
		return budget.NewLedger(s.caseInsensitive), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening budget %s: %w", s.budgetPath, err)
	}
	defer f.Close()

	l, err := ReadLedger(f, s.caseInsensitive)
	if err != nil {
		return nil, fmt.Errorf("reading budget %s: %w", s.budgetPath, err)
	}
	return l, nil
}

// Save writes both files, replacing each one atomically.
func (s *Store) Save(state *tracker.State) error {
	var records bytes.Buffer
	if err := WriteRecords(&records, state.Records()); err != nil {
		return err
	}
	var ledger bytes.Buffer
	if err := WriteLedger(&ledger, state.Ledger()); err != nil {
		return err
	}

	if err := writeFileAtomic(s.recordsPath, records.Bytes()); err != nil {
		return fmt.Errorf("saving records: %w", err)
	}
	if err := writeFileAtomic(s.budgetPath, ledger.Bytes()); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
