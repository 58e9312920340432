package snapshotstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	kozahub "github.com/monarch-initiative/kozahub-dashboard"
)

// Store persists the snapshot artifact as a single JSON document. Save is
// atomic: the document lands in a temp file first and is renamed over the
// previous artifact, so a reader never observes a partial document.
type Store struct {
	Location string
}

func (s *Store) Save(snapshot *kozahub.Snapshot) error {
	dir := filepath.Dir(s.Location)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("can't create, %v", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("can't create, %v", err)
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		tmp.Close()
		return fmt.Errorf("can't encode, %v", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("can't save, %v", err)
	}
	if err := os.Rename(tmp.Name(), s.Location); err != nil {
		return fmt.Errorf("can't save, %v", err)
	}
	return nil
}

func (s *Store) Load() (*kozahub.Snapshot, error) {
	raw, err := os.ReadFile(s.Location)
	if err != nil {
		return nil, fmt.Errorf("can't open, %v", err)
	}
	snapshot := &kozahub.Snapshot{}
	if err := json.Unmarshal(raw, snapshot); err != nil {
		return nil, fmt.Errorf("can't parse, %v", err)
	}
	return snapshot, nil
}
