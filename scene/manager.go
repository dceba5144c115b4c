package scene

import (
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotExt is the file extension used by Manager
const SnapshotExt = ".msgpack"

// Save encodes snap with msgpack and writes it to path
func Save(path string, snap *Snapshot) error {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write snapshot %s", path)
	}
	log.Printf("scene: saved snapshot %s tick %d to %s", snap.ID, snap.Tick, path)
	return nil
}

// LoadSnapshot reads and validates a snapshot written by Save
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read snapshot %s", path)
	}

	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrapf(err, "decode snapshot %s", path)
	}
	if err := snap.Validate(); err != nil {
		return nil, errors.Wrapf(err, "snapshot %s", path)
	}
	log.Printf("scene: loaded snapshot %s tick %d from %s", snap.ID, snap.Tick, path)
	return &snap, nil
}

// Manager handles named snapshots under a base directory
type Manager struct {
	basePath string
}

// NewManager creates a manager with the given base directory
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path for a named snapshot
func (m *Manager) FilePath(name string) string {
	return filepath.Join(m.basePath, name+SnapshotExt)
}

// Exists checks if a snapshot file exists
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.FilePath(name))
	return err == nil
}

// Save writes snap under name, creating the base directory if needed
func (m *Manager) Save(name string, snap *Snapshot) error {
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return errors.Wrapf(err, "create snapshot dir %s", m.basePath)
	}
	return Save(m.FilePath(name), snap)
}

// Load reads the snapshot stored under name
func (m *Manager) Load(name string) (*Snapshot, error) {
	return LoadSnapshot(m.FilePath(name))
}

// List returns the stored snapshot names in sorted order
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "list snapshots in %s", m.basePath)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), SnapshotExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), SnapshotExt))
	}
	slices.Sort(names)
	return names, nil
}
