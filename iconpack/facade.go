package iconpack

// Package-level facade over a process-wide manager. The GUI, the websocket
// API and the script engine all talk to the same registry through these.

import "sync"

var (
	defaultMu      sync.RWMutex
	defaultManager *Manager
)

// Initialize creates the process-wide manager rooted at dir.
func Initialize(dir string) error {
	m, err := NewManager(dir)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defaultManager = m
	defaultMu.Unlock()
	return nil
}

// Default returns the process-wide manager, or nil before Initialize.
func Default() *Manager {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultManager
}

// GetAllIconPacks returns every registered pack in creation order.
func GetAllIconPacks() []*Pack {
	if m := Default(); m != nil {
		return m.All()
	}
	return nil
}

// DoesIconPackExist reports whether a pack with the given name is registered.
func DoesIconPackExist(name string) bool {
	if m := Default(); m != nil {
		return m.Exists(name)
	}
	return false
}

// CreateCustomIconPackDirectory creates the backing directory for a new pack.
func CreateCustomIconPackDirectory(name string) error {
	return Default().CreatePackDir(name)
}

// CreateFile persists icon content into a pack's directory.
func CreateFile(pack, file string, content []byte) error {
	return Default().CreateFile(pack, file, content)
}

// AddIconToIconPack registers icon content into the in-memory pack.
func AddIconToIconPack(pack, file string, content []byte) {
	if m := Default(); m != nil {
		m.AddIcon(pack, file, content)
	}
}

// RemoveIconFromIconPack unregisters an icon and deletes its file.
func RemoveIconFromIconPack(pack, file string) error {
	return Default().RemoveIcon(pack, file)
}

// DeleteIconPack removes a pack's backing storage and registry entry.
func DeleteIconPack(name string) error {
	return Default().DeletePack(name)
}

// GetFilesInIconPackDirectory lists the SVG files inside a pack's directory.
func GetFilesInIconPackDirectory(name string) ([]string, error) {
	return Default().ListPackFiles(name)
}

// ReadIconFile reads raw content for a path from GetFilesInIconPackDirectory.
func ReadIconFile(path string) ([]byte, error) {
	return Default().ReadIconFile(path)
}
