package iconpack

// In-memory registry of icon packs mirrored onto a packs directory on disk.
// Each pack is a directory of SVG files; the registry keeps icon content in
// insertion order so editors consuming a pack see a stable ordering.

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Icon is a single registered icon inside a pack.
type Icon struct {
	Name    string
	Content []byte
}

// Pack is a named collection of SVG icons plus a short prefix identifier.
// Pack pointers escape the manager via All and Get and may be read from the
// websocket and script goroutines, so the icon registry carries its own lock.
type Pack struct {
	Name   string
	Prefix string

	mu    sync.RWMutex
	icons []Icon
	index map[string]int
}

// Icons returns the registered icons in registration order.
func (p *Pack) Icons() []Icon {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Icon, len(p.icons))
	copy(out, p.icons)
	return out
}

// IconCount returns the number of registered icons.
func (p *Pack) IconCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.icons)
}

// Icon returns the content of a registered icon by name.
func (p *Pack) Icon(name string) ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return p.icons[i].Content, true
}

// register adds or replaces an icon and returns the resulting icon count.
func (p *Pack) register(name string, content []byte) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i, ok := p.index[name]; ok {
		// Re-registering replaces in place so a resync stays idempotent.
		p.icons[i].Content = content
		return len(p.icons)
	}
	p.index[name] = len(p.icons)
	p.icons = append(p.icons, Icon{Name: name, Content: content})
	return len(p.icons)
}

// unregister removes an icon by name, reporting whether it was present and
// the resulting icon count.
func (p *Pack) unregister(name string) (bool, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, ok := p.index[name]
	if !ok {
		return false, len(p.icons)
	}
	p.icons = append(p.icons[:i], p.icons[i+1:]...)
	delete(p.index, name)
	for j := i; j < len(p.icons); j++ {
		p.index[p.icons[j].Name] = j
	}
	return true, len(p.icons)
}

// Manager owns the packs root directory and the in-memory registry.
type Manager struct {
	mu     sync.RWMutex
	root   string
	packs  []*Pack
	byName map[string]*Pack

	subscribers []chan PackEvent
	onChange    func(PackEvent)
}

// NewManager creates a manager rooted at dir and scans existing pack
// directories into the registry.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create packs directory: %w", err)
	}

	m := &Manager{
		root:   dir,
		byName: make(map[string]*Pack),
	}

	if err := m.scan(); err != nil {
		return nil, err
	}

	log.Printf("[ICONPACK] Bootstrap complete. Loaded %d packs from %s", len(m.packs), dir)
	return m, nil
}

// Root returns the packs root directory.
func (m *Manager) Root() string {
	return m.root
}

// scan loads every pack directory under the root into the registry.
func (m *Manager) scan() error {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return fmt.Errorf("failed to read packs directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		pack := m.newPackLocked(name)
		files, err := listSVGFiles(filepath.Join(m.root, name))
		if err != nil {
			log.Printf("[ICONPACK] Skipping unreadable pack %s: %v", name, err)
			continue
		}
		for _, path := range files {
			content, err := os.ReadFile(path)
			if err != nil {
				log.Printf("[ICONPACK] Skipping unreadable icon %s: %v", path, err)
				continue
			}
			pack.register(IconNameFromPath(path), content)
		}
	}
	return nil
}

// newPackLocked creates and records a pack; callers hold the write lock or
// run before the manager is shared.
func (m *Manager) newPackLocked(name string) *Pack {
	taken := make(map[string]bool, len(m.packs))
	for _, p := range m.packs {
		taken[p.Prefix] = true
	}
	pack := &Pack{
		Name:   name,
		Prefix: DerivePrefix(name, taken),
		index:  make(map[string]int),
	}
	m.packs = append(m.packs, pack)
	m.byName[name] = pack
	return pack
}

// All returns every pack in creation order.
func (m *Manager) All() []*Pack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Pack, len(m.packs))
	copy(out, m.packs)
	return out
}

// Get returns a pack by name.
func (m *Manager) Get(name string) (*Pack, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.byName[name]
	return p, ok
}

// Exists reports whether a pack with the given name is registered.
func (m *Manager) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byName[name]
	return ok
}

// ErrPackExists is returned when creating a pack whose name is already taken.
var ErrPackExists = fmt.Errorf("icon pack already exists")

// CreatePackDir creates the backing directory for a new pack and registers it.
// The name is expected to be normalized already.
func (m *Manager) CreatePackDir(name string) error {
	m.mu.Lock()
	if _, ok := m.byName[name]; ok {
		m.mu.Unlock()
		return ErrPackExists
	}
	if err := os.MkdirAll(filepath.Join(m.root, name), 0o755); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to create pack directory: %w", err)
	}
	m.newPackLocked(name)
	m.mu.Unlock()

	m.emit(PackEvent{Kind: PackCreated, Pack: name})
	return nil
}

// CreateFile persists icon content into the pack's directory on disk.
func (m *Manager) CreateFile(pack, file string, content []byte) error {
	m.mu.RLock()
	_, ok := m.byName[pack]
	root := m.root
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown icon pack %q", pack)
	}
	return os.WriteFile(filepath.Join(root, pack, file), content, 0o644)
}

// AddIcon registers icon content into the in-memory pack. Registering an
// existing name replaces its content.
func (m *Manager) AddIcon(pack, file string, content []byte) {
	m.mu.Lock()
	p, ok := m.byName[pack]
	if !ok {
		m.mu.Unlock()
		log.Printf("[ICONPACK] AddIcon: unknown pack %q", pack)
		return
	}
	m.mu.Unlock()

	count := p.register(file, content)
	m.emit(PackEvent{Kind: IconAdded, Pack: pack, Icon: file, Icons: count})
}

// RemoveIcon removes an icon from the registry and deletes its backing file.
func (m *Manager) RemoveIcon(pack, file string) error {
	m.mu.Lock()
	p, ok := m.byName[pack]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("unknown icon pack %q", pack)
	}
	root := m.root
	m.mu.Unlock()

	removed, count := p.unregister(file)
	if !removed {
		return fmt.Errorf("icon %q not registered in pack %q", file, pack)
	}
	if err := os.Remove(filepath.Join(root, pack, file)); err != nil && !os.IsNotExist(err) {
		return err
	}
	m.emit(PackEvent{Kind: IconRemoved, Pack: pack, Icon: file, Icons: count})
	return nil
}

// DeletePack removes a pack's backing storage and drops it from the registry.
func (m *Manager) DeletePack(name string) error {
	m.mu.Lock()
	p, ok := m.byName[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("unknown icon pack %q", name)
	}
	if err := os.RemoveAll(filepath.Join(m.root, name)); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to delete pack directory: %w", err)
	}
	delete(m.byName, name)
	for i, q := range m.packs {
		if q == p {
			m.packs = append(m.packs[:i], m.packs[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.emit(PackEvent{Kind: PackDeleted, Pack: name})
	return nil
}

// ListPackFiles returns the SVG file paths inside a pack's directory,
// sorted by name.
func (m *Manager) ListPackFiles(name string) ([]string, error) {
	m.mu.RLock()
	_, ok := m.byName[name]
	root := m.root
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown icon pack %q", name)
	}
	return listSVGFiles(filepath.Join(root, name))
}

// ReadIconFile reads raw content for a path returned by ListPackFiles.
func (m *Manager) ReadIconFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func listSVGFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".svg" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
