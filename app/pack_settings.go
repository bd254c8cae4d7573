package app

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"iconstudio/iconpack"

	"github.com/hajimehoshi/ebiten/v2"
)

// DroppedFile is a file handed to the panel by a drag and drop gesture
// or the file picker.
type DroppedFile struct {
	Name    string
	Content []byte
}

// PackSettingsPanel is the icon pack management panel. It lists all
// registered packs, offers creation by name, and accepts icon files via
// the file picker or drag and drop onto a pack row.
type PackSettingsPanel struct {
	manager    *iconpack.Manager
	menu       *EdgeMenu
	dropZone   *DropZone
	nameInput  *MenuTextInput
	rows       map[string]*PackRow
	busy       map[string]bool
	lastAdded  map[string]string
	fileDialog *FileSystemDialogue

	notify        func(message string, kind NoticeKind)
	requestRedraw func()
	now           func() time.Time
}

// NewPackSettingsPanel builds the panel for the given registry.
func NewPackSettingsPanel(manager *iconpack.Manager) *PackSettingsPanel {
	panel := &PackSettingsPanel{
		manager:       manager,
		menu:          NewEdgeMenu("Icon Packs", DefaultEdgeMenuOptions()),
		dropZone:      &DropZone{},
		busy:          make(map[string]bool),
		lastAdded:     make(map[string]string),
		notify:        Notify,
		requestRedraw: func() {},
		now:           time.Now,
	}
	panel.rebuild()
	return panel
}

// Show slides the panel in.
func (p *PackSettingsPanel) Show() {
	p.menu.Show()
}

// Hide slides the panel out.
func (p *PackSettingsPanel) Hide() {
	p.menu.Hide()
}

// IsVisible reports whether the panel is on screen.
func (p *PackSettingsPanel) IsVisible() bool {
	return p.menu.IsVisible()
}

// Row returns the row element for a pack, if present.
func (p *PackSettingsPanel) Row(pack string) (*PackRow, bool) {
	row, ok := p.rows[pack]
	return row, ok
}

// rebuild recreates the menu elements from the current registry state.
func (p *PackSettingsPanel) rebuild() {
	p.menu.ClearElements()
	p.rows = make(map[string]*PackRow)

	inputOptions := DefaultTextInputOptions()
	inputOptions.Placeholder = "Pack name"
	p.nameInput = NewMenuTextInput("New icon pack", "", inputOptions, nil).
		OnSubmit(func(value string) { p.submitCreate(value) })
	p.menu.Element(p.nameInput)
	p.menu.Button("Add icon pack", DefaultButtonOptions(), func() {
		p.submitCreate(p.nameInput.Value())
	})
	p.menu.Spacer(10)

	for _, pack := range p.manager.All() {
		row := newPackRow(p, pack.Name, pack.Prefix, describeIcons(pack.IconCount()))
		p.rows[pack.Name] = row
		p.menu.Element(row)
	}

	p.requestRedraw()
}

// submitCreate handles the create action. Blank input is ignored, a
// duplicate normalized name aborts with a warning.
func (p *PackSettingsPanel) submitCreate(raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return
	}

	name := iconpack.NormalizeName(trimmed)
	if p.manager.Exists(name) {
		p.notify(fmt.Sprintf("Icon pack %s already exists", name), NoticeWarning)
		return
	}

	if err := p.manager.CreatePackDir(name); err != nil {
		p.notify(fmt.Sprintf("Could not create icon pack %s: %v", name, err), NoticeError)
		return
	}

	p.nameInput.Clear()
	p.rebuild()
	p.notify(fmt.Sprintf("Created icon pack %s as %s", trimmed, name), NoticeSuccess)
}

// AddIconFiles registers a batch of files into a pack, in order. Files
// that are not SVG are skipped with a warning each; one success notice
// summarizes the batch.
func (p *PackSettingsPanel) AddIconFiles(pack string, files []DroppedFile) {
	if p.busy[pack] {
		p.notify(fmt.Sprintf("Icon pack %s is busy", pack), NoticeWarning)
		return
	}
	p.busy[pack] = true
	defer delete(p.busy, pack)

	row := p.rows[pack]
	added := 0
	lastIcon := ""
	for _, file := range files {
		name := iconpack.IconNameFromPath(file.Name)
		if iconpack.MimeTypeFor(name, file.Content) != iconpack.SVGMimeType {
			p.notify(fmt.Sprintf("%s is not a SVG file", name), NoticeWarning)
			continue
		}
		if err := p.manager.CreateFile(pack, name, file.Content); err != nil {
			p.notify(fmt.Sprintf("Could not save %s: %v", name, err), NoticeError)
			continue
		}
		p.manager.AddIcon(pack, name, file.Content)
		added++
		lastIcon = name
		if row != nil {
			row.SetDescription(fmt.Sprintf("Adding %s (%d added)", name, added))
		}
	}

	if row != nil {
		if registered, ok := p.manager.Get(pack); ok {
			row.SetDescription(describeIcons(registered.IconCount()))
		}
	}

	if added > 0 {
		p.lastAdded[pack] = lastIcon
		p.notify(fmt.Sprintf("Added %s to %s", describeIcons(added), pack), NoticeSuccess)
	}

	p.requestRedraw()
}

// refreshPack rescans the pack directory and re-registers every file
// found there.
func (p *PackSettingsPanel) refreshPack(pack string) {
	if p.busy[pack] {
		p.notify(fmt.Sprintf("Icon pack %s is busy", pack), NoticeWarning)
		return
	}
	p.busy[pack] = true
	defer delete(p.busy, pack)

	row := p.rows[pack]
	if row != nil {
		row.SetDescription("Loading icons...")
	}

	files, err := p.manager.ListPackFiles(pack)
	if err != nil {
		p.notify(fmt.Sprintf("Could not refresh %s: %v", pack, err), NoticeError)
		return
	}
	for _, path := range files {
		content, err := p.manager.ReadIconFile(path)
		if err != nil {
			p.notify(fmt.Sprintf("Could not read %s: %v", path, err), NoticeError)
			continue
		}
		p.manager.AddIcon(pack, iconpack.IconNameFromPath(path), content)
	}

	if registered, ok := p.manager.Get(pack); ok {
		if row != nil {
			row.SetDescription(describeIcons(registered.IconCount()))
		}
		p.notify(fmt.Sprintf("Refreshed %s: %s", pack, describeIcons(registered.IconCount())), NoticeSuccess)
	}
	p.requestRedraw()
}

// deletePack removes the pack from disk and the registry.
func (p *PackSettingsPanel) deletePack(pack string) {
	if p.busy[pack] {
		p.notify(fmt.Sprintf("Icon pack %s is busy", pack), NoticeWarning)
		return
	}

	if err := p.manager.DeletePack(pack); err != nil {
		p.notify(fmt.Sprintf("Could not delete %s: %v", pack, err), NoticeError)
		return
	}

	p.rebuild()
	p.notify(fmt.Sprintf("Deleted icon pack %s", pack), NoticeSuccess)
}

// openAddDialog shows the file picker for the given pack.
func (p *PackSettingsPanel) openAddDialog(pack string) {
	if p.busy[pack] {
		p.notify(fmt.Sprintf("Icon pack %s is busy", pack), NoticeWarning)
		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	p.fileDialog = NewFileSystemDialogue(home, []string{".svg"}, func(paths []string) {
		p.fileDialog = nil
		if len(paths) == 0 {
			return
		}
		var files []DroppedFile
		for _, path := range paths {
			content, err := os.ReadFile(path)
			if err != nil {
				p.notify(fmt.Sprintf("Could not read %s: %v", path, err), NoticeError)
				continue
			}
			files = append(files, DroppedFile{Name: path, Content: content})
		}
		p.AddIconFiles(pack, files)
	})
	p.fileDialog.Show()
}

// HandleDroppedFiles routes files dropped onto the window to the row
// that owns the drag overlay.
func (p *PackSettingsPanel) HandleDroppedFiles(dropped fs.FS) {
	files := readDroppedFiles(dropped)
	if len(files) == 0 {
		return
	}

	target := p.dropZone.Owner()
	if target == "" {
		p.notify("Drop icons onto a pack to add them", NoticeInfo)
		return
	}
	p.dropZone.Unhighlight(target, p.now())
	p.AddIconFiles(target, files)
}

// readDroppedFiles loads every regular file from a drop payload.
func readDroppedFiles(dropped fs.FS) []DroppedFile {
	var files []DroppedFile
	err := fs.WalkDir(dropped, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := fs.ReadFile(dropped, path)
		if err != nil {
			log.Printf("[PANEL] Could not read dropped file %s: %v", path, err)
			return nil
		}
		files = append(files, DroppedFile{Name: path, Content: content})
		return nil
	})
	if err != nil {
		log.Printf("[PANEL] Drop walk failed: %v", err)
	}
	return files
}

// Update advances animations and input handling. Returns true when the
// panel consumed the input.
func (p *PackSettingsPanel) Update(screenWidth, screenHeight int, deltaTime float64) bool {
	if dropped := ebiten.DroppedFiles(); dropped != nil {
		p.HandleDroppedFiles(dropped)
	}

	p.dropZone.Tick(p.now())

	if p.fileDialog != nil {
		p.fileDialog.Update(screenWidth, screenHeight)
		return true
	}

	return p.menu.Update(screenWidth, screenHeight, deltaTime)
}

// Draw renders the panel and, if open, the file picker on top.
func (p *PackSettingsPanel) Draw(screen *ebiten.Image) {
	p.menu.Draw(screen)
	if p.fileDialog != nil {
		p.fileDialog.Draw(screen)
	}
}

func describeIcons(count int) string {
	if count == 1 {
		return "1 icon"
	}
	return fmt.Sprintf("%d icons", count)
}
