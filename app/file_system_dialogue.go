package app

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	text "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FileItem is a single directory entry shown in the picker.
type FileItem struct {
	Name      string
	Path      string
	IsDir     bool
	Size      int64
	Extension string
	Selected  bool
}

// FileSystemDialogue is an in-window file picker. Files matching the
// allowed extensions can be toggled into a multi-selection; directories
// navigate on click.
type FileSystemDialogue struct {
	currentPath string
	allowedExts []string
	files       []FileItem
	onConfirm   func(paths []string)

	visible      bool
	scrollOffset int
	bounds       image.Rectangle
	listBounds   image.Rectangle
	confirmRect  image.Rectangle
	cancelRect   image.Rectangle
	rowHeight    int
}

// NewFileSystemDialogue creates a picker rooted at startPath. onConfirm
// receives the selected paths, or nil when the dialog is cancelled.
func NewFileSystemDialogue(startPath string, allowedExts []string, onConfirm func(paths []string)) *FileSystemDialogue {
	fsd := &FileSystemDialogue{
		allowedExts: allowedExts,
		onConfirm:   onConfirm,
		rowHeight:   26,
	}
	fsd.loadDirectory(startPath)
	return fsd
}

// Show makes the dialog visible.
func (fsd *FileSystemDialogue) Show() {
	fsd.visible = true
}

// IsVisible reports whether the dialog is on screen.
func (fsd *FileSystemDialogue) IsVisible() bool {
	return fsd.visible
}

// SelectedPaths returns the currently toggled file paths in list order.
func (fsd *FileSystemDialogue) SelectedPaths() []string {
	var paths []string
	for _, file := range fsd.files {
		if file.Selected {
			paths = append(paths, file.Path)
		}
	}
	return paths
}

func (fsd *FileSystemDialogue) loadDirectory(path string) {
	cleanPath, err := filepath.Abs(path)
	if err != nil {
		return
	}
	if info, err := os.Stat(cleanPath); err != nil || !info.IsDir() {
		return
	}
	entries, err := os.ReadDir(cleanPath)
	if err != nil {
		return
	}

	fsd.files = make([]FileItem, 0, len(entries)+1)

	if parent := filepath.Dir(cleanPath); parent != cleanPath {
		fsd.files = append(fsd.files, FileItem{
			Name:  "..",
			Path:  parent,
			IsDir: true,
		})
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !entry.IsDir() && !fsd.extensionAllowed(ext) {
			continue
		}
		fsd.files = append(fsd.files, FileItem{
			Name:      entry.Name(),
			Path:      filepath.Join(cleanPath, entry.Name()),
			IsDir:     entry.IsDir(),
			Size:      info.Size(),
			Extension: ext,
		})
	}

	// Directories first, then by name
	sort.Slice(fsd.files, func(i, j int) bool {
		if fsd.files[i].IsDir != fsd.files[j].IsDir {
			return fsd.files[i].IsDir
		}
		return strings.ToLower(fsd.files[i].Name) < strings.ToLower(fsd.files[j].Name)
	})

	fsd.currentPath = cleanPath
	fsd.scrollOffset = 0
}

func (fsd *FileSystemDialogue) extensionAllowed(ext string) bool {
	if len(fsd.allowedExts) == 0 {
		return true
	}
	for _, allowed := range fsd.allowedExts {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

// Update handles input. Returns true while the dialog is open.
func (fsd *FileSystemDialogue) Update(screenWidth, screenHeight int) bool {
	if !fsd.visible {
		return false
	}

	fsd.calculateBounds(screenWidth, screenHeight)

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		fsd.close(nil)
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		fsd.close(fsd.SelectedPaths())
		return true
	}

	mx, my := ebiten.CursorPosition()

	if _, scrollY := ebiten.Wheel(); scrollY != 0 && pointIn(fsd.listBounds, mx, my) {
		fsd.scrollOffset -= int(scrollY * 3)
		fsd.clampScrollOffset()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case pointIn(fsd.confirmRect, mx, my):
			fsd.close(fsd.SelectedPaths())
		case pointIn(fsd.cancelRect, mx, my):
			fsd.close(nil)
		case pointIn(fsd.listBounds, mx, my):
			index := fsd.scrollOffset + (my-fsd.listBounds.Min.Y)/fsd.rowHeight
			if index >= 0 && index < len(fsd.files) {
				item := &fsd.files[index]
				if item.IsDir {
					fsd.loadDirectory(item.Path)
				} else {
					item.Selected = !item.Selected
				}
			}
		}
	}

	return true
}

func (fsd *FileSystemDialogue) close(paths []string) {
	fsd.visible = false
	if fsd.onConfirm != nil {
		fsd.onConfirm(paths)
	}
}

func (fsd *FileSystemDialogue) clampScrollOffset() {
	maxOffset := len(fsd.files) - fsd.visibleRows()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if fsd.scrollOffset > maxOffset {
		fsd.scrollOffset = maxOffset
	}
	if fsd.scrollOffset < 0 {
		fsd.scrollOffset = 0
	}
}

func (fsd *FileSystemDialogue) visibleRows() int {
	if fsd.rowHeight == 0 {
		return 0
	}
	return fsd.listBounds.Dy() / fsd.rowHeight
}

func (fsd *FileSystemDialogue) calculateBounds(screenWidth, screenHeight int) {
	width := 560
	height := 440
	x := (screenWidth - width) / 2
	y := (screenHeight - height) / 2
	fsd.bounds = image.Rect(x, y, x+width, y+height)
	fsd.listBounds = image.Rect(x+15, y+70, x+width-15, y+height-60)
	fsd.confirmRect = image.Rect(x+width-250, y+height-45, x+width-130, y+height-15)
	fsd.cancelRect = image.Rect(x+width-115, y+height-45, x+width-15, y+height-15)
}

// Draw renders the dialog centered on screen.
func (fsd *FileSystemDialogue) Draw(screen *ebiten.Image) {
	if !fsd.visible {
		return
	}

	face := loadFont(16)
	bounds := fsd.bounds

	// Dim the background
	screenBounds := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(screenBounds.Dx()), float32(screenBounds.Dy()), color.RGBA{0, 0, 0, 120}, false)

	vector.DrawFilledRect(screen,
		float32(bounds.Min.X), float32(bounds.Min.Y),
		float32(bounds.Dx()), float32(bounds.Dy()),
		color.RGBA{30, 30, 45, 250}, false)
	vector.StrokeRect(screen,
		float32(bounds.Min.X), float32(bounds.Min.Y),
		float32(bounds.Dx()), float32(bounds.Dy()),
		2, color.RGBA{80, 80, 255, 150}, false)

	text.Draw(screen, "Select icon files", face, bounds.Min.X+15, bounds.Min.Y+28, color.RGBA{255, 255, 255, 255})
	text.Draw(screen, fsd.currentPath, face, bounds.Min.X+15, bounds.Min.Y+52, color.RGBA{160, 160, 180, 255})

	mx, my := ebiten.CursorPosition()

	rows := fsd.visibleRows()
	for i := 0; i < rows; i++ {
		index := fsd.scrollOffset + i
		if index >= len(fsd.files) {
			break
		}
		item := fsd.files[index]
		rowY := fsd.listBounds.Min.Y + i*fsd.rowHeight
		rowRect := image.Rect(fsd.listBounds.Min.X, rowY, fsd.listBounds.Max.X, rowY+fsd.rowHeight)

		if item.Selected {
			vector.DrawFilledRect(screen,
				float32(rowRect.Min.X), float32(rowRect.Min.Y),
				float32(rowRect.Dx()), float32(rowRect.Dy()),
				color.RGBA{70, 130, 255, 90}, false)
		} else if pointIn(rowRect, mx, my) {
			vector.DrawFilledRect(screen,
				float32(rowRect.Min.X), float32(rowRect.Min.Y),
				float32(rowRect.Dx()), float32(rowRect.Dy()),
				color.RGBA{60, 60, 80, 120}, false)
		}

		label := item.Name
		itemColor := color.RGBA{255, 255, 255, 255}
		if item.IsDir {
			label += "/"
			itemColor = color.RGBA{140, 180, 255, 255}
		}
		text.Draw(screen, label, face, rowRect.Min.X+8, rowY+fsd.rowHeight-8, itemColor)

		if !item.IsDir {
			sizeLabel := formatFileSize(item.Size)
			sizeWidth := text.BoundString(face, sizeLabel).Dx()
			text.Draw(screen, sizeLabel, face, rowRect.Max.X-sizeWidth-8, rowY+fsd.rowHeight-8, color.RGBA{150, 150, 160, 255})
		}
	}

	selected := len(fsd.SelectedPaths())
	status := fmt.Sprintf("%d selected", selected)
	text.Draw(screen, status, face, bounds.Min.X+15, bounds.Max.Y-24, color.RGBA{170, 170, 180, 255})

	fsd.drawButton(screen, fsd.confirmRect, "Add selected", color.RGBA{60, 120, 60, 255}, mx, my)
	fsd.drawButton(screen, fsd.cancelRect, "Cancel", color.RGBA{90, 90, 110, 255}, mx, my)
}

func (fsd *FileSystemDialogue) drawButton(screen *ebiten.Image, rect image.Rectangle, label string, bg color.RGBA, mx, my int) {
	face := loadFont(16)
	if pointIn(rect, mx, my) {
		bg.R = min(255, bg.R+30)
		bg.G = min(255, bg.G+30)
		bg.B = min(255, bg.B+30)
	}
	vector.DrawFilledRect(screen, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)
	vector.StrokeRect(screen, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), 1, color.RGBA{255, 255, 255, 100}, false)
	labelWidth := text.BoundString(face, label).Dx()
	text.Draw(screen, label, face,
		rect.Min.X+(rect.Dx()-labelWidth)/2,
		rect.Min.Y+rect.Dy()/2+5,
		color.RGBA{255, 255, 255, 255})
}

func formatFileSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
