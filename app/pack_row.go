package app

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	text "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const packRowHeight = 95

// PackRow is one icon pack entry in the settings panel. It shows the pack
// name, prefix and icon count, carries the action buttons, and doubles as
// the drop target for dragged files.
type PackRow struct {
	BaseMenuElement
	panel    *PackSettingsPanel
	packName string
	prefix   string
	desc     string

	hovered     bool
	rect        image.Rectangle
	addRect     image.Rectangle
	refreshRect image.Rectangle
	deleteRect  image.Rectangle
}

func newPackRow(panel *PackSettingsPanel, packName, prefix, desc string) *PackRow {
	return &PackRow{
		BaseMenuElement: NewBaseMenuElement(),
		panel:           panel,
		packName:        packName,
		prefix:          prefix,
		desc:            desc,
	}
}

// SetDescription replaces the status line under the pack name.
func (r *PackRow) SetDescription(desc string) {
	r.desc = desc
}

// Description returns the current status line.
func (r *PackRow) Description() string {
	return r.desc
}

func (r *PackRow) Update(mx, my int, deltaTime float64) bool {
	if !r.visible {
		return false
	}

	r.updateAnimation(deltaTime)

	wasHovered := r.hovered
	r.hovered = mx >= r.rect.Min.X && mx < r.rect.Max.X && my >= r.rect.Min.Y && my < r.rect.Max.Y

	now := time.Now()
	if r.hovered && !wasHovered {
		r.panel.dropZone.Highlight(r.packName, now)
	} else if !r.hovered && wasHovered {
		r.panel.dropZone.Unhighlight(r.packName, now)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case pointIn(r.addRect, mx, my):
			r.panel.openAddDialog(r.packName)
			return true
		case pointIn(r.refreshRect, mx, my):
			r.panel.refreshPack(r.packName)
			return true
		case pointIn(r.deleteRect, mx, my):
			r.panel.deletePack(r.packName)
			return true
		case r.hovered:
			// Clicking the row body copies a reference for the most
			// recently added icon, or a template when none was added yet
			icon := r.panel.lastAdded[r.packName]
			if icon == "" {
				icon = "name"
			}
			if err := CopyIconReference(r.prefix, icon); err == nil {
				r.panel.notify(fmt.Sprintf("Copied icon reference for %s", r.packName), NoticeInfo)
			}
			return true
		}
	}

	return r.hovered != wasHovered
}

func (r *PackRow) Draw(screen *ebiten.Image, x, y, width int, face font.Face) int {
	if !r.visible || r.animProgress <= 0.01 {
		return 0
	}

	alpha := float32(r.animProgress)
	r.rect = image.Rect(x, y, x+width, y+packRowHeight)

	bgColor := color.RGBA{40, 40, 55, 220}
	if r.hovered {
		bgColor = color.RGBA{50, 50, 70, 220}
	}
	bgColor.A = uint8(float32(bgColor.A) * alpha)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), packRowHeight, bgColor, false)

	nameColor := color.RGBA{255, 255, 255, uint8(float32(255) * alpha)}
	text.Draw(screen, fmt.Sprintf("%s (%s)", r.packName, r.prefix), face, x+10, y+22, nameColor)

	descColor := color.RGBA{170, 170, 180, uint8(float32(255) * alpha)}
	text.Draw(screen, r.desc, face, x+10, y+44, descColor)

	// Action buttons
	buttonY := y + packRowHeight - 33
	r.addRect = image.Rect(x+10, buttonY, x+110, buttonY+25)
	r.refreshRect = image.Rect(x+120, buttonY, x+200, buttonY+25)
	r.deleteRect = image.Rect(x+210, buttonY, x+280, buttonY+25)

	mx, my := ebiten.CursorPosition()
	r.drawButton(screen, face, r.addRect, "Add icons", color.RGBA{60, 120, 60, 255}, mx, my, alpha)
	r.drawButton(screen, face, r.refreshRect, "Refresh", color.RGBA{60, 90, 140, 255}, mx, my, alpha)
	r.drawButton(screen, face, r.deleteRect, "Delete", color.RGBA{140, 50, 50, 255}, mx, my, alpha)

	// Drag-over overlay
	if r.panel.dropZone.Owner() == r.packName {
		overlay := color.RGBA{70, 130, 255, 60}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), packRowHeight, overlay, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(width), packRowHeight, 2, color.RGBA{70, 130, 255, 200}, false)
		hint := "Drop icons here"
		hintWidth := text.BoundString(face, hint).Dx()
		text.Draw(screen, hint, face, x+(width-hintWidth)/2, y+packRowHeight/2+6, color.RGBA{200, 220, 255, 255})
	}

	return packRowHeight
}

func (r *PackRow) drawButton(screen *ebiten.Image, face font.Face, rect image.Rectangle, label string, bg color.RGBA, mx, my int, alpha float32) {
	if pointIn(rect, mx, my) {
		bg.R = min(255, bg.R+30)
		bg.G = min(255, bg.G+30)
		bg.B = min(255, bg.B+30)
	}
	bg.A = uint8(float32(bg.A) * alpha)
	vector.DrawFilledRect(screen, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)
	vector.StrokeRect(screen, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), 1, color.RGBA{255, 255, 255, uint8(100 * alpha)}, false)

	labelWidth := text.BoundString(face, label).Dx()
	text.Draw(screen, label, face,
		rect.Min.X+(rect.Dx()-labelWidth)/2,
		rect.Min.Y+rect.Dy()/2+5,
		color.RGBA{255, 255, 255, uint8(float32(255) * alpha)})
}

func (r *PackRow) GetMinHeight() int {
	return packRowHeight
}

func pointIn(rect image.Rectangle, x, y int) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
