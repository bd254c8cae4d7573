package app

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	text "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Enhanced UI Colors matching the pack settings panel style
var EnhancedUIColors = struct {
	Background      color.RGBA
	ModalBackground color.RGBA
	Surface         color.RGBA
	Primary         color.RGBA
	Text            color.RGBA
	TextSecondary   color.RGBA
	Border          color.RGBA
	BorderActive    color.RGBA
	Button          color.RGBA
	ButtonRed       color.RGBA
	ButtonHover     color.RGBA
	ButtonActive    color.RGBA
}{
	Background:      color.RGBA{0, 0, 0, 150},
	ModalBackground: color.RGBA{30, 30, 45, 255},
	Surface:         color.RGBA{40, 40, 50, 255},
	Primary:         color.RGBA{100, 100, 255, 180},
	Text:            color.RGBA{255, 255, 255, 255},
	TextSecondary:   color.RGBA{200, 200, 200, 255},
	Border:          color.RGBA{80, 80, 90, 255},
	BorderActive:    color.RGBA{100, 150, 255, 255},
	Button:          color.RGBA{60, 120, 60, 255},
	ButtonRed:       color.RGBA{180, 60, 60, 255},
	ButtonHover:     color.RGBA{80, 160, 80, 255},
	ButtonActive:    color.RGBA{50, 100, 50, 255},
}

// EnhancedModal represents a modal with dark overlay background
type EnhancedModal struct {
	Title         string
	X, Y          int
	Width, Height int
	visible       bool
	font          font.Face
	animPhase     float64
	animSpeed     float64
	animating     bool
}

// NewEnhancedModal creates a new enhanced modal
func NewEnhancedModal(title string, width, height int) *EnhancedModal {
	screenW, screenH := ebiten.WindowSize()
	return &EnhancedModal{
		Title:     title,
		X:         (screenW - width) / 2,
		Y:         (screenH - height) / 2,
		Width:     width,
		Height:    height,
		font:      loadFont(18),
		animSpeed: 8.0,
	}
}

// Show displays the modal with animation
func (m *EnhancedModal) Show() {
	m.visible = true
	m.animating = true
	m.animPhase = 0

	// Recenter in case the window was resized
	screenW, screenH := ebiten.WindowSize()
	m.X = (screenW - m.Width) / 2
	m.Y = (screenH - m.Height) / 2
}

// Hide hides the modal
func (m *EnhancedModal) Hide() {
	m.visible = false
	m.animating = false
	m.animPhase = 0
}

// IsVisible returns whether the modal is visible
func (m *EnhancedModal) IsVisible() bool {
	return m.visible
}

// GetBounds returns the modal bounds as a rectangle
func (m *EnhancedModal) GetBounds() image.Rectangle {
	return image.Rect(m.X, m.Y, m.X+m.Width, m.Y+m.Height)
}

// Contains checks if a point is inside the modal
func (m *EnhancedModal) Contains(x, y int) bool {
	if !m.visible {
		return false
	}
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// Update advances the open animation
func (m *EnhancedModal) Update() {
	if m.animating && m.visible {
		m.animPhase += m.animSpeed / 60.0
		if m.animPhase >= 1.0 {
			m.animPhase = 1.0
			m.animating = false
		}
	}
}

// Draw renders the modal
func (m *EnhancedModal) Draw(screen *ebiten.Image) {
	if !m.visible {
		return
	}

	m.Update()

	screenBounds := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(screenBounds.Dx()), float32(screenBounds.Dy()),
		EnhancedUIColors.Background, false)

	scale := float32(0.8 + 0.2*m.animPhase)
	alpha := uint8(255 * m.animPhase)

	centerX := float32(m.X + m.Width/2)
	centerY := float32(m.Y + m.Height/2)
	scaledWidth := float32(m.Width) * scale
	scaledHeight := float32(m.Height) * scale
	scaledX := centerX - scaledWidth/2
	scaledY := centerY - scaledHeight/2

	modalColor := EnhancedUIColors.ModalBackground
	modalColor.A = alpha
	vector.DrawFilledRect(screen, scaledX, scaledY, scaledWidth, scaledHeight, modalColor, false)

	borderColor := EnhancedUIColors.Primary
	borderColor.A = alpha
	vector.StrokeRect(screen, scaledX, scaledY, scaledWidth, scaledHeight, 2, borderColor, false)

	if m.animPhase > 0.8 {
		titleBarColor := EnhancedUIColors.Primary
		titleBarColor.A = alpha
		vector.DrawFilledRect(screen, scaledX, scaledY, scaledWidth, 35, titleBarColor, false)

		titleColor := EnhancedUIColors.Text
		titleColor.A = alpha
		text.Draw(screen, m.Title, m.font, int(scaledX)+15, int(scaledY)+23, titleColor)
	}
}

// GetContentArea returns the content area coordinates
func (m *EnhancedModal) GetContentArea() (int, int, int, int) {
	if !m.visible {
		return 0, 0, 0, 0
	}

	scale := float32(0.8 + 0.2*m.animPhase)
	centerX := float32(m.X + m.Width/2)
	centerY := float32(m.Y + m.Height/2)
	scaledWidth := float32(m.Width) * scale
	scaledHeight := float32(m.Height) * scale
	scaledX := centerX - scaledWidth/2
	scaledY := centerY - scaledHeight/2

	return int(scaledX) + 10, int(scaledY) + 45, int(scaledWidth) - 20, int(scaledHeight) - 55
}

// EnhancedButton represents a styled button
type EnhancedButton struct {
	Text          string
	X, Y          int
	Width, Height int
	onClick       func()
	hovered       bool
	pressed       bool
	background    color.RGBA
	hover         color.RGBA
	active        color.RGBA
	font          font.Face
}

// NewEnhancedButton creates a new enhanced button
func NewEnhancedButton(label string, x, y, width, height int, onClick func()) *EnhancedButton {
	return &EnhancedButton{
		Text:       label,
		X:          x,
		Y:          y,
		Width:      width,
		Height:     height,
		onClick:    onClick,
		background: EnhancedUIColors.Button,
		hover:      EnhancedUIColors.ButtonHover,
		active:     EnhancedUIColors.ButtonActive,
		font:       loadFont(16),
	}
}

// SetPosition moves the button
func (b *EnhancedButton) SetPosition(x, y int) {
	b.X = x
	b.Y = y
}

// SetRedButtonStyle switches the button to the destructive palette
func (b *EnhancedButton) SetRedButtonStyle() {
	b.background = EnhancedUIColors.ButtonRed
	b.hover = color.RGBA{220, 80, 80, 255}
	b.active = color.RGBA{150, 50, 50, 255}
}

// Update handles hover and click state. Returns true when clicked.
func (b *EnhancedButton) Update(mx, my int) bool {
	b.hovered = mx >= b.X && mx < b.X+b.Width && my >= b.Y && my < b.Y+b.Height

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && b.hovered {
		b.pressed = true
		return false
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && b.pressed {
		b.pressed = false
		if b.hovered {
			if b.onClick != nil {
				b.onClick()
			}
			return true
		}
	}
	return false
}

// Draw renders the button
func (b *EnhancedButton) Draw(screen *ebiten.Image) {
	bg := b.background
	if b.pressed {
		bg = b.active
	} else if b.hovered {
		bg = b.hover
	}

	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), bg, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 1, EnhancedUIColors.Border, false)

	labelWidth := text.BoundString(b.font, b.Text).Dx()
	text.Draw(screen, b.Text, b.font,
		b.X+(b.Width-labelWidth)/2,
		b.Y+b.Height/2+5,
		EnhancedUIColors.Text)
}
