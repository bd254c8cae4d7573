package app

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	text "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// EdgeMenuPosition defines which screen edge the menu slides in from
type EdgeMenuPosition int

const (
	EdgeMenuRight EdgeMenuPosition = iota
	EdgeMenuLeft
)

// EdgeMenuOptions configures the edge menu
type EdgeMenuOptions struct {
	Width       int
	Height      int
	Position    EdgeMenuPosition
	Background  color.RGBA
	BorderColor color.RGBA
	Scrollable  bool
	Closable    bool
}

// DefaultEdgeMenuOptions returns default options for edge menu
func DefaultEdgeMenuOptions() EdgeMenuOptions {
	return EdgeMenuOptions{
		Width:       420,
		Height:      0, // 0 means full screen height
		Position:    EdgeMenuRight,
		Background:  color.RGBA{30, 30, 45, 240},
		BorderColor: color.RGBA{80, 80, 255, 150},
		Scrollable:  true,
		Closable:    true,
	}
}

// EdgeMenuElement represents a base interface for all menu elements
type EdgeMenuElement interface {
	Update(mx, my int, deltaTime float64) bool                      // Returns true if handled input
	Draw(screen *ebiten.Image, x, y, width int, font font.Face) int // Returns height used
	GetMinHeight() int
	IsVisible() bool
	SetVisible(visible bool)
}

// BaseMenuElement provides common functionality for menu elements
type BaseMenuElement struct {
	visible      bool
	animProgress float64
	animTarget   float64
	animSpeed    float64
}

func NewBaseMenuElement() BaseMenuElement {
	return BaseMenuElement{
		visible:      true,
		animProgress: 1.0,
		animTarget:   1.0,
		animSpeed:    8.0,
	}
}

func (b *BaseMenuElement) IsVisible() bool {
	return b.visible
}

func (b *BaseMenuElement) SetVisible(visible bool) {
	b.visible = visible
	b.animTarget = 0.0
	if visible {
		b.animTarget = 1.0
	}
}

func (b *BaseMenuElement) updateAnimation(deltaTime float64) {
	if math.Abs(b.animProgress-b.animTarget) > 0.01 {
		diff := b.animTarget - b.animProgress
		b.animProgress += diff * b.animSpeed * deltaTime
	} else {
		b.animProgress = b.animTarget
	}
}

// ButtonOptions configures button appearance and behavior
type ButtonOptions struct {
	BackgroundColor color.RGBA
	HoverColor      color.RGBA
	PressedColor    color.RGBA
	TextColor       color.RGBA
	BorderColor     color.RGBA
	BorderWidth     float32
	Height          int
	FontSize        int
	Enabled         bool
}

func DefaultButtonOptions() ButtonOptions {
	return ButtonOptions{
		BackgroundColor: color.RGBA{60, 120, 60, 255},
		HoverColor:      color.RGBA{80, 160, 80, 255},
		PressedColor:    color.RGBA{50, 100, 50, 255},
		TextColor:       color.RGBA{255, 255, 255, 255},
		BorderColor:     color.RGBA{100, 200, 100, 255},
		BorderWidth:     2.0,
		Height:          35,
		FontSize:        16,
		Enabled:         true,
	}
}

// DangerButtonOptions returns a red variant for destructive actions.
func DangerButtonOptions() ButtonOptions {
	options := DefaultButtonOptions()
	options.BackgroundColor = color.RGBA{140, 50, 50, 255}
	options.HoverColor = color.RGBA{180, 70, 70, 255}
	options.PressedColor = color.RGBA{110, 40, 40, 255}
	options.BorderColor = color.RGBA{220, 100, 100, 255}
	return options
}

// MenuButton represents a clickable button element
type MenuButton struct {
	BaseMenuElement
	text     string
	options  ButtonOptions
	callback func()
	hovered  bool
	pressed  bool
	rect     image.Rectangle
}

func NewMenuButton(text string, options ButtonOptions, callback func()) *MenuButton {
	return &MenuButton{
		BaseMenuElement: NewBaseMenuElement(),
		text:            text,
		options:         options,
		callback:        callback,
	}
}

// SetEnabled toggles whether the button accepts clicks.
func (b *MenuButton) SetEnabled(enabled bool) {
	b.options.Enabled = enabled
}

func (b *MenuButton) Update(mx, my int, deltaTime float64) bool {
	if !b.visible || !b.options.Enabled {
		return false
	}

	b.updateAnimation(deltaTime)

	oldHovered := b.hovered
	b.hovered = mx >= b.rect.Min.X && mx < b.rect.Max.X && my >= b.rect.Min.Y && my < b.rect.Max.Y

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && b.hovered {
		b.pressed = true
		return true
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && b.pressed {
		b.pressed = false
		if b.hovered && b.callback != nil {
			b.callback()
		}
		return true
	}

	return b.hovered != oldHovered
}

func (b *MenuButton) Draw(screen *ebiten.Image, x, y, width int, font font.Face) int {
	if !b.visible || b.animProgress <= 0.01 {
		return 0
	}

	height := b.options.Height
	alpha := float32(b.animProgress)

	b.rect = image.Rect(x, y, x+width, y+height)

	bgColor := b.options.BackgroundColor
	if !b.options.Enabled {
		bgColor = color.RGBA{40, 40, 60, 255}
	} else if b.pressed {
		bgColor = b.options.PressedColor
	} else if b.hovered {
		bgColor = b.options.HoverColor
	}
	bgColor.A = uint8(float32(bgColor.A) * alpha)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), bgColor, false)

	borderColor := b.options.BorderColor
	borderColor.A = uint8(float32(borderColor.A) * alpha)
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), b.options.BorderWidth, borderColor, false)

	textColor := b.options.TextColor
	if !b.options.Enabled {
		textColor = color.RGBA{150, 150, 150, 255}
	}
	textColor.A = uint8(float32(textColor.A) * alpha)

	textWidth := text.BoundString(font, b.text).Dx()
	textX := x + (width-textWidth)/2
	textY := y + height/2 + 6
	text.Draw(screen, b.text, font, textX, textY, textColor)

	return height
}

func (b *MenuButton) GetMinHeight() int {
	return b.options.Height
}

// TextOptions configures text appearance
type TextOptions struct {
	Color    color.RGBA
	FontSize int
	Centered bool
	Height   int
}

func DefaultTextOptions() TextOptions {
	return TextOptions{
		Color:    color.RGBA{255, 255, 255, 255},
		FontSize: 16,
		Centered: false,
		Height:   25,
	}
}

// MenuText represents a text display element
type MenuText struct {
	BaseMenuElement
	text    string
	options TextOptions
}

func NewMenuText(text string, options TextOptions) *MenuText {
	return &MenuText{
		BaseMenuElement: NewBaseMenuElement(),
		text:            text,
		options:         options,
	}
}

func (t *MenuText) Update(mx, my int, deltaTime float64) bool {
	t.updateAnimation(deltaTime)
	return false
}

func (t *MenuText) Draw(screen *ebiten.Image, x, y, width int, font font.Face) int {
	if !t.visible || t.animProgress <= 0.01 {
		return 0
	}

	height := t.options.Height
	alpha := float32(t.animProgress)

	textColor := t.options.Color
	textColor.A = uint8(float32(textColor.A) * alpha)

	textX := x
	if t.options.Centered {
		textWidth := text.BoundString(font, t.text).Dx()
		textX = x + (width-textWidth)/2
	}

	textY := y + height/2 + 6
	text.Draw(screen, t.text, font, textX, textY, textColor)

	return height
}

func (t *MenuText) GetMinHeight() int {
	return t.options.Height
}

// SetText updates the text content without rebuilding the element
func (t *MenuText) SetText(newText string) {
	t.text = newText
}

// GetText returns the current text content
func (t *MenuText) GetText() string {
	return t.text
}

// MenuSpacer is an empty element used for vertical spacing.
type MenuSpacer struct {
	BaseMenuElement
	height int
}

func NewMenuSpacer(height int) *MenuSpacer {
	return &MenuSpacer{BaseMenuElement: NewBaseMenuElement(), height: height}
}

func (s *MenuSpacer) Update(mx, my int, deltaTime float64) bool { return false }

func (s *MenuSpacer) Draw(screen *ebiten.Image, x, y, width int, font font.Face) int {
	if !s.visible {
		return 0
	}
	return s.height
}

func (s *MenuSpacer) GetMinHeight() int { return s.height }

// EdgeMenu is a scrollable panel anchored to a screen edge.
type EdgeMenu struct {
	title          string
	options        EdgeMenuOptions
	elements       []EdgeMenuElement
	visible        bool
	animating      bool
	animProgress   float64
	animTarget     float64
	screenWidth    int
	screenHeight   int
	scrollOffset   int
	maxScroll      int
	scrollTarget   float64
	bounds         image.Rectangle
	closeButton    image.Rectangle
	font           font.Face
	titleFont      font.Face
	contentHeight  int
	titleVisible   bool
	titleAnimating bool
	titleProgress  float64
	titleTarget    float64
}

// NewEdgeMenu creates a new edge menu with the specified title and options
func NewEdgeMenu(title string, options EdgeMenuOptions) *EdgeMenu {
	if options.Width <= 0 {
		options.Width = 420
	}

	return &EdgeMenu{
		title:         title,
		options:       options,
		elements:      make([]EdgeMenuElement, 0),
		font:          loadFont(16),
		titleFont:     loadFont(22),
		titleVisible:  true,
		titleProgress: 1.0,
		titleTarget:   1.0,
	}
}

// Button adds a button to the menu
func (m *EdgeMenu) Button(text string, options ButtonOptions, callback func()) *EdgeMenu {
	m.elements = append(m.elements, NewMenuButton(text, options, callback))
	return m
}

// Text adds text to the menu
func (m *EdgeMenu) Text(text string, options TextOptions) *EdgeMenu {
	m.elements = append(m.elements, NewMenuText(text, options))
	return m
}

// Spacer adds vertical spacing
func (m *EdgeMenu) Spacer(height int) *EdgeMenu {
	m.elements = append(m.elements, NewMenuSpacer(height))
	return m
}

// Element appends an arbitrary element to the menu
func (m *EdgeMenu) Element(element EdgeMenuElement) *EdgeMenu {
	m.elements = append(m.elements, element)
	return m
}

// ClearElements removes all elements from the menu
func (m *EdgeMenu) ClearElements() {
	m.elements = make([]EdgeMenuElement, 0)
}

// SetTitle changes the menu title
func (m *EdgeMenu) SetTitle(title string) {
	m.title = title
}

// Show makes the menu visible
func (m *EdgeMenu) Show() {
	m.visible = true
	m.animating = true
	m.animTarget = 1.0
}

// Hide conceals the menu with animation
func (m *EdgeMenu) Hide() {
	m.animTarget = 0.0
	m.animating = true
}

// IsVisible returns whether the menu is currently visible
func (m *EdgeMenu) IsVisible() bool {
	return m.visible && m.animProgress > 0.01
}

// IsMouseInside checks if the given mouse coordinates are within the menu bounds
func (m *EdgeMenu) IsMouseInside(mx, my int) bool {
	if !m.visible || m.animProgress < 0.1 {
		return false
	}
	return mx >= m.bounds.Min.X && mx <= m.bounds.Max.X &&
		my >= m.bounds.Min.Y && my <= m.bounds.Max.Y
}

// Update handles input and animations
func (m *EdgeMenu) Update(screenWidth, screenHeight int, deltaTime float64) bool {
	m.screenWidth = screenWidth
	m.screenHeight = screenHeight

	if m.animating {
		if math.Abs(m.animProgress-m.animTarget) > 0.01 {
			diff := m.animTarget - m.animProgress
			m.animProgress += diff * 8.0 * deltaTime
		} else {
			m.animProgress = m.animTarget
			m.animating = false
			if m.animProgress <= 0.01 {
				m.visible = false
			}
		}
	}

	if m.titleAnimating {
		if math.Abs(m.titleProgress-m.titleTarget) > 0.01 {
			diff := m.titleTarget - m.titleProgress
			m.titleProgress += diff * 6.0 * deltaTime
		} else {
			m.titleProgress = m.titleTarget
			m.titleAnimating = false
		}
	}

	if !m.IsVisible() {
		return false
	}

	m.calculateBounds()

	mx, my := ebiten.CursorPosition()

	if m.options.Closable && m.titleProgress > 0.5 && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if mx >= m.closeButton.Min.X && mx < m.closeButton.Max.X && my >= m.closeButton.Min.Y && my < m.closeButton.Max.Y {
			m.Hide()
			return true
		}
	}

	titleHeight := int(float64(50) * m.titleProgress)
	contentY := m.bounds.Min.Y + titleHeight
	contentHeight := m.bounds.Dy() - titleHeight

	// Let elements handle input before the menu scrolls
	handled := false
	currentY := contentY - m.scrollOffset
	for _, element := range m.elements {
		if !element.IsVisible() {
			continue
		}
		elementHeight := element.GetMinHeight()
		if currentY+elementHeight > contentY && currentY < contentY+contentHeight {
			if element.Update(mx, my, deltaTime) {
				handled = true
				break
			}
		}
		currentY += elementHeight + 10
	}

	if !handled && m.options.Scrollable && m.IsMouseInside(mx, my) {
		_, scrollY := ebiten.Wheel()
		if scrollY != 0 {
			m.scrollTarget -= scrollY * 120
			m.scrollTarget = math.Max(0, math.Min(float64(m.maxScroll), m.scrollTarget))
			handled = true
		}
	}

	// Smooth scroll toward the target
	if math.Abs(float64(m.scrollOffset)-m.scrollTarget) > 0.1 {
		diff := m.scrollTarget - float64(m.scrollOffset)
		m.scrollOffset += int(diff * 8.0 * deltaTime)
		m.scrollOffset = int(math.Max(0, math.Min(float64(m.maxScroll), float64(m.scrollOffset))))
	}

	// Title collapses while scrolled away from the top
	if m.scrollOffset == 0 {
		if !m.titleVisible {
			m.titleVisible = true
			m.titleTarget = 1.0
			m.titleAnimating = true
		}
	} else if m.titleVisible {
		m.titleVisible = false
		m.titleTarget = 0.0
		m.titleAnimating = true
	}

	// Consume clicks inside the menu so they do not reach the background
	if m.IsMouseInside(mx, my) {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
			inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			return true
		}
	}

	return handled
}

func (m *EdgeMenu) calculateBounds() {
	width := m.options.Width
	height := m.options.Height
	if height <= 0 {
		height = m.screenHeight
	}

	animatedWidth := int(float64(width) * m.animProgress)
	switch m.options.Position {
	case EdgeMenuLeft:
		m.bounds = image.Rect(0, 0, animatedWidth, height)
	default:
		m.bounds = image.Rect(m.screenWidth-animatedWidth, 0, m.screenWidth, height)
	}

	m.closeButton = image.Rect(m.bounds.Max.X-40, m.bounds.Min.Y+10, m.bounds.Max.X-10, m.bounds.Min.Y+40)
}

// Draw renders the menu and its elements
func (m *EdgeMenu) Draw(screen *ebiten.Image) {
	if !m.IsVisible() {
		return
	}

	m.calculateBounds()

	vector.DrawFilledRect(screen,
		float32(m.bounds.Min.X), float32(m.bounds.Min.Y),
		float32(m.bounds.Dx()), float32(m.bounds.Dy()),
		m.options.Background, false)
	vector.StrokeRect(screen,
		float32(m.bounds.Min.X), float32(m.bounds.Min.Y),
		float32(m.bounds.Dx()), float32(m.bounds.Dy()),
		2, m.options.BorderColor, false)

	titleHeight := int(float64(50) * m.titleProgress)
	if titleHeight > 4 {
		titleAlpha := uint8(255 * m.titleProgress)
		titleColor := color.RGBA{255, 255, 255, titleAlpha}
		text.Draw(screen, m.title, m.titleFont, m.bounds.Min.X+20, m.bounds.Min.Y+32, titleColor)

		if m.options.Closable {
			closeColor := color.RGBA{220, 80, 80, titleAlpha}
			vector.DrawFilledRect(screen,
				float32(m.closeButton.Min.X), float32(m.closeButton.Min.Y),
				float32(m.closeButton.Dx()), float32(m.closeButton.Dy()),
				closeColor, false)
			xWidth := text.BoundString(m.font, "x").Dx()
			text.Draw(screen, "x", m.font,
				m.closeButton.Min.X+(m.closeButton.Dx()-xWidth)/2,
				m.closeButton.Min.Y+20,
				color.RGBA{255, 255, 255, titleAlpha})
		}
	}

	contentY := m.bounds.Min.Y + titleHeight
	contentHeight := m.bounds.Dy() - titleHeight
	contentX := m.bounds.Min.X + 20
	contentWidth := m.bounds.Dx() - 40

	currentY := contentY - m.scrollOffset
	totalHeight := 0
	for _, element := range m.elements {
		if !element.IsVisible() {
			continue
		}
		elementHeight := element.GetMinHeight()
		if currentY+elementHeight > contentY && currentY < contentY+contentHeight {
			element.Draw(screen, contentX, currentY, contentWidth, m.font)
		}
		currentY += elementHeight + 10
		totalHeight += elementHeight + 10
	}

	m.contentHeight = totalHeight
	m.maxScroll = totalHeight - contentHeight
	if m.maxScroll < 0 {
		m.maxScroll = 0
	}
}
