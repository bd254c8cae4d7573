package app

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// NoticeKind selects the accent colour of a toast.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

func (k NoticeKind) border() color.RGBA {
	switch k {
	case NoticeSuccess:
		return color.RGBA{80, 200, 120, 255}
	case NoticeWarning:
		return color.RGBA{230, 180, 60, 255}
	case NoticeError:
		return color.RGBA{220, 80, 80, 255}
	default:
		return color.RGBA{70, 130, 255, 255}
	}
}

// ToastButton is a clickable button inside a toast.
type ToastButton struct {
	Text    string
	OnClick func()
	X, Y    int
	Width   int
	Height  int
	Colour  color.RGBA
}

// Toast is a single stacked notification.
type Toast struct {
	ID          string
	Lines       []string
	Buttons     []ToastButton
	AutoCloseAt *time.Time
	CreatedAt   time.Time
	X, Y        int
	Width       int
	Height      int
	Background  color.RGBA
	Border      color.RGBA
}

// ToastBuilder provides a fluent interface for building toasts
type ToastBuilder struct {
	toast *Toast
	text  string
}

// ToastManager owns all active toasts and stacks them in the
// top-right corner of the window.
type ToastManager struct {
	toasts    []*Toast
	nextID    int
	maxToasts int
	margin    int
}

var globalToastManager *ToastManager

// NewToast starts building a toast notification.
func NewToast() *ToastBuilder {
	return &ToastBuilder{
		toast: &Toast{
			ID:         generateToastID(),
			CreatedAt:  time.Now(),
			Background: color.RGBA{40, 40, 50, 240},
			Border:     NoticeInfo.border(),
		},
	}
}

// Text sets the toast message. Long messages wrap to the toast width.
func (tb *ToastBuilder) Text(text string) *ToastBuilder {
	tb.text = text
	return tb
}

// Kind sets the accent colour.
func (tb *ToastBuilder) Kind(kind NoticeKind) *ToastBuilder {
	tb.toast.Border = kind.border()
	return tb
}

// Button adds a button below the message.
func (tb *ToastBuilder) Button(text string, onClick func()) *ToastBuilder {
	tb.toast.Buttons = append(tb.toast.Buttons, ToastButton{
		Text:    text,
		OnClick: onClick,
		Width:   100,
		Height:  25,
	})
	return tb
}

// AutoClose dismisses the toast after the given duration.
func (tb *ToastBuilder) AutoClose(duration time.Duration) *ToastBuilder {
	closeTime := time.Now().Add(duration)
	tb.toast.AutoCloseAt = &closeTime
	return tb
}

// Show hands the toast to the global manager.
func (tb *ToastBuilder) Show() {
	if globalToastManager == nil {
		InitToastManager()
	}
	tb.calculateLayout()
	globalToastManager.AddToast(tb.toast)
}

// Notify is the one-line path for the common case.
func Notify(message string, kind NoticeKind) {
	NewToast().Text(message).Kind(kind).AutoClose(5 * time.Second).Show()
}

func (tb *ToastBuilder) calculateLayout() {
	face := loadFont(16)

	padding := 15
	lineHeight := 20
	buttonSpacing := 10
	closeButtonSize := 20

	maxTextWidth := 400

	tb.toast.Lines = wrapText(tb.text, face, maxTextWidth-padding*2-closeButtonSize-10)

	width := 0
	for _, line := range tb.toast.Lines {
		bounds := text.BoundString(face, line)
		if bounds.Dx() > width {
			width = bounds.Dx()
		}
	}
	width += padding*2 + closeButtonSize + 10
	if width < 250 {
		width = 250
	}

	currentY := padding + len(tb.toast.Lines)*lineHeight

	if len(tb.toast.Buttons) > 0 {
		currentY += buttonSpacing
		buttonX := padding
		for i := range tb.toast.Buttons {
			button := &tb.toast.Buttons[i]
			button.X = buttonX
			button.Y = currentY
			buttonX += button.Width + buttonSpacing
		}
		currentY += 25 + buttonSpacing
	}

	tb.toast.Width = width
	tb.toast.Height = currentY + padding

	// Close button in the top-right corner
	closeID := tb.toast.ID
	tb.toast.Buttons = append(tb.toast.Buttons, ToastButton{
		Text:    "x",
		OnClick: func() { GetToastManager().RemoveToast(closeID) },
		X:       width - closeButtonSize - 5,
		Y:       5,
		Width:   closeButtonSize,
		Height:  closeButtonSize,
		Colour:  color.RGBA{180, 60, 60, 255},
	})
}

func generateToastID() string {
	if globalToastManager == nil {
		return "toast_0"
	}
	id := globalToastManager.nextID
	globalToastManager.nextID++
	return fmt.Sprintf("toast_%d", id)
}

// InitToastManager initializes the global toast manager
func InitToastManager() {
	if globalToastManager != nil {
		return
	}
	globalToastManager = &ToastManager{
		maxToasts: 5,
		margin:    15,
	}
}

// GetToastManager returns the global toast manager
func GetToastManager() *ToastManager {
	if globalToastManager == nil {
		InitToastManager()
	}
	return globalToastManager
}

// AddToast adds a toast, evicting the oldest one past the stack limit.
func (tm *ToastManager) AddToast(toast *Toast) {
	if len(tm.toasts) >= tm.maxToasts {
		tm.toasts = tm.toasts[1:]
	}
	tm.toasts = append(tm.toasts, toast)
	tm.repositionToasts()
}

// Update expires old toasts and handles button clicks.
func (tm *ToastManager) Update() {
	now := time.Now()
	mx, my := ebiten.CursorPosition()

	var activeToasts []*Toast
	for _, toast := range tm.toasts {
		if toast.AutoCloseAt != nil && now.After(*toast.AutoCloseAt) {
			continue
		}
		activeToasts = append(activeToasts, toast)
	}
	tm.toasts = activeToasts

	tm.repositionToasts()

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	for _, toast := range tm.toasts {
		for _, button := range toast.Buttons {
			if mx >= toast.X+button.X && mx <= toast.X+button.X+button.Width &&
				my >= toast.Y+button.Y && my <= toast.Y+button.Y+button.Height {
				if button.OnClick != nil {
					button.OnClick()
				}
				return
			}
		}
	}
}

func (tm *ToastManager) repositionToasts() {
	screenW, _ := ebiten.WindowSize()
	if screenW == 0 {
		screenW = 1280
	}

	y := tm.margin
	for _, toast := range tm.toasts {
		toast.X = screenW - toast.Width - tm.margin
		toast.Y = y
		y += toast.Height + tm.margin
	}
}

// Draw renders all active toasts.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	face := loadFont(16)
	for _, toast := range tm.toasts {
		tm.drawToast(screen, toast, face)
	}
}

func (tm *ToastManager) drawToast(screen *ebiten.Image, toast *Toast, face font.Face) {
	vector.DrawFilledRect(screen,
		float32(toast.X), float32(toast.Y),
		float32(toast.Width), float32(toast.Height),
		toast.Background, false)
	vector.StrokeRect(screen,
		float32(toast.X), float32(toast.Y),
		float32(toast.Width), float32(toast.Height),
		2, toast.Border, false)

	lineHeight := 20
	for i, line := range toast.Lines {
		text.Draw(screen, line, face,
			toast.X+15,
			toast.Y+15+(i+1)*lineHeight-5,
			color.RGBA{255, 255, 255, 255})
	}

	mx, my := ebiten.CursorPosition()
	for _, button := range toast.Buttons {
		buttonX := toast.X + button.X
		buttonY := toast.Y + button.Y

		buttonColor := button.Colour
		if buttonColor.A == 0 {
			buttonColor = color.RGBA{70, 130, 255, 255}
		}
		hovered := mx >= buttonX && mx <= buttonX+button.Width &&
			my >= buttonY && my <= buttonY+button.Height
		if hovered {
			buttonColor.R = min(255, buttonColor.R+30)
			buttonColor.G = min(255, buttonColor.G+30)
			buttonColor.B = min(255, buttonColor.B+30)
		}

		vector.DrawFilledRect(screen,
			float32(buttonX), float32(buttonY),
			float32(button.Width), float32(button.Height),
			buttonColor, false)
		vector.StrokeRect(screen,
			float32(buttonX), float32(buttonY),
			float32(button.Width), float32(button.Height),
			1, color.RGBA{255, 255, 255, 100}, false)

		textBounds := text.BoundString(face, button.Text)
		textX := buttonX + (button.Width-textBounds.Dx())/2
		textY := buttonY + (button.Height-textBounds.Dy())/2 + textBounds.Dy()
		text.Draw(screen, button.Text, face, textX, textY, color.RGBA{255, 255, 255, 255})
	}
}

// RemoveToast removes a toast by ID
func (tm *ToastManager) RemoveToast(id string) {
	for i, toast := range tm.toasts {
		if toast.ID == id {
			tm.toasts = append(tm.toasts[:i], tm.toasts[i+1:]...)
			tm.repositionToasts()
			return
		}
	}
}

// Clear removes all toasts
func (tm *ToastManager) Clear() {
	tm.toasts = nil
}

// wrapText wraps text to fit maxWidth, respecting explicit newlines.
func wrapText(textStr string, face font.Face, maxWidth int) []string {
	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		if paragraph == "" {
			lines = append(lines, "")
			continue
		}
		bounds := text.BoundString(face, paragraph)
		if bounds.Dx() <= maxWidth {
			lines = append(lines, paragraph)
			continue
		}
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		currentLine := words[0]
		for i := 1; i < len(words); i++ {
			testLine := currentLine + " " + words[i]
			if text.BoundString(face, testLine).Dx() <= maxWidth {
				currentLine = testLine
			} else {
				lines = append(lines, currentLine)
				currentLine = words[i]
			}
		}
		if currentLine != "" {
			lines = append(lines, currentLine)
		}
	}
	return lines
}
