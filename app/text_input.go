package app

import (
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	text "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// TextInputOptions configures text input appearance and behavior
type TextInputOptions struct {
	Width            int
	Height           int
	MaxLength        int
	Placeholder      string
	BackgroundColor  color.RGBA
	BorderColor      color.RGBA
	FocusColor       color.RGBA
	TextColor        color.RGBA
	PlaceholderColor color.RGBA
	FontSize         int
}

func DefaultTextInputOptions() TextInputOptions {
	return TextInputOptions{
		Width:            250,
		Height:           25,
		MaxLength:        100,
		BackgroundColor:  color.RGBA{40, 40, 50, 255},
		BorderColor:      color.RGBA{100, 100, 100, 255},
		FocusColor:       color.RGBA{100, 150, 255, 255},
		TextColor:        color.RGBA{255, 255, 255, 255},
		PlaceholderColor: color.RGBA{120, 120, 120, 255},
		FontSize:         16,
	}
}

// MenuTextInput represents a single line text input field element
type MenuTextInput struct {
	BaseMenuElement
	label      string
	value      string
	options    TextInputOptions
	onChange   func(value string)
	onSubmit   func(value string)
	focused    bool
	cursorPos  int
	blinkTimer time.Time
	rect       image.Rectangle
}

func NewMenuTextInput(label string, initialValue string, options TextInputOptions, onChange func(string)) *MenuTextInput {
	return &MenuTextInput{
		BaseMenuElement: NewBaseMenuElement(),
		label:           label,
		value:           initialValue,
		options:         options,
		onChange:        onChange,
		cursorPos:       len(initialValue),
		blinkTimer:      time.Now(),
	}
}

// OnSubmit registers a handler invoked when Enter is pressed.
func (t *MenuTextInput) OnSubmit(handler func(string)) *MenuTextInput {
	t.onSubmit = handler
	return t
}

// Value returns the current input text.
func (t *MenuTextInput) Value() string {
	return t.value
}

// SetValue replaces the input text.
func (t *MenuTextInput) SetValue(value string) {
	t.value = value
	t.cursorPos = len(value)
}

// Clear empties the input.
func (t *MenuTextInput) Clear() {
	t.SetValue("")
}

func (t *MenuTextInput) Update(mx, my int, deltaTime float64) bool {
	if !t.visible {
		return false
	}

	t.updateAnimation(deltaTime)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		oldFocused := t.focused
		t.focused = mx >= t.rect.Min.X && mx < t.rect.Max.X && my >= t.rect.Min.Y && my < t.rect.Max.Y
		if t.focused != oldFocused {
			if t.focused {
				t.blinkTimer = time.Now()
			}
			return true
		}
	}

	if !t.focused {
		return false
	}

	oldValue := t.value
	for _, r := range ebiten.AppendInputChars(nil) {
		if len(t.value) < t.options.MaxLength && r >= 32 && r != 127 {
			t.value = t.value[:t.cursorPos] + string(r) + t.value[t.cursorPos:]
			t.cursorPos++
		}
	}

	// Backspace repeats while held
	backspace := inpututil.IsKeyJustPressed(ebiten.KeyBackspace) ||
		(ebiten.IsKeyPressed(ebiten.KeyBackspace) && inpututil.KeyPressDuration(ebiten.KeyBackspace) >= 30 && inpututil.KeyPressDuration(ebiten.KeyBackspace)%6 == 0)
	if backspace && t.cursorPos > 0 {
		t.value = t.value[:t.cursorPos-1] + t.value[t.cursorPos:]
		t.cursorPos--
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) && t.cursorPos < len(t.value) {
		t.value = t.value[:t.cursorPos] + t.value[t.cursorPos+1:]
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		t.cursorPos = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		t.cursorPos = len(t.value)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) && t.cursorPos > 0 {
		t.cursorPos--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) && t.cursorPos < len(t.value) {
		t.cursorPos++
	}

	ctrlPressed := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrlPressed && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if pasted, err := ReadClipboard(); err == nil && pasted != "" {
			if len(t.value)+len(pasted) <= t.options.MaxLength {
				t.value = t.value[:t.cursorPos] + pasted + t.value[t.cursorPos:]
				t.cursorPos += len(pasted)
			}
		}
		return true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if t.onSubmit != nil {
			t.onSubmit(t.value)
		}
		t.focused = false
		return true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		t.focused = false
		return true
	}

	valueChanged := oldValue != t.value
	if valueChanged && t.onChange != nil {
		t.onChange(t.value)
	}
	return valueChanged
}

func (t *MenuTextInput) Draw(screen *ebiten.Image, x, y, width int, face font.Face) int {
	if !t.visible || t.animProgress <= 0.01 {
		return 0
	}

	height := t.options.Height + 35
	alpha := float32(t.animProgress)

	labelColor := color.RGBA{255, 255, 255, uint8(float32(255) * alpha)}
	text.Draw(screen, t.label, face, x, y+18, labelColor)

	inputY := y + 28
	inputWidth := t.options.Width
	if inputWidth > width-10 {
		inputWidth = width - 10
	}
	t.rect = image.Rect(x, inputY, x+inputWidth, inputY+t.options.Height)

	bgColor := t.options.BackgroundColor
	bgColor.A = uint8(float32(bgColor.A) * alpha)
	vector.DrawFilledRect(screen, float32(t.rect.Min.X), float32(t.rect.Min.Y), float32(t.rect.Dx()), float32(t.rect.Dy()), bgColor, false)

	borderColor := t.options.BorderColor
	if t.focused {
		borderColor = t.options.FocusColor
	}
	borderColor.A = uint8(float32(borderColor.A) * alpha)
	vector.StrokeRect(screen, float32(t.rect.Min.X), float32(t.rect.Min.Y), float32(t.rect.Dx()), float32(t.rect.Dy()), 2, borderColor, false)

	displayText := t.value
	textColor := t.options.TextColor
	if displayText == "" && !t.focused {
		displayText = t.options.Placeholder
		textColor = t.options.PlaceholderColor
	}
	textColor.A = uint8(float32(textColor.A) * alpha)

	textX := t.rect.Min.X + 5
	textY := t.rect.Min.Y + t.rect.Dy()/2 + 6
	if displayText != "" {
		text.Draw(screen, displayText, face, textX, textY, textColor)
	}

	// Blinking cursor
	if t.focused && time.Since(t.blinkTimer).Milliseconds()/500%2 == 0 {
		cursorX := textX + text.BoundString(face, t.value[:t.cursorPos]).Dx()
		vector.DrawFilledRect(screen, float32(cursorX), float32(t.rect.Min.Y+4), 1, float32(t.rect.Dy()-8), textColor, false)
	}

	return height
}

func (t *MenuTextInput) GetMinHeight() int {
	return t.options.Height + 35
}
