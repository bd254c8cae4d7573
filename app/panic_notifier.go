package app

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"iconstudio/storage"
)

// LockFileName is the single-instance lock created at startup.
const LockFileName = ".iconstudio.lock"

// PanicNotifier shows a modal dialog when the update or draw loop
// panics, instead of tearing the window down with no explanation.
type PanicNotifier struct {
	modal           *EnhancedModal
	panicInfo       *PanicInfo
	stackTrace      string
	visible         bool
	copyButton      *EnhancedButton
	terminateButton *EnhancedButton
	continueButton  *EnhancedButton
	scrollOffset    int
	font            font.Face
}

// PanicInfo contains information about a panic
type PanicInfo struct {
	Error     interface{}
	Time      time.Time
	GoVersion string
	OS        string
	Arch      string
}

var globalPanicNotifier *PanicNotifier

// InitPanicNotifier initializes the global panic notification system
func InitPanicNotifier() {
	if globalPanicNotifier != nil {
		return
	}

	pn := &PanicNotifier{
		modal: NewEnhancedModal("Runtime Error", 800, 600),
		font:  loadFont(14),
	}
	pn.setupButtons()
	globalPanicNotifier = pn
}

// DeregisterPanicNotifier drops the global notifier so a rethrown panic
// terminates the process normally.
func DeregisterPanicNotifier() {
	if globalPanicNotifier != nil {
		globalPanicNotifier.Hide()
		globalPanicNotifier = nil
	}
}

// GetPanicNotifier returns the global panic notifier instance
func GetPanicNotifier() *PanicNotifier {
	if globalPanicNotifier == nil {
		InitPanicNotifier()
	}
	return globalPanicNotifier
}

func (pn *PanicNotifier) setupButtons() {
	buttonWidth := 140
	buttonHeight := 40

	pn.copyButton = NewEnhancedButton("Copy stack trace", 0, 0, buttonWidth, buttonHeight, func() {
		if pn.stackTrace == "" {
			return
		}
		if err := WriteClipboard(pn.stackTrace); err != nil {
			log.Printf("[PANIC] Clipboard write failed: %v", err)
			return
		}
		NewToast().Text("Stack trace copied to clipboard").Kind(NoticeSuccess).AutoClose(2 * time.Second).Show()
	})

	pn.terminateButton = NewEnhancedButton("Terminate", 0, 0, buttonWidth, buttonHeight, func() {
		if pn.panicInfo != nil {
			fmt.Printf("Panic occurred: %v\n", pn.panicInfo.Error)
			os.Remove(storage.DataFile(LockFileName))
			os.Exit(1)
		}
	})
	pn.terminateButton.SetRedButtonStyle()

	pn.continueButton = NewEnhancedButton("Continue", 0, 0, buttonWidth, buttonHeight, func() {
		pn.Hide()
	})
}

// HandlePanic recovers from a panic and presents it. Use with defer in
// the Update and Draw loops.
func HandlePanic() {
	rec := recover()
	if rec == nil {
		return
	}
	log.Printf("[PANIC] Recovered: %v", rec)
	GetPanicNotifier().ShowPanic(rec, debug.Stack())
}

// ShowPanic fills in the dialog and makes it visible.
func (pn *PanicNotifier) ShowPanic(err interface{}, stack []byte) {
	pn.panicInfo = &PanicInfo{
		Error:     err,
		Time:      time.Now(),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	pn.stackTrace = string(stack)
	pn.scrollOffset = 0
	pn.visible = true
	pn.modal.Show()
}

// Hide dismisses the dialog.
func (pn *PanicNotifier) Hide() {
	pn.visible = false
	pn.modal.Hide()
}

// IsVisible reports whether the dialog is showing.
func (pn *PanicNotifier) IsVisible() bool {
	return pn.visible
}

// Update handles dialog input. Returns true while the dialog consumes
// all input.
func (pn *PanicNotifier) Update() bool {
	if !pn.visible {
		return false
	}

	pn.modal.Update()
	pn.updateButtonPositions()

	mx, my := ebiten.CursorPosition()
	pn.copyButton.Update(mx, my)
	pn.terminateButton.Update(mx, my)
	pn.continueButton.Update(mx, my)

	if _, scrollY := ebiten.Wheel(); scrollY != 0 && pn.modal.Contains(mx, my) {
		pn.scrollOffset -= int(scrollY * 3)
		if pn.scrollOffset < 0 {
			pn.scrollOffset = 0
		}
	}

	return true
}

func (pn *PanicNotifier) updateButtonPositions() {
	contentX, contentY, contentW, contentH := pn.modal.GetContentArea()
	buttonY := contentY + contentH - 45
	pn.copyButton.SetPosition(contentX, buttonY)
	pn.terminateButton.SetPosition(contentX+155, buttonY)
	pn.continueButton.SetPosition(contentX+contentW-140, buttonY)
}

// Draw renders the dialog on top of everything else.
func (pn *PanicNotifier) Draw(screen *ebiten.Image) {
	if !pn.visible {
		return
	}

	pn.modal.Draw(screen)

	contentX, contentY, contentW, contentH := pn.modal.GetContentArea()

	header := fmt.Sprintf("%v", pn.panicInfo.Error)
	text.Draw(screen, header, pn.font, contentX, contentY+16, color.RGBA{255, 120, 120, 255})

	meta := fmt.Sprintf("%s %s/%s at %s",
		pn.panicInfo.GoVersion, pn.panicInfo.OS, pn.panicInfo.Arch,
		pn.panicInfo.Time.Format(time.TimeOnly))
	text.Draw(screen, meta, pn.font, contentX, contentY+36, EnhancedUIColors.TextSecondary)

	// Scrollable stack trace
	lines := strings.Split(pn.stackTrace, "\n")
	lineHeight := 16
	traceTop := contentY + 56
	visibleLines := (contentH - 56 - 55) / lineHeight
	for i := 0; i < visibleLines; i++ {
		index := pn.scrollOffset + i
		if index >= len(lines) {
			break
		}
		line := lines[index]
		if text.BoundString(pn.font, line).Dx() > contentW {
			line = line[:len(line)*contentW/text.BoundString(pn.font, line).Dx()]
		}
		text.Draw(screen, line, pn.font, contentX, traceTop+i*lineHeight, EnhancedUIColors.Text)
	}

	pn.copyButton.Draw(screen)
	pn.terminateButton.Draw(screen)
	pn.continueButton.Draw(screen)
}
