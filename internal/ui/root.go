package ui

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/spacestills/spacestills/internal/config"
	"github.com/spacestills/spacestills/internal/platform"
	"github.com/spacestills/spacestills/internal/still"
	"github.com/spacestills/spacestills/internal/viewer"
)

// Control labels
const (
	LabelAspectCheck = "Correct aspect ratio"
	LabelAutoReload  = "Auto-reload every (seconds):"
	LabelReload      = "Reload"
	LabelSet         = "Set"
	LabelSave        = "Save"
	LabelExit        = "Exit"
)

// Saved file naming
const (
	SavedFilePrefix     = "still-"
	SavedFileExtension  = ".png"
	SavedFileTimeLayout = "20060102-150405"
)

// RootUI represents the main UI structure
type RootUI struct {
	window     fyne.Window
	controller *viewer.Controller
	settings   *config.Settings

	frameCanvas   *canvas.Image
	aspectCheck   *widget.Check
	autoCheck     *widget.Check
	intervalEntry *widget.Entry
	reloadBtn     *widget.Button
	setBtn        *widget.Button
	saveBtn       *widget.Button
	exitBtn       *widget.Button
	statusLabel   *widget.Label
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, controller *viewer.Controller, settings *config.Settings) *RootUI {
	ui := &RootUI{
		window:     window,
		controller: controller,
		settings:   settings,
	}

	ui.setupUI()

	// Render every controller change. Registered after setup so early widget
	// callbacks cannot publish into a half-built UI.
	controller.SetUpdateCallback(ui.onUpdate)
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Frame display, seeded with the placeholder until the first fetch lands
	ui.frameCanvas = canvas.NewImageFromImage(still.Placeholder())
	ui.frameCanvas.FillMode = canvas.ImageFillContain
	ui.frameCanvas.SetMinSize(fyne.NewSize(config.FrameWidth, config.FrameHeight))

	// Controls row
	ui.aspectCheck = widget.NewCheck(LabelAspectCheck, ui.onAspectToggle)
	ui.aspectCheck.SetChecked(ui.settings.CorrectAspect)

	ui.reloadBtn = widget.NewButton(LabelReload, ui.onReloadClick)
	ui.saveBtn = widget.NewButton(LabelSave, ui.onSaveClick)
	ui.exitBtn = widget.NewButton(LabelExit, ui.onExitClick)

	// Reload scheduling row
	ui.autoCheck = widget.NewCheck(LabelAutoReload, ui.onAutoReloadToggle)
	ui.autoCheck.SetChecked(ui.settings.AutoReload)

	ui.intervalEntry = widget.NewEntry()
	ui.intervalEntry.SetText(strconv.Itoa(ui.settings.IntervalSeconds))
	ui.intervalEntry.OnSubmitted = func(string) {
		ui.onSetIntervalClick()
	}

	ui.setBtn = widget.NewButton(LabelSet, ui.onSetIntervalClick)

	ui.statusLabel = widget.NewLabel("Starting...")
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	controlsRow := container.NewHBox(ui.aspectCheck, ui.reloadBtn, ui.saveBtn, ui.exitBtn)
	reloadRow := container.NewBorder(nil, nil, ui.autoCheck, ui.setBtn, ui.intervalEntry)

	content := container.NewBorder(
		nil,
		container.NewVBox(controlsRow, reloadRow, ui.statusLabel),
		nil,
		nil,
		ui.frameCanvas,
	)

	ui.window.SetContent(content)
}

// onUpdate renders a controller snapshot. It may be called from any goroutine.
func (ui *RootUI) onUpdate(snapshot viewer.Snapshot) {
	fyne.Do(func() {
		if snapshot.Frame != nil {
			ui.frameCanvas.Image = snapshot.Frame.Display()
			ui.frameCanvas.Refresh()
		}
		ui.statusLabel.SetText(snapshot.Status)
	})
}

// onReloadClick triggers a manual reload
func (ui *RootUI) onReloadClick() {
	ui.controller.Reload()
}

// onAspectToggle switches the 16:9 correction on the displayed frame
func (ui *RootUI) onAspectToggle(enabled bool) {
	ui.controller.SetAspectCorrection(enabled)
}

// onAutoReloadToggle suspends or resumes the reload timer
func (ui *RootUI) onAutoReloadToggle(enabled bool) {
	ui.controller.SetAutoReload(enabled)
}

// onSetIntervalClick validates and applies the typed reload interval. On
// rejection the entry is reset to the interval still in effect.
func (ui *RootUI) onSetIntervalClick() {
	if err := ui.controller.SetReloadInterval(ui.intervalEntry.Text); err != nil {
		ui.statusLabel.SetText(err.Error())
		ui.intervalEntry.SetText(strconv.Itoa(ui.settings.IntervalSeconds))
	}
}

// onSaveClick asks for a target path and writes the displayed frame as PNG.
// A filename typed without .png is used verbatim.
func (ui *RootUI) onSaveClick() {
	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			ui.statusLabel.SetText(fmt.Sprintf("Save failed: %v", err))
			return
		}
		if writer == nil {
			return // cancelled
		}

		path := writer.URI().Path()
		writer.Close()

		ui.completeSave(path)
	}, ui.window)

	saveDialog.SetFileName(defaultSaveFileName(time.Now()))
	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{SavedFileExtension}))
	if location := defaultSaveLocation(); location != nil {
		saveDialog.SetLocation(location)
	}
	saveDialog.Show()
}

// completeSave writes the displayed frame to path and reports the outcome in
// the status line
func (ui *RootUI) completeSave(path string) {
	if err := ui.controller.Save(path); err != nil {
		ui.statusLabel.SetText(fmt.Sprintf("Save failed: %v", err))
		return
	}

	ui.statusLabel.SetText(fmt.Sprintf("Saved to %s", path))

	// Best effort; not every platform supports revealing a file
	go platform.RevealInFileManager(path)
}

// defaultSaveLocation returns the user's Pictures directory as the dialog
// starting location, creating the directory if needed. Nil means the dialog
// falls back to its own default.
func defaultSaveLocation() fyne.ListableURI {
	picturesDir, err := platform.GetHomePicturesDir()
	if err != nil {
		return nil
	}

	if err := platform.CreateDirectoryIfNotExists(picturesDir); err != nil {
		return nil
	}

	location, err := storage.ListerForURI(storage.NewFileURI(picturesDir))
	if err != nil {
		return nil
	}
	return location
}

// onExitClick closes the window, which shuts the app down
func (ui *RootUI) onExitClick() {
	ui.window.Close()
}

// defaultSaveFileName returns the suggested file name for a save at t
func defaultSaveFileName(t time.Time) string {
	return SavedFilePrefix + t.Format(SavedFileTimeLayout) + SavedFileExtension
}
