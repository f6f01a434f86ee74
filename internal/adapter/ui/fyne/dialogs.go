package fyne

import (
	"image"
	"image/png"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// PresetDialog asks for a YAML preset file to open.
type PresetDialog struct {
	window   fyne.Window
	callback func(string)
	logger   *slog.Logger
}

// NewPresetDialog creates a preset dialog.
func NewPresetDialog(window fyne.Window, callback func(string), logger *slog.Logger) *PresetDialog {
	return &PresetDialog{
		window:   window,
		callback: callback,
		logger:   logger,
	}
}

// Show displays the dialog.
func (d *PresetDialog) Show() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			d.logger.Error("preset dialog error", slog.Any("error", err))
			return
		}
		if reader == nil {
			return // User cancelled
		}
		defer reader.Close()

		if d.callback != nil {
			d.callback(reader.URI().Path())
		}
	}, d.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".yaml", ".yml"}))
	open.Show()
}

// SnapshotDialog asks where to save the current frame as PNG.
type SnapshotDialog struct {
	window fyne.Window
	frame  func() image.Image
	logger *slog.Logger
}

// NewSnapshotDialog creates a snapshot dialog. frame is called once the user
// has picked a destination.
func NewSnapshotDialog(window fyne.Window, frame func() image.Image, logger *slog.Logger) *SnapshotDialog {
	return &SnapshotDialog{
		window: window,
		frame:  frame,
		logger: logger,
	}
}

// Show displays the dialog.
func (d *SnapshotDialog) Show() {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			d.logger.Error("snapshot dialog error", slog.Any("error", err))
			return
		}
		if writer == nil {
			return // User cancelled
		}
		defer writer.Close()

		if err := png.Encode(writer, d.frame()); err != nil {
			d.logger.Error("failed to write snapshot", slog.Any("error", err))
			dialog.ShowError(err, d.window)
			return
		}
		d.logger.Info("snapshot saved", slog.String("path", writer.URI().Path()))
	}, d.window)
	save.SetFileName("wavefield.png")
	save.Show()
}
