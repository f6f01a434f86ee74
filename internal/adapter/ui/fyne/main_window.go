package fyne

import (
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/wavefield/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/wavefield/internal/domain"
	"github.com/tejashwikalptaru/wavefield/internal/ports"
	"github.com/tejashwikalptaru/wavefield/res"
)

// APPNAME is the window title.
const APPNAME = "Wave Field"

// Default window size.
const (
	WIDTH  float32 = 960
	HEIGHT float32 = 540
)

// unitCountChoices are offered in the Waves menu; 0 means the configured default.
var unitCountChoices = []int{0, 3, 5, 8, 12}

// MainWindow is the main window implementing the UIView interface.
//
// It is a "dumb view": the wave canvas fills the window, a status line
// sits below it, and menu commands are forwarded to the Presenter.
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window
	logger *slog.Logger

	canvas *widgets.WaveCanvas
	status *widget.Label

	variantItems   map[domain.Variant]*fyneapp.MenuItem
	unitItems      map[int]*fyneapp.MenuItem
	centerlineItem *fyneapp.MenuItem

	closeOnce     sync.Once
	onBeforeClose func()
	presenter     *Presenter
}

// NewMainWindow creates the main window around a wave canvas.
func NewMainWindow(app fyneapp.App, bus ports.EventBus, logger *slog.Logger) *MainWindow {
	w := &MainWindow{
		app:    app,
		logger: logger,
		canvas: widgets.NewWaveCanvas(bus),
	}

	w.window = app.NewWindow(APPNAME)
	w.buildUI()
	w.window.Resize(fyneapp.NewSize(WIDTH, HEIGHT))

	return w
}

// SetPresenter connects the presenter to this view.
// This must be called before showing the window.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.addShortcuts()
}

func (w *MainWindow) buildUI() {
	w.status = widget.NewLabel("")
	w.status.Truncation = fyneapp.TextTruncateEllipsis
	w.status.TextStyle = fyneapp.TextStyle{Italic: true}

	w.window.SetContent(container.NewBorder(nil, w.status, nil, nil, w.canvas))
	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

func (w *MainWindow) createMenu() []*fyneapp.Menu {
	separator := fyneapp.NewMenuItemSeparator()

	openPreset := fyneapp.NewMenuItem("Open Preset...", w.handleOpenPreset)
	saveSnapshot := fyneapp.NewMenuItem("Save Snapshot...", w.handleSaveSnapshot)
	exitMenu := fyneapp.NewMenuItem("Exit", w.requestClose)
	fileMenu := fyneapp.NewMenu("File", openPreset, saveSnapshot, separator, exitMenu)

	w.variantItems = make(map[domain.Variant]*fyneapp.MenuItem)
	viewItems := make([]*fyneapp.MenuItem, 0, 8)
	for _, info := range domain.Variants() {
		variant := info.Variant
		item := fyneapp.NewMenuItem(info.Name, func() {
			if w.presenter != nil {
				w.presenter.OnVariantSelected(variant)
			}
		})
		w.variantItems[variant] = item
		viewItems = append(viewItems, item)
	}

	w.unitItems = make(map[int]*fyneapp.MenuItem)
	unitItems := make([]*fyneapp.MenuItem, 0, len(unitCountChoices))
	for _, n := range unitCountChoices {
		label := strconv.Itoa(n)
		if n == 0 {
			label = "Default"
		}
		item := fyneapp.NewMenuItem(label, func() {
			if w.presenter != nil {
				w.presenter.OnUnitCountSelected(n)
			}
		})
		w.unitItems[n] = item
		unitItems = append(unitItems, item)
	}
	waves := fyneapp.NewMenuItem("Waves", nil)
	waves.ChildMenu = fyneapp.NewMenu("", unitItems...)

	w.centerlineItem = fyneapp.NewMenuItem("Show Centerline", func() {
		if w.presenter != nil {
			w.presenter.OnCenterlineToggled()
		}
	})
	reset := fyneapp.NewMenuItem("Reset Settings", func() {
		if w.presenter != nil {
			w.presenter.OnResetSettings()
		}
	})

	viewItems = append(viewItems, separator, waves, w.centerlineItem, separator, reset)
	viewMenu := fyneapp.NewMenu("View", viewItems...)

	about := fyneapp.NewMenuItem("About", w.showAbout)
	helpMenu := fyneapp.NewMenu("Help", about)

	return []*fyneapp.Menu{fileMenu, viewMenu, helpMenu}
}

func (w *MainWindow) handleOpenPreset() {
	if w.presenter == nil {
		return
	}

	NewPresetDialog(w.window, func(path string) {
		if err := w.presenter.OnPresetOpened(path); err != nil {
			dialog.ShowError(fmt.Errorf("failed to load preset: %w", err), w.window)
		}
	}, w.logger).Show()
}

func (w *MainWindow) handleSaveSnapshot() {
	if w.presenter == nil {
		return
	}
	NewSnapshotDialog(w.window, w.presenter.OnSnapshotRequested, w.logger).Show()
}

func (w *MainWindow) showAbout() {
	content := widget.NewRichTextFromMarkdown(res.AboutContent)
	content.Wrapping = fyneapp.TextWrapWord
	d := dialog.NewCustom("About "+APPNAME, "Close", content, w.window)
	d.Resize(fyneapp.NewSize(420, 280))
	d.Show()
}

// addShortcuts adds keyboard shortcuts: Alt+1/Alt+2 select a variant,
// Alt+C toggles the centerline.
func (w *MainWindow) addShortcuts() {
	for i, info := range domain.Variants() {
		variant := info.Variant
		w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
			KeyName:  fyneapp.KeyName(strconv.Itoa(i + 1)),
			Modifier: fyneapp.KeyModifierAlt,
		}, func(fyneapp.Shortcut) {
			w.presenter.OnVariantSelected(variant)
		})
	}

	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyC,
		Modifier: fyneapp.KeyModifierAlt,
	}, func(fyneapp.Shortcut) {
		w.presenter.OnCenterlineToggled()
	})
}

// SetOnBeforeClose registers fn to run before the window closes,
// whether through the menu, the close button or the OS quit shortcut.
func (w *MainWindow) SetOnBeforeClose(fn func()) {
	w.onBeforeClose = fn
	w.window.SetCloseIntercept(w.requestClose)
}

func (w *MainWindow) requestClose() {
	if w.onBeforeClose != nil {
		w.onBeforeClose()
	}
	w.Close()
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window.
// It's safe to call multiple times (idempotent).
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		w.canvas.Close()
		w.window.Close()
	})
}

// GetWindow returns the underlying Fyne window.
func (w *MainWindow) GetWindow() fyneapp.Window {
	return w.window
}

// Canvas returns the wave canvas widget.
func (w *MainWindow) Canvas() *widgets.WaveCanvas {
	return w.canvas
}

// UIView interface implementation

// Surface returns the canvas drawing surface.
func (w *MainWindow) Surface() ports.Surface {
	return w.canvas.Surface()
}

// Snapshot returns the last presented frame.
func (w *MainWindow) Snapshot() image.Image {
	return w.canvas.Snapshot()
}

// SetStatus updates the status line. Safe to call from any goroutine.
func (w *MainWindow) SetStatus(text string) {
	fyneapp.Do(func() {
		w.status.SetText(text)
	})
}

// SetVariant checks the selected variant in the View menu.
func (w *MainWindow) SetVariant(variant domain.Variant) {
	fyneapp.Do(func() {
		for v, item := range w.variantItems {
			item.Checked = v == variant
		}
		w.refreshMenu()
	})
}

// SetUnitCount checks the selected wave count in the Waves menu.
func (w *MainWindow) SetUnitCount(count int) {
	fyneapp.Do(func() {
		for n, item := range w.unitItems {
			item.Checked = n == count
		}
		w.refreshMenu()
	})
}

// SetShowCenterline checks or unchecks the centerline menu item.
func (w *MainWindow) SetShowCenterline(show bool) {
	fyneapp.Do(func() {
		w.centerlineItem.Checked = show
		w.refreshMenu()
	})
}

func (w *MainWindow) refreshMenu() {
	if menu := w.window.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

// ShowNotification displays a system notification.
func (w *MainWindow) ShowNotification(title, message string) {
	w.app.SendNotification(fyneapp.NewNotification(title, message))
}

// Verify UIView implementation
var _ UIView = (*MainWindow)(nil)
