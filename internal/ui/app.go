package ui

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/widget"
	"gioui.org/x/explorer"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTraceOverlay/internal/camera"
	"github.com/OpenTraceLab/OpenTraceOverlay/internal/config"
	"github.com/OpenTraceLab/OpenTraceOverlay/internal/imageload"
	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay"
	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay/render"
)

// imageExtensions are offered by the file picker.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// loadResult carries a decoded image from a loader goroutine to the event loop.
type loadResult struct {
	img     *imageload.Image
	texture image.Image
	err     error
	source  string
}

type appIcons struct {
	open           *widget.Icon
	fullscreen     *widget.Icon
	fullscreenExit *widget.Icon
	mirror         *widget.Icon
	refit          *widget.Icon
	reset          *widget.Icon
	visibility     *widget.Icon
	visibilityOff  *widget.Icon
}

// App drives the overlay window: camera underlay, reference image and the
// control bars.
type App struct {
	window  *app.Window
	gvTheme *theme.Theme
	state   *AppState
	opts    Options

	ops op.Ops

	ctrl    *overlay.Controller
	tracker *ContactTracker

	overlayLayer render.OverlayLayer
	cameraLayer  render.CameraLayer
	feed         *camera.Feed

	explorer *explorer.Explorer
	loads    chan loadResult
	ctx      context.Context
	cancel   context.CancelFunc

	viewport     overlay.Viewport
	pendingRefit bool
	cameraPicked bool

	openBtn        widget.Clickable
	fullscreenBtn  widget.Clickable
	refitBtn       widget.Clickable
	resetBtn       widget.Clickable
	cameraBtn      widget.Clickable
	debugToggleBtn widget.Clickable
	hideDebugBtn   widget.Clickable
	mirrorSwitch   widget.Bool
	opacitySlider  widget.Float
	scaleSlider    widget.Float
	rotationSlider widget.Float
	cameraMenu     *menu.DropdownMenu
	icons          appIcons
}

// New wires the Gio window, theme, overlay controller and shared state
// together.
func New(w *app.Window, opts Options) *App {
	if w == nil {
		w = new(app.Window)
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.OpenCamera == nil {
		opts.OpenCamera = openCapture
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		window:   w,
		gvTheme:  theme.NewTheme("", nil, true),
		state:    NewState(),
		opts:     opts,
		explorer: explorer.NewExplorer(w),
		loads:    make(chan loadResult, 4),
		ctx:      ctx,
		cancel:   cancel,
	}

	var ctrlOpts []overlay.Option
	if opts.Verbose {
		ctrlOpts = append(ctrlOpts, overlay.WithLogger(a.Logf))
	}
	a.ctrl = overlay.NewController(ctrlOpts...)
	a.tracker = NewContactTracker(a.ctrl)
	a.state.SetShowDebug(opts.Config.ShowDebug)
	a.cameraMenu = a.buildCameraMenu()
	a.loadIcons()

	a.Logf("[BOOT] overlay UI initialized")
	return a
}

func (a *App) loadIcons() {
	makeIcon := func(data []byte, name string) *widget.Icon {
		icon, err := widget.NewIcon(data)
		if err != nil {
			log.Printf("ui: failed to load %s icon: %v", name, err)
			return nil
		}
		return icon
	}
	a.icons = appIcons{
		open:           makeIcon(icons.FileFolderOpen, "open"),
		fullscreen:     makeIcon(icons.NavigationFullscreen, "fullscreen"),
		fullscreenExit: makeIcon(icons.NavigationFullscreenExit, "fullscreen exit"),
		mirror:         makeIcon(icons.ImageFlip, "mirror"),
		refit:          makeIcon(icons.ActionAspectRatio, "fit"),
		reset:          makeIcon(icons.ActionRestore, "reset"),
		visibility:     makeIcon(icons.ActionVisibility, "show debug"),
		visibilityOff:  makeIcon(icons.ActionVisibilityOff, "hide debug"),
	}
}

// Run processes Gio events until the window is closed.
func (a *App) Run() error {
	if a.opts.Config.CameraEnabled {
		a.selectCamera(a.opts.Config.CameraDevice)
	}
	if a.opts.Image != "" {
		a.loadImage(a.opts.Image)
	}

	for {
		e := a.window.Event()
		a.explorer.ListenEvents(e)
		switch ev := e.(type) {
		case app.DestroyEvent:
			a.shutdown()
			return ev.Err
		case app.ConfigEvent:
			a.state.SetFullscreen(ev.Config.Mode == app.Fullscreen)
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) shutdown() {
	a.cancel()
	a.stopCamera()
	a.saveConfig()
}

func (a *App) saveConfig() {
	stored := a.opts.Stored
	if stored == nil {
		stored = a.opts.Config
	}
	cfg := *stored
	cfg.ShowDebug = a.state.ShowDebug()
	if a.cameraPicked {
		if dev := a.state.CameraDevice(); dev >= 0 {
			cfg.CameraDevice = dev
			cfg.CameraEnabled = true
		} else {
			cfg.CameraEnabled = false
		}
	}

	var err error
	if a.opts.ConfigPath != "" {
		err = config.SaveTo(a.opts.ConfigPath, &cfg)
	} else {
		err = config.Save(&cfg)
	}
	if err != nil {
		log.Printf("[CONFIG] save failed: %v", err)
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	a.handleControls(gtx)

	vp := render.ViewportOf(gtx)
	if vp != a.viewport {
		a.viewport = vp
		a.ctrl.SetViewport(vp.Width, vp.Height)
		if a.pendingRefit {
			a.pendingRefit = false
			a.refit()
		}
	}
	a.drainLoads()

	if a.feed != nil {
		frame, seq := a.feed.Latest()
		a.cameraLayer.Update(frame, seq)
		a.state.SetStreamActive(a.feed.Active() && seq > 0)
	} else {
		a.state.SetStreamActive(false)
	}

	state := a.state.Snapshot()
	a.syncSliders(a.ctrl.Snapshot())

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(a.cameraLayer.Layout),
		layout.Expanded(a.layoutStage),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = gtx.Constraints.Max
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if !state.ShowDebug {
						return layout.Dimensions{}
					}
					return a.layoutDebugBar(gtx, state)
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.Dimensions{Size: gtx.Constraints.Min}
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return a.layoutControls(gtx, state)
				}),
			)
		}),
	)
}

// layoutStage handles direct manipulation and paints the overlay image.
func (a *App) layoutStage(gtx layout.Context) layout.Dimensions {
	a.handleKeys(gtx)
	a.handlePointer(gtx)

	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, a.tracker)
	area.Pop()

	return a.overlayLayer.Layout(gtx, a.ctrl.Snapshot())
}

func (a *App) handlePointer(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  a.tracker,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: math.MinInt32, Max: math.MaxInt32},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		if pe.Kind == pointer.Scroll {
			if pe.Scroll.Y != 0 && !a.tracker.Active() {
				a.ctrl.ZoomBy(wheelZoomFactor(pe.Scroll.Y))
				a.invalidate()
			}
			continue
		}
		if a.tracker.Update(pe) {
			a.invalidate()
		}
	}
}

func (a *App) handleKeys(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "+", Optional: key.ModShift},
			key.Filter{Name: "=", Optional: key.ModShift},
			key.Filter{Name: "-"},
			key.Filter{Name: "R"},
			key.Filter{Name: "M"},
			key.Filter{Name: "F"},
			key.Filter{Name: key.NameLeftArrow},
			key.Filter{Name: key.NameRightArrow},
			key.Filter{Name: key.NameUpArrow},
			key.Filter{Name: key.NameDownArrow},
			key.Filter{Name: key.NameEscape},
			key.Filter{Name: "O", Required: key.ModShortcut},
			key.Filter{Name: "V", Required: key.ModShortcut},
		)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case "+", "=":
			a.ctrl.ZoomBy(keyZoomStep)
		case "-":
			a.ctrl.ZoomBy(1 / keyZoomStep)
		case "R":
			a.ctrl.Reset()
		case "M":
			a.ctrl.ToggleMirror()
		case "F":
			a.refit()
		case key.NameLeftArrow:
			a.ctrl.Nudge(-nudgeStep, 0)
		case key.NameRightArrow:
			a.ctrl.Nudge(nudgeStep, 0)
		case key.NameUpArrow:
			a.ctrl.Nudge(0, -nudgeStep)
		case key.NameDownArrow:
			a.ctrl.Nudge(0, nudgeStep)
		case key.NameEscape:
			if a.state.Fullscreen() {
				a.setFullscreen(false)
			}
		case "O":
			a.openPicker()
		case "V":
			a.pasteImage()
		}
		a.invalidate()
	}
}

func (a *App) refit() {
	if !a.ctrl.Snapshot().HasImage() {
		return
	}
	if err := a.ctrl.Refit(); err != nil {
		a.Logf("[FIT] refit failed: %v", err)
		return
	}
	a.Logf("[FIT] refit to %s", a.viewportLabel())
}

func (a *App) viewportLabel() string {
	return fmt.Sprintf("%.0fx%.0f", a.viewport.Width, a.viewport.Height)
}

// openPicker asks the platform for an image file and loads it.
func (a *App) openPicker() {
	go func() {
		file, err := a.explorer.ChooseFile(imageExtensions...)
		if err != nil {
			if err != explorer.ErrUserDecline {
				a.Logf("[ERROR] file picker failed: %v", err)
			}
			return
		}
		defer file.Close()

		source := "picked image"
		if f, ok := file.(*os.File); ok {
			source = f.Name()
		}
		a.state.SetLoading(true)
		img, err := imageload.Decode(file)
		if err == nil {
			img.Source = source
		}
		a.finishLoad(source, img, err)
	}()
}

// pasteImage loads the image, path or URL on the clipboard.
func (a *App) pasteImage() {
	a.state.SetLoading(true)
	a.state.SetStatus("Pasting from clipboard")
	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, 30*time.Second)
		defer cancel()
		img, err := imageload.Clipboard(ctx)
		source := "clipboard"
		if err == nil {
			source = img.Source
		}
		a.finishLoad(source, img, err)
	}()
}

// loadImage loads src, a path or URL, in the background.
func (a *App) loadImage(src string) {
	a.state.SetLoading(true)
	a.state.SetStatus("Loading " + src)
	a.invalidate()

	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, 30*time.Second)
		defer cancel()
		img, err := imageload.Load(ctx, src)
		a.finishLoad(src, img, err)
	}()
}

// finishLoad prepares the texture off the event goroutine and hands the
// result to the next frame.
func (a *App) finishLoad(src string, img *imageload.Image, err error) {
	res := loadResult{img: img, err: err, source: src}
	if err == nil {
		res.texture = imageload.Texture(img.Pixels, a.opts.Config.MaxTextureSize)
	}
	select {
	case a.loads <- res:
	case <-a.ctx.Done():
		return
	}
	a.invalidate()
}

func (a *App) drainLoads() {
	for {
		select {
		case res := <-a.loads:
			a.applyLoad(res)
		default:
			return
		}
	}
}

// applyLoad installs a loaded image. On failure the previous overlay stays.
func (a *App) applyLoad(res loadResult) {
	a.state.SetLoading(false)
	if res.err != nil {
		a.failLoad(res.source, res.err)
		return
	}
	if err := a.ctrl.ImageLoaded(res.img.Width, res.img.Height); err != nil {
		a.failLoad(res.source, err)
		return
	}
	a.tracker.Reset()
	a.overlayLayer.SetImage(res.texture, overlay.Size{Width: res.img.Width, Height: res.img.Height})
	a.state.SetImageSource(res.source)
	a.state.SetError(nil)
	a.state.SetStatus(fmt.Sprintf("Loaded %s (%dx%d)", res.source, res.img.Width, res.img.Height))
	a.Logf("[LOAD] %s %dx%d fitted to %s", res.source, res.img.Width, res.img.Height, a.viewportLabel())
	a.window.Option(app.Title("OpenTrace Overlay - " + res.source))

	if a.opts.Config.FullscreenOnLoad && !a.state.Fullscreen() {
		a.pendingRefit = true
		a.setFullscreen(true)
	}
}

func (a *App) failLoad(src string, err error) {
	a.state.SetError(err)
	a.state.SetStatus("Failed to load " + src)
	a.Logf("[LOAD] %s failed: %v", src, err)
}

func (a *App) setFullscreen(on bool) {
	if on {
		a.window.Option(app.Fullscreen.Option())
	} else {
		a.window.Option(app.Windowed.Option())
	}
	a.invalidate()
}

func (a *App) setShowDebug(show bool) {
	a.state.SetShowDebug(show)
	a.invalidate()
}

// selectCamera switches the underlay to device, or turns it off for a
// negative device.
func (a *App) selectCamera(device int) {
	a.stopCamera()
	a.state.SetCameraDevice(-1)
	if device < 0 {
		a.Logf("[CAMERA] off")
		a.invalidate()
		return
	}

	cfg := a.opts.Config
	src, err := a.opts.OpenCamera(device, cfg.CaptureWidth, cfg.CaptureHeight)
	if err != nil {
		a.state.SetError(err)
		a.state.SetStatus("Camera unavailable")
		a.Logf("[CAMERA] %v", err)
		a.invalidate()
		return
	}

	a.feed = camera.NewFeed(src, a.invalidate)
	a.feed.Start(a.ctx)
	a.state.SetCameraDevice(device)
	a.Logf("[CAMERA] streaming from device %d", device)
	a.invalidate()
}

func (a *App) stopCamera() {
	if a.feed == nil {
		return
	}
	if err := a.feed.Close(); err != nil {
		log.Printf("[CAMERA] close failed: %v", err)
	}
	a.feed = nil
	a.cameraLayer = render.CameraLayer{}
	a.state.SetStreamActive(false)
}

// Logf appends a timestamped entry to the in-app log and mirrors it to the
// process log.
func (a *App) Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)
	a.state.AppendLog(fmt.Sprintf("[%s] %s", time.Now().Format(time.Stamp), msg))
	a.invalidate()
}

// invalidate requests a new frame.
func (a *App) invalidate() {
	if a.window != nil {
		a.window.Invalidate()
	}
}
