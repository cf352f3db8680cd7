package ui

import (
	"fmt"
	"image/color"
	"math"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"

	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay"
)

// sliderRange maps a widget.Float position in [0, 1] onto a stepped value
// range.
type sliderRange struct {
	min, max, step float64
}

var (
	opacityRange  = sliderRange{min: overlay.MinOpacity, max: overlay.MaxOpacity, step: 0.05}
	scaleRange    = sliderRange{min: overlay.MinScale, max: overlay.MaxScale, step: 0.1}
	rotationRange = sliderRange{min: overlay.MinRotation, max: overlay.MaxRotation, step: 5}
)

// value returns the stepped value at slider position pos.
func (r sliderRange) value(pos float32) float64 {
	p := math.Max(0, math.Min(1, float64(pos)))
	v := r.min + p*(r.max-r.min)
	if r.step > 0 {
		v = r.min + math.Round((v-r.min)/r.step)*r.step
	}
	return math.Max(r.min, math.Min(r.max, v))
}

// position returns the slider position showing v.
func (r sliderRange) position(v float64) float32 {
	if r.max <= r.min {
		return 0
	}
	p := (v - r.min) / (r.max - r.min)
	return float32(math.Max(0, math.Min(1, p)))
}

// debugLine renders the placement summary shown in the debug bar.
func debugLine(s overlay.Snapshot, streamActive bool) string {
	stream := "Inactive"
	if streamActive {
		stream = "Active"
	}
	mirror := "Off"
	if s.Mirrored {
		mirror = "On"
	}
	return fmt.Sprintf("Stream: %s | Scale: %.2fx | Rotate: %.0f° | Mirror: %s",
		stream, s.Scale, s.Rotation, mirror)
}

const (
	wheelZoomPerPixel = 0.005
	keyZoomStep       = 1.1
	nudgeStep         = 10.0
)

// wheelZoomFactor converts a scroll distance into a zoom factor. Scrolling
// down (positive dy) zooms out.
func wheelZoomFactor(dy float32) float64 {
	return math.Exp(-float64(dy) * wheelZoomPerPixel)
}

// cameraDevices lists the capture device indices offered in the menu.
var cameraDevices = []int{0, 1, 2, 3}

func cameraLabel(device int) string {
	if device < 0 {
		return "Camera: Off"
	}
	return fmt.Sprintf("Camera %d", device)
}

func (a *App) buildCameraMenu() *menu.DropdownMenu {
	opts := make([]menu.MenuOption, 0, len(cameraDevices)+1)
	for _, dev := range append(append([]int(nil), cameraDevices...), -1) {
		device := dev
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				a.cameraPicked = true
				a.selectCamera(device)
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, cameraLabel(device))
				if device == a.state.CameraDevice() {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(180)
	return drop
}

// syncSliders pulls the placement into sliders the user is not dragging.
func (a *App) syncSliders(s overlay.Snapshot) {
	if !a.opacitySlider.Dragging() {
		a.opacitySlider.Value = opacityRange.position(s.Opacity)
	}
	if !a.scaleSlider.Dragging() {
		a.scaleSlider.Value = scaleRange.position(s.Scale)
	}
	if !a.rotationSlider.Dragging() {
		a.rotationSlider.Value = rotationRange.position(s.Rotation)
	}
	a.mirrorSwitch.Value = s.Mirrored
}

// handleControls applies widget interactions from the previous frame.
func (a *App) handleControls(gtx layout.Context) {
	if a.openBtn.Clicked(gtx) {
		a.openPicker()
	}
	if a.fullscreenBtn.Clicked(gtx) {
		a.setFullscreen(!a.state.Fullscreen())
	}
	if a.resetBtn.Clicked(gtx) {
		a.ctrl.Reset()
		a.Logf("[STATE] reset from controls")
	}
	if a.refitBtn.Clicked(gtx) {
		a.refit()
	}
	if a.debugToggleBtn.Clicked(gtx) {
		a.setShowDebug(!a.state.ShowDebug())
	}
	if a.hideDebugBtn.Clicked(gtx) {
		a.setShowDebug(false)
	}
	if a.cameraBtn.Clicked(gtx) {
		a.cameraMenu.ToggleVisibility(gtx)
	}
	if a.opacitySlider.Update(gtx) {
		a.ctrl.SetOpacity(opacityRange.value(a.opacitySlider.Value))
	}
	if a.scaleSlider.Update(gtx) {
		a.ctrl.SetScale(scaleRange.value(a.scaleSlider.Value))
	}
	if a.rotationSlider.Update(gtx) {
		a.ctrl.SetRotation(rotationRange.value(a.rotationSlider.Value))
	}
	if a.mirrorSwitch.Update(gtx) {
		a.ctrl.SetMirrored(a.mirrorSwitch.Value)
	}
}

var (
	barBackground = color.NRGBA{R: 20, G: 22, B: 30, A: 200}
	barText       = color.NRGBA{R: 235, G: 238, B: 245, A: 255}
)

func (a *App) layoutBar(gtx layout.Context, body layout.Widget) layout.Dimensions {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, barBackground, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return layout.Inset{
				Left: unit.Dp(12), Right: unit.Dp(12), Top: unit.Dp(6), Bottom: unit.Dp(6),
			}.Layout(gtx, body)
		}),
	)
}

func (a *App) layoutControls(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	th := a.gvTheme.Theme
	fullscreenIcon := a.icons.fullscreen
	if state.Fullscreen {
		fullscreenIcon = a.icons.fullscreenExit
	}
	debugIcon := a.icons.visibility
	if state.ShowDebug {
		debugIcon = a.icons.visibilityOff
	}

	return a.layoutBar(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(a.iconButton(&a.openBtn, a.icons.open, "Open image")),
			layout.Rigid(a.iconButton(&a.fullscreenBtn, fullscreenIcon, "Toggle fullscreen")),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Flexed(1, a.labeledSlider("Opacity", &a.opacitySlider)),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Flexed(1, a.labeledSlider("Scale", &a.scaleSlider)),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Flexed(1, a.labeledSlider("Rotate", &a.rotationSlider)),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						if a.icons.mirror == nil {
							return layout.Dimensions{}
						}
						size := gtx.Dp(unit.Dp(20))
						gtx.Constraints.Min.X = size
						gtx.Constraints.Max.X = size
						return a.icons.mirror.Layout(gtx, barText)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
					layout.Rigid(material.Switch(th, &a.mirrorSwitch, "Mirror").Layout),
				)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Rigid(a.iconButton(&a.refitBtn, a.icons.refit, "Fit image")),
			layout.Rigid(a.iconButton(&a.resetBtn, a.icons.reset, "Reset")),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				btn := material.Button(th, &a.cameraBtn, cameraLabel(state.CameraDevice))
				btn.Inset = layout.UniformInset(unit.Dp(6))
				dims := btn.Layout(gtx)
				a.cameraMenu.Layout(gtx, a.gvTheme)
				return dims
			}),
			layout.Rigid(a.iconButton(&a.debugToggleBtn, debugIcon, "Toggle debug bar")),
		)
	})
}

func (a *App) layoutDebugBar(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	th := a.gvTheme.Theme
	line := debugLine(a.ctrl.Snapshot(), state.StreamActive)
	status := state.Status
	if state.LastError != nil {
		status = fmt.Sprintf("%s (%v)", status, state.LastError)
	}
	last := ""
	if n := len(state.Logs); n > 0 {
		last = state.Logs[n-1]
	}

	return a.layoutBar(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(a.caption(line)),
					layout.Rigid(layout.Spacer{Width: unit.Dp(18)}.Layout),
					layout.Rigid(a.caption("Gesture: "+a.ctrl.Mode().String())),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return layout.Dimensions{}
					}),
					layout.Rigid(a.caption(status)),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						btn := material.Button(th, &a.hideDebugBtn, "Hide")
						btn.Inset = layout.UniformInset(unit.Dp(4))
						return btn.Layout(gtx)
					}),
				)
			}),
			layout.Rigid(a.caption(last)),
		)
	})
}

func (a *App) caption(txt string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		lbl := material.Caption(a.gvTheme.Theme, txt)
		lbl.Color = barText
		return lbl.Layout(gtx)
	}
}

func (a *App) labeledSlider(label string, f *widget.Float) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(a.caption(label)),
			layout.Rigid(material.Slider(a.gvTheme.Theme, f).Layout),
		)
	}
}

func (a *App) iconButton(click *widget.Clickable, icon *widget.Icon, desc string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		if icon == nil {
			btn := material.Button(a.gvTheme.Theme, click, desc)
			btn.Inset = layout.UniformInset(unit.Dp(6))
			return btn.Layout(gtx)
		}
		btn := material.IconButton(a.gvTheme.Theme, click, icon, desc)
		btn.Size = unit.Dp(20)
		btn.Inset = layout.UniformInset(unit.Dp(8))
		return btn.Layout(gtx)
	}
}
