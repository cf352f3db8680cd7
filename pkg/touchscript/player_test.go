package touchscript

import (
	"errors"
	"testing"

	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay"
)

func play(t *testing.T, src string) (*overlay.Controller, error) {
	t.Helper()
	script, err := mustParser(t).ParseString(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	ctrl := overlay.NewController()
	return ctrl, Play(ctrl, script)
}

func TestPlayFitExamples(t *testing.T) {
	_, err := play(t, `
viewport 800 600
image 400 600
expect scale 1
image 1200 400
expect scale 0.6666666667
`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestPlayContactSequence(t *testing.T) {
	_, err := play(t, `
viewport 800 600
image 400 600
expect mode none

down 1 100 100          # 0 -> 1
expect mode panning
move 1 140 130
expect position 40 30

down 2 240 130          # 1 -> 2, pinch at distance 100
expect mode pinching
move 2 290 130
expect scale 1.5
expect position 40 30

up 1                    # 2 -> 1, fresh anchor at the live position
expect mode panning
move 2 300 140
expect position 50 40
expect scale 1.5

up 2                    # 1 -> 0
expect mode none
move 2 0 0
expect position 50 40
`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestPlayPinchReversible(t *testing.T) {
	_, err := play(t, `
set scale 2
down 1 0 0
down 2 100 0
move 2 400 0
expect scale 5
move 2 100 0
expect scale 2
cancel
expect mode none
`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestPlayResetAndManual(t *testing.T) {
	_, err := play(t, `
viewport 800 600
image 1200 400
set opacity 0.9
set rotation 270
expect rotation 180
mirror
expect mirrored on
reset
expect scale 1
expect opacity 0.5
expect rotation 0
expect mirrored off
expect position 0 0
`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestPlayExpectationFailure(t *testing.T) {
	_, err := play(t, "set scale 2\n\nexpect scale 3\n")
	var expErr *ExpectationError
	if !errors.As(err, &expErr) {
		t.Fatalf("error = %v, want *ExpectationError", err)
	}
	if expErr.Line != 3 || expErr.What != "scale" {
		t.Errorf("unexpected failure details: %+v", expErr)
	}
}

func TestPlayImageFitError(t *testing.T) {
	ctrl, err := play(t, "viewport 800 600\nimage 400 600\nimage 0 600\n")
	if !errors.Is(err, overlay.ErrInvalidDimensions) {
		t.Fatalf("error = %v, want ErrInvalidDimensions", err)
	}
	if got := ctrl.Snapshot().ImageSize; got != (overlay.Size{Width: 400, Height: 600}) {
		t.Errorf("image size = %v after rejected load", got)
	}
}

func TestPlayIgnoresUnknownContacts(t *testing.T) {
	_, err := play(t, `
move 7 100 100
up 7
expect mode none
expect position 0 0
`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestPlayerStepCallback(t *testing.T) {
	script, err := mustParser(t).ParseString("down 1 0 0\nmove 1 10 0\nup 1\n")
	if err != nil {
		t.Fatal(err)
	}
	var modes []overlay.Mode
	p := NewPlayer(overlay.NewController())
	p.Step = func(_ *Statement, _ overlay.Snapshot, mode overlay.Mode) {
		modes = append(modes, mode)
	}
	if err := p.Play(script); err != nil {
		t.Fatal(err)
	}
	want := []overlay.Mode{overlay.ModePanning, overlay.ModePanning, overlay.ModeNone}
	if len(modes) != len(want) {
		t.Fatalf("got %d steps, want %d", len(modes), len(want))
	}
	for i := range want {
		if modes[i] != want[i] {
			t.Errorf("step %d mode = %v, want %v", i, modes[i], want[i])
		}
	}
	if len(p.Contacts()) != 0 {
		t.Errorf("contacts left after up: %v", p.Contacts())
	}
}
