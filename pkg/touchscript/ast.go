package touchscript

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Script is a parsed touch script.
type Script struct {
	Statements []*Statement `@@*`
}

// Statement is one script command. Exactly one field is set.
type Statement struct {
	Pos lexer.Position

	Viewport *ViewportSize `  "viewport" @@`
	Image    *ImageSize    `| "image" @@`
	Down     *Touch        `| "down" @@`
	Move     *Touch        `| "move" @@`
	Up       *Lift         `| "up" @@`
	Cancel   bool          `| @"cancel"`
	Reset    bool          `| @"reset"`
	Mirror   bool          `| @"mirror"`
	Set      *Setting      `| "set" @@`
	Expect   *Expectation  `| "expect" @@`
}

// ViewportSize sets the viewport used by later image loads.
type ViewportSize struct {
	Width  float64 `@Number`
	Height float64 `@Number`
}

// ImageSize simulates loading an image with the given natural size.
type ImageSize struct {
	Width  int `@Number`
	Height int `@Number`
}

// Touch places or moves a contact.
type Touch struct {
	ID int     `@Number`
	X  float64 `@Number`
	Y  float64 `@Number`
}

// Lift removes a contact.
type Lift struct {
	ID int `@Number`
}

// Setting drives a manual control.
type Setting struct {
	Field string  `@( "opacity" | "scale" | "rotation" )`
	Value float64 `@Number`
}

// Expectation asserts on the controller state.
type Expectation struct {
	Mode     *string   `  "mode" @( "none" | "panning" | "pinching" )`
	Scale    *float64  `| "scale" @Number`
	Opacity  *float64  `| "opacity" @Number`
	Rotation *float64  `| "rotation" @Number`
	Mirrored *string   `| "mirrored" @( "on" | "off" )`
	Position *Position `| "position" @@`
}

// Position is an expected translation.
type Position struct {
	X float64 `@Number`
	Y float64 `@Number`
}
