// Package touchscript parses and replays recorded touch sessions against an
// overlay.Controller.
//
// A script is line oriented; '#' starts a comment:
//
//	viewport 800 600
//	image 400 600
//	down 1 100 100
//	move 1 140 130
//	down 2 340 130
//	move 2 440 130
//	up 2
//	up 1
//	expect scale 1.5
//	expect position 40 30
//	expect mode none
//
// Contacts are kept in press order, so the first finger down is always the
// first point handed to the gesture interpreter.
package touchscript
