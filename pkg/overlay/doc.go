// Package overlay implements the placement model for a reference image laid
// over a live camera feed.
//
// The package is split into three cooperating pieces:
//   - State: the authoritative placement record (scale, position, rotation,
//     mirror flag, opacity) together with its clamping policy.
//   - Interpreter: a small state machine turning multi-touch contact updates
//     into pan and pinch changes of State.
//   - ComputeInitialFit: the contain-style scale used when a new image is loaded.
//
// Controller wires the three together and is the surface used by the UI,
// the touch script player and the command line.
//
// # Usage
//
//	ctrl := overlay.NewController()
//	ctrl.SetViewport(800, 600)
//	if err := ctrl.ImageLoaded(400, 600); err != nil {
//		// reject the file, placement is unchanged
//	}
//
//	ctrl.ContactsChanged([]overlay.Contact{{ID: 1, X: 100, Y: 100}})
//	ctrl.ContactsMoved([]overlay.Contact{{ID: 1, X: 120, Y: 140}})
//	ctrl.ContactsEnded()
//
//	snap := ctrl.Snapshot() // read by the renderer every frame
//
// Gestures only ever change scale and position. Rotation, mirroring and
// opacity are manual controls.
//
// Nothing in this package is safe for concurrent use; every call is expected
// on the goroutine delivering input events.
package overlay
