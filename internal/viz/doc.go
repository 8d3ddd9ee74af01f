// Package viz renders a cloth in the terminal with Bubble Tea.
//
//   - [Model]: live viewer of one cloth with an orbit camera and stats panel
//   - [Canvas]: braille canvas, 2x4 dots per cell
//   - [Camera]: perspective orbit camera with [Camera.ScreenRay] for picking
//   - [RunInteractive]: preset menu and parameter editor in front of the viewer
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Rebuild the cloth
//	W     - Toggle wind
//	HJKL  - Orbit (arrow keys also work)
//	+/-   - Zoom
//	G     - Grab through the centre of the view, again to release
//	[ ]   - Replay recorded frames
//	T     - Cycle themes
//	S     - Save the canvas as SVG
//
// Dragging with the left mouse button pulls the particle under the cursor.
package viz
