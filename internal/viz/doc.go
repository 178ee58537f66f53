// Package viz renders orbit timelines in the terminal.
//
//   - [Canvas]: Braille pixel canvas with line and circle drawing
//   - [Player]: Bubble Tea model that replays a timeline
//   - [RenderSummary]: lipgloss panel describing a finished run
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	[ ]   - Step backward/forward
//	+ -   - Change playback speed
//	R     - Rewind
//	T     - Cycle color themes
//	Q     - Quit
package viz
