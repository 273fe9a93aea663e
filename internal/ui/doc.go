// Package ui implements the interactive marking interface.
//
// The TUI mirrors the original tool's page: a video pane with draggable
// horizontal reference guides, a timeline with markers, readouts for the
// current measurement, and list views for history and user profiles. mpv
// renders the actual video in its own window; this interface owns the
// controls and the measurement state.
//
// Views:
//   - [MarkView] : playback control, frame stepping, take-off/landing marks
//   - [HistoryView] : the current user's saved jumps (bubbles/list)
//   - [UserListView] : switch between local profiles
//   - [NewUserView] : create a profile (bubbles/textinput)
package ui
