// Package models defines the domain entities for jump measurement.
//
// Two categories of types live here:
//
// 1. Persistent entities, serialized as JSON arrays into local storage:
//   - [UserProfile] : a local profile jump records are saved against
//   - [JumpRecord] : one saved measurement (height + flight time)
//
// 2. Transient timeline annotations owned by a single editing session:
//   - [VideoMarker] : a labeled timestamp bookmark on the video timeline
//
// Persisted entities carry camelCase JSON tags; the storage format is the
// same JSON the original web tool wrote, so existing exports stay readable.
package models
