package session

import (
	"sort"

	"github.com/jumptools/airtime/internal/models"
	"github.com/jumptools/airtime/internal/shared"
)

// seekEpsilon treats two timestamps within half a millisecond as the same
// instant so "next marker" from a marker's own position skips past it.
const seekEpsilon = 0.0005

// Markers is an ordered collection of timeline bookmarks, kept sorted
// ascending by time. Markers are independent of the jump measurement.
type Markers struct {
	items []models.VideoMarker
}

// NewMarkers returns an empty marker collection.
func NewMarkers() *Markers {
	return &Markers{}
}

// Add inserts a marker at the given time, preserving sort order, and
// returns the created marker.
func (m *Markers) Add(t float64, label string) models.VideoMarker {
	marker := models.VideoMarker{
		ID:    shared.GenerateID(),
		Time:  t,
		Label: label,
	}

	idx := sort.Search(len(m.items), func(i int) bool {
		return m.items[i].Time > t
	})
	m.items = append(m.items, models.VideoMarker{})
	copy(m.items[idx+1:], m.items[idx:])
	m.items[idx] = marker

	return marker
}

// Remove deletes the marker with the given ID. Unknown IDs are ignored.
func (m *Markers) Remove(id string) {
	for i, marker := range m.items {
		if marker.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return
		}
	}
}

// Clear drops all markers. Called whenever a new video is loaded.
func (m *Markers) Clear() {
	m.items = nil
}

// All returns the markers in ascending time order. The returned slice is a
// copy; mutating it does not affect the collection.
func (m *Markers) All() []models.VideoMarker {
	out := make([]models.VideoMarker, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of markers.
func (m *Markers) Len() int {
	return len(m.items)
}

// Next returns the first marker strictly after t.
func (m *Markers) Next(t float64) (models.VideoMarker, bool) {
	for _, marker := range m.items {
		if marker.Time > t+seekEpsilon {
			return marker, true
		}
	}
	return models.VideoMarker{}, false
}

// Prev returns the last marker strictly before t.
func (m *Markers) Prev(t float64) (models.VideoMarker, bool) {
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].Time < t-seekEpsilon {
			return m.items[i], true
		}
	}
	return models.VideoMarker{}, false
}

// Nearest returns the marker closest to t.
func (m *Markers) Nearest(t float64) (models.VideoMarker, bool) {
	if len(m.items) == 0 {
		return models.VideoMarker{}, false
	}

	best := m.items[0]
	bestDist := dist(best.Time, t)
	for _, marker := range m.items[1:] {
		if d := dist(marker.Time, t); d < bestDist {
			best = marker
			bestDist = d
		}
	}
	return best, true
}

func dist(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
