package session

import (
	"sort"
	"testing"
)

func TestMarkersStaySorted(t *testing.T) {
	m := NewMarkers()
	for _, tt := range []float64{5.0, 1.0, 3.0, 2.0, 4.0} {
		m.Add(tt, "")
	}

	all := m.All()
	if !sort.SliceIsSorted(all, func(i, j int) bool { return all[i].Time < all[j].Time }) {
		t.Errorf("markers not sorted ascending: %+v", all)
	}
	if len(all) != 5 {
		t.Errorf("expected 5 markers, got %d", len(all))
	}
}

func TestMarkersRemove(t *testing.T) {
	m := NewMarkers()
	first := m.Add(1.0, "a")
	m.Add(2.0, "b")

	m.Remove(first.ID)
	if m.Len() != 1 {
		t.Fatalf("expected 1 marker, got %d", m.Len())
	}
	if m.All()[0].Label != "b" {
		t.Errorf("wrong marker removed")
	}

	// Unknown IDs are ignored.
	m.Remove("nope")
	if m.Len() != 1 {
		t.Errorf("remove of unknown id changed the collection")
	}
}

func TestMarkersSeekTargets(t *testing.T) {
	m := NewMarkers()
	m.Add(1.0, "one")
	m.Add(2.0, "two")
	m.Add(3.0, "three")

	t.Run("next from between", func(t *testing.T) {
		marker, ok := m.Next(1.5)
		if !ok || marker.Label != "two" {
			t.Errorf("Next(1.5) = %+v, %v", marker, ok)
		}
	})

	t.Run("next skips the marker at the current position", func(t *testing.T) {
		marker, ok := m.Next(2.0)
		if !ok || marker.Label != "three" {
			t.Errorf("Next(2.0) = %+v, %v", marker, ok)
		}
	})

	t.Run("no next past the end", func(t *testing.T) {
		if _, ok := m.Next(3.0); ok {
			t.Error("expected no marker after the last one")
		}
	})

	t.Run("prev from between", func(t *testing.T) {
		marker, ok := m.Prev(2.5)
		if !ok || marker.Label != "two" {
			t.Errorf("Prev(2.5) = %+v, %v", marker, ok)
		}
	})

	t.Run("no prev before the start", func(t *testing.T) {
		if _, ok := m.Prev(1.0); ok {
			t.Error("expected no marker before the first one")
		}
	})

	t.Run("nearest", func(t *testing.T) {
		marker, ok := m.Nearest(2.2)
		if !ok || marker.Label != "two" {
			t.Errorf("Nearest(2.2) = %+v, %v", marker, ok)
		}
	})
}

func TestMarkersClear(t *testing.T) {
	m := NewMarkers()
	m.Add(1.0, "")
	m.Add(2.0, "")

	m.Clear()
	if m.Len() != 0 {
		t.Errorf("expected empty collection after clear, got %d", m.Len())
	}
	if _, ok := m.Nearest(1.0); ok {
		t.Error("expected no nearest marker after clear")
	}
}
