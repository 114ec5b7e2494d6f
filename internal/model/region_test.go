package model

import (
	"encoding/json"
	"testing"
)

// TestRegions tests region ordering.
func TestRegions(t *testing.T) {
	t.Parallel()

	t.Run("regions are in display order", func(t *testing.T) {
		t.Parallel()

		got := Regions()
		want := []Region{RegionTitle, RegionH1, RegionH2, RegionBody}
		if len(got) != len(want) {
			t.Fatalf("expected %d regions, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("region %d: expected %q, got %q", i, want[i], got[i])
			}
		}
	})
}

// TestRegionMap tests Get/Set and serialization of RegionMap.
func TestRegionMap(t *testing.T) {
	t.Parallel()

	t.Run("set then get each region", func(t *testing.T) {
		t.Parallel()

		var m RegionMap[int]
		for i, r := range Regions() {
			m.Set(r, i+1)
		}
		for i, r := range Regions() {
			if got := m.Get(r); got != i+1 {
				t.Errorf("region %s: expected %d, got %d", r, i+1, got)
			}
		}
	})

	t.Run("unknown region returns zero value", func(t *testing.T) {
		t.Parallel()

		m := RegionMap[string]{Title: "t"}
		m.Set(Region("footer"), "ignored")
		if got := m.Get(Region("footer")); got != "" {
			t.Errorf("expected empty value, got %q", got)
		}
	})

	t.Run("serializes with region keys", func(t *testing.T) {
		t.Parallel()

		m := RegionMap[int]{Title: 1, H1: 2, H2: 3, Body: 4}
		data, err := json.Marshal(m)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		want := `{"title":1,"h1":2,"h2":3,"body":4}`
		if string(data) != want {
			t.Errorf("expected %s, got %s", want, data)
		}
	})
}
