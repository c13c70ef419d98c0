package domain

import (
	"testing"
	"time"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    Filter
		wantErr bool
	}{
		{input: "", want: FilterAll},
		{input: "all", want: FilterAll},
		{input: "RECENT", want: FilterRecent},
		{input: " temp ", want: FilterTemp},
		{input: "projects", want: FilterProjects},
		{input: "trails", want: FilterTrails},
		{input: "topics", want: FilterTopics},
		{input: "modes", want: FilterModes},
		{input: "tags", want: FilterTags},
		{input: "context", want: FilterContext},
		{input: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFilter(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilter_AnchorID(t *testing.T) {
	for _, a := range Anchors {
		id, ok := a.Filter.AnchorID()
		if !ok || id != a.ID {
			t.Errorf("%s: expected anchor %s, got %q", a.Filter, a.ID, id)
		}
	}

	for _, f := range []Filter{FilterAll, FilterRecent, FilterTemp, FilterContext} {
		if f.IsAnchored() {
			t.Errorf("%s should not be anchored", f)
		}
	}
}

func TestFilter_MatchesRoot(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	fresh := Node{LastAccessed: now.Add(-24 * time.Hour)}
	stale := Node{LastAccessed: now.Add(-8 * 24 * time.Hour)}
	temp := Node{Temp: true, LastAccessed: stale.LastAccessed}

	if !FilterRecent.MatchesRoot(fresh, now) {
		t.Error("node accessed yesterday should be recent")
	}
	if FilterRecent.MatchesRoot(stale, now) {
		t.Error("node accessed 8 days ago should not be recent")
	}
	if !FilterTemp.MatchesRoot(temp, now) || FilterTemp.MatchesRoot(fresh, now) {
		t.Error("temp filter should match only temp nodes")
	}
	if !FilterAll.MatchesRoot(stale, now) {
		t.Error("all filter should match every node")
	}
}
