package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
)

var sample = []domain.Reel{
	{ID: 1, Link: "http://a.co", Keyword: "FOO", Status: domain.StatusActive},
	{ID: 2, Link: "http://b.co", Keyword: "BAR", Reward: "ebook", Status: domain.StatusInactive},
}

func TestRenderPlaceholder(t *testing.T) {
	tests := []struct {
		name  string
		reels []domain.Reel
		query string
		want  string
	}{
		{"empty collection no query", nil, "", NoReels},
		{"blank query counts as none", nil, "   ", NoReels},
		{"empty result with query", nil, "bar", NoResults},
		{"rows present", sample[:1], "foo", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.reels, tt.query)
			if got.Placeholder != tt.want {
				t.Errorf("Placeholder = %q, want %q", got.Placeholder, tt.want)
			}
			if got.Empty() != (tt.want != "") {
				t.Errorf("Empty() = %v", got.Empty())
			}
		})
	}
}

func TestRenderRows(t *testing.T) {
	got := Render(sample, "")

	want := []Row{
		{ID: 1, Link: "http://a.co", Keyword: "FOO", Status: domain.StatusActive, Active: true, ToggleLabel: "Disable"},
		{ID: 2, Link: "http://b.co", Keyword: "BAR", Reward: "ebook", Status: domain.StatusInactive, ToggleLabel: "Enable"},
	}
	if diff := cmp.Diff(want, got.Rows); diff != "" {
		t.Errorf("Render() rows mismatch (-want +got):\n%s", diff)
	}
	if got.Rows[0].IDString() != "1" {
		t.Errorf("IDString() = %q", got.Rows[0].IDString())
	}
}

func TestBuildScenario(t *testing.T) {
	coll := []domain.Reel{{ID: 1, Link: "http://a.co", Keyword: "FOO", Status: domain.StatusActive}}

	hit := Build(coll, "foo")
	if len(hit.Table.Rows) != 1 || hit.Table.Rows[0].ID != 1 {
		t.Fatalf("Build(foo) rows = %+v", hit.Table.Rows)
	}

	miss := Build(coll, "bar")
	if len(miss.Table.Rows) != 0 || miss.Table.Placeholder != NoResults {
		t.Errorf("Build(bar) = %+v, want empty table with %q", miss.Table, NoResults)
	}
	// Counters ignore the filter
	if miss.Stats.Total != 1 || miss.Stats.Active != 1 {
		t.Errorf("Build(bar) stats = %+v", miss.Stats)
	}
}
