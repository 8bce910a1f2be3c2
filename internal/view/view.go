// Package view projects the reel collection into what the admin panel shows:
// a filtered table and the four counters.
package view

import (
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
)

// Placeholder messages shown instead of an empty table.
const (
	NoResults = "No results found"
	NoReels   = "No reels yet"
)

// Row is one displayable reel.
type Row struct {
	ID          int64         `json:"id"`
	Link        string        `json:"reel_link"`
	Keyword     string        `json:"comment_keyword"`
	Reward      string        `json:"reward,omitempty"`
	Status      domain.Status `json:"status"`
	Active      bool          `json:"active"`
	ToggleLabel string        `json:"toggle_label"`
}

// IDString is used by templates to build form actions.
func (r Row) IDString() string { return strconv.FormatInt(r.ID, 10) }

// Table is the rendered reel table. Placeholder is set only when Rows is empty.
type Table struct {
	Query       string `json:"query,omitempty"`
	Rows        []Row  `json:"rows"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Empty reports whether the placeholder should be displayed.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Page is everything the admin page needs.
type Page struct {
	Table Table        `json:"table"`
	Stats domain.Stats `json:"stats"`
	Flash string       `json:"flash,omitempty"`
}

// Render turns an already filtered collection into a table.
func Render(filtered []domain.Reel, query string) Table {
	query = strings.TrimSpace(query)
	t := Table{
		Query: query,
		Rows:  make([]Row, 0, len(filtered)),
	}

	for _, r := range filtered {
		t.Rows = append(t.Rows, toRow(r))
	}

	if len(t.Rows) == 0 {
		if query != "" {
			t.Placeholder = NoResults
		} else {
			t.Placeholder = NoReels
		}
	}
	return t
}

// Build filters the full collection by query and renders it. Stats are
// always computed on the full collection.
func Build(all []domain.Reel, query string) Page {
	return Page{
		Table: Render(domain.Filter(all, query), query),
		Stats: domain.ComputeStats(all),
	}
}

func toRow(r domain.Reel) Row {
	row := Row{
		ID:      r.ID,
		Link:    r.Link,
		Keyword: r.Keyword,
		Reward:  r.Reward,
		Status:  r.Status,
		Active:  r.IsActive(),
	}
	if row.Active {
		row.ToggleLabel = "Disable"
	} else {
		row.ToggleLabel = "Enable"
	}
	return row
}
