package domain

import "strings"

// Stats holds the four aggregate counters shown above the table.
type Stats struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Inactive   int `json:"inactive"`
	WithReward int `json:"with_reward"`
}

// Filter returns the reels whose link, keyword or reward contains query,
// case-insensitively. An empty (or blank) query returns every reel.
// The input slice is never modified and order is preserved.
func Filter(reels []Reel, query string) []Reel {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Reel, 0, len(reels))
	if q == "" {
		return append(out, reels...)
	}

	for _, r := range reels {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Reel, q string) bool {
	if strings.Contains(strings.ToLower(r.Link), q) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Keyword), q) {
		return true
	}
	// Reels without a reward never match on it
	return r.Reward != "" && strings.Contains(strings.ToLower(r.Reward), q)
}

// ComputeStats counts the full, unfiltered collection.
func ComputeStats(reels []Reel) Stats {
	st := Stats{Total: len(reels)}
	for _, r := range reels {
		if r.IsActive() {
			st.Active++
		}
		if r.HasReward() {
			st.WithReward++
		}
	}
	st.Inactive = st.Total - st.Active
	return st
}

// Dedupe drops reels whose ID was already seen, keeping the first one.
// It returns the cleaned slice and the number of dropped duplicates.
func Dedupe(reels []Reel) ([]Reel, int) {
	seen := make(map[int64]bool, len(reels))
	out := make([]Reel, 0, len(reels))
	for _, r := range reels {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out, len(reels) - len(out)
}
