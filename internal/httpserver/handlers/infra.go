package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	ReelsLoaded *int   `json:"reels_loaded,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	Source      string `json:"source,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Target      string `json:"target,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	State      string                     `json:"state"`
	Adapter    string                     `json:"adapter"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the persistence setup and collection freshness.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.Store.Count()
		lastReload := d.Store.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"collection": {
				OK:          !lastReload.IsZero(),
				ReelsLoaded: &count,
				LastReload:  lastReloadStr,
				Source:      d.Store.Source(),
			},
			"persistence": {
				OK:     true,
				Mode:   d.Mode,
				Target: d.BackendURL,
			},
		}
		if d.Substrate != nil {
			components["redis"] = checkSubstrate(r.Context(), d.Substrate)
		}

		writeJSON(w, d, http.StatusOK, infraResponse{
			State:      overallState(components),
			Adapter:    d.Store.AdapterName(),
			Components: components,
		})
	}
}

func overallState(components map[string]componentStatus) string {
	if c := components["collection"]; !c.OK {
		return "critical" // nothing loaded yet
	}
	if c, ok := components["redis"]; ok && !c.OK {
		return "degraded" // serving the last loaded collection, writes will fail
	}
	return "ok"
}

func checkSubstrate(ctx context.Context, p deps.Pinger) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	return componentStatus{OK: true}
}
