package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/atshaw/quill/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	StoreOK       bool    `json:"store_ok"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
	Commit        string  `json:"commit,omitempty"`
	BuildDate     string  `json:"build_date,omitempty"`
	GoVersion     string  `json:"go_version,omitempty"`
}

func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	now := d.TimeNow
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		storeOK := false
		if d.RedisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			storeOK = d.RedisClient.Ping(ctx).Err() == nil
			cancel()
		}

		status := "ok"
		if !storeOK {
			status = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(healthzResponse{
			Status:        status,
			StoreOK:       storeOK,
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
			UptimeSeconds: now().Sub(start).Seconds(),
		})
	}
}
