package main

import (
	"encoding/json"
	"net/http"

	"github.com/samthor/treegrid/gridserve"
	"github.com/samthor/treegrid/internal/logger"
)

type statusFunc func(*http.Request) (any, error)

// jsonHandler serves whatever fn returns as JSON. Errors become a bare 500.
func jsonHandler(log logger.Logger, fn statusFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := fn(r)
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			err = json.NewEncoder(w).Encode(out)
			if err == nil {
				return
			}
		}
		log.WarnCtx(r.Context(), "status failed", "path", r.URL.Path, "err", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

type status struct {
	Attached int `json:"attached"`
	Detached int `json:"detached"`
}

func serverStatus(s *gridserve.Server) statusFunc {
	return func(*http.Request) (any, error) {
		return status{Attached: s.Attached(), Detached: s.Detached()}, nil
	}
}
