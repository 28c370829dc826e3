package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/clickshare"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/fleet"
)

// RegisterAPI wires the device endpoints onto the mux.
//
//	GET  /api/devices                  list registered devices
//	GET  /api/devices/{name}/snapshot  latest statistics and controls
//	POST /api/devices/{name}/control   dispatch one control request
//	POST /api/devices/{name}/controls  dispatch a batch of control requests
func RegisterAPI(mux *http.ServeMux, registry *fleet.Registry) {
	mux.HandleFunc("GET /api/devices", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, registry.Summaries())
	})

	mux.HandleFunc("GET /api/devices/{name}/snapshot", func(w http.ResponseWriter, r *http.Request) {
		member, ok := registry.Get(r.PathValue("name"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown device")
			return
		}

		// Serve the snapshot from the poll loop when one exists; poll on
		// demand only before the first cycle has completed.
		snap, polledAt := member.LastSnapshot()
		if snap == nil {
			var err error
			snap, err = member.Poll(r.Context())
			if err != nil {
				writeError(w, http.StatusBadGateway, err.Error())
				return
			}
			_, polledAt = member.LastSnapshot()
		}

		writeJSON(w, http.StatusOK, snapshotResponse{
			Device:   member.Name(),
			PolledAt: polledAt,
			Snapshot: snap,
		})
	})

	mux.HandleFunc("POST /api/devices/{name}/control", func(w http.ResponseWriter, r *http.Request) {
		member, ok := registry.Get(r.PathValue("name"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown device")
			return
		}

		var req clickshare.ControlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Property == "" {
			writeError(w, http.StatusBadRequest, "property is required")
			return
		}

		if err := member.Control(r.Context(), req); err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
	})

	mux.HandleFunc("POST /api/devices/{name}/controls", func(w http.ResponseWriter, r *http.Request) {
		member, ok := registry.Get(r.PathValue("name"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown device")
			return
		}

		var reqs []clickshare.ControlRequest
		if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := member.ControlBatch(r.Context(), reqs)
		switch {
		case errors.Is(err, clickshare.ErrEmptyControlBatch):
			writeError(w, http.StatusBadRequest, err.Error())
		case err != nil:
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
		}
	})
}

type snapshotResponse struct {
	Device   string               `json:"device"`
	PolledAt time.Time            `json:"polled_at"`
	Snapshot *clickshare.Snapshot `json:"snapshot"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Printf("clickshare api: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Error: message})
}
