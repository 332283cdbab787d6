package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"github.com/cours-de-latin/escansion"
	"github.com/cours-de-latin/escansion/internal/api"
	"github.com/cours-de-latin/escansion/internal/config"
	"github.com/cours-de-latin/escansion/internal/conllu"
)

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func handleScan(s *escansion.Scanner, defaults escansion.Options, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body api.ScanRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
		if err := dec.Decode(&body); err != nil || body.Text == "" {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
			return
		}

		stanzas, err := s.ScanText(r.Context(), body.Text, body.Options.Apply(defaults))
		switch {
		case errors.Is(err, escansion.ErrBadOption), errors.Is(err, conllu.ErrFormat):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			slog.ErrorContext(r.Context(), "scan failed",
				slog.String("request_id", requestID(r)),
				slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "scan failed")
			return
		}
		writeJSON(w, http.StatusOK, api.ToScanResponse(stanzas))
	}
}

func handleSyllabify(s *escansion.Scanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		if !escansion.IsAlphabetic(word) {
			writeError(w, http.StatusBadRequest, "'word' must contain only letters")
			return
		}
		writeJSON(w, http.StatusOK, api.ToSyllabifyResponse(word, s.Syllabify(word)))
	}
}

func handleStructures() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, http.StatusOK, api.ToStructuresResponse(escansion.Catalog()))
	}
}

// ---- wiring -------------------------------------------------------------

func newHandler(s *escansion.Scanner, cfg *config.Config, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/scan", handleScan(s, cfg.Scan.Options(), cfg.Server.MaxBodyBytes))
	mux.HandleFunc("/api/syllabify", handleSyllabify(s))
	mux.HandleFunc("/api/structures", handleStructures())

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.Origins(),
		AllowedMethods: cfg.CORS.Methods(),
		AllowedHeaders: cfg.CORS.Headers(),
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         cfg.CORS.MaxAge,
	})
	return withRequestID(withLogging(logger, c.Handler(mux)))
}
