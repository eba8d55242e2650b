// Package http exposes the ledger over a small JSON API: one command
// endpoint mirroring the admin console, a statistics endpoint, and health.
package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"uchet/internal/core"
	"uchet/internal/log"
	"uchet/internal/services"
)

type Server struct {
	http.Server
	ledger    *services.Ledger
	authToken string
	logger    *log.Logger
}

type (
	commandRequest struct {
		Command string `json:"command"`
	}
	commandResponse struct {
		Reply string `json:"reply"`
	}
)

// NewServer configures routes, returning a ready-to-run http.Server. An
// empty authToken disables the bearer gate, for local use only.
func NewServer(addr string, ledger *services.Ledger, authToken string, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:           addr,
			Handler:        mux,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		ledger:    ledger,
		authToken: authToken,
		logger:    logger.WithComponent(log.ComponentHTTP),
	}

	mux.HandleFunc("/command", s.withAuth(s.handleCommand))
	mux.HandleFunc("/stats", s.withAuth(s.handleStats))
	mux.HandleFunc("/healthz", handleHealth)

	return s
}

// withAuth checks the bearer token and logs every request with its outcome.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		if !s.authorized(r) {
			rw.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(rw).Encode(commandResponse{Reply: "unauthorized"})
		} else {
			next(rw, r)
		}

		s.logger.InfoContext(r.Context(), "Request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatus, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

func (s *Server) authorized(r *http.Request) bool {
	if s.authToken == "" {
		return true
	}
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) == 1
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Command) == "" {
		writeReply(w, http.StatusBadRequest, "empty command")
		return
	}

	res, err := s.ledger.Execute(r.Context(), req.Command)
	if err != nil {
		status := http.StatusInternalServerError
		if IsUserError(err) {
			status = http.StatusUnprocessableEntity
		} else {
			s.logger.ErrorContext(r.Context(), "Command failed",
				log.FieldError, err, log.FieldLine, req.Command)
		}
		writeReply(w, status, FormatError(err))
		return
	}

	writeReply(w, http.StatusOK, FormatResult(res))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	period := core.CurrentPeriod()
	if raw := r.URL.Query().Get("period"); raw != "" {
		parsed, err := core.ParsePeriod(raw)
		if err != nil {
			writeReply(w, http.StatusBadRequest, FormatError(err))
			return
		}
		period = parsed
	}

	summary, err := s.ledger.Stats(r.Context(), period)
	if err != nil {
		status := http.StatusInternalServerError
		if IsUserError(err) {
			status = http.StatusNotFound
		} else {
			s.logger.ErrorContext(r.Context(), "Stats failed",
				log.FieldError, err, log.FieldPeriod, period.String())
		}
		writeReply(w, status, FormatError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statsPayload(summary))
}

type statsEntry struct {
	Amount   int64  `json:"amount"`
	Category string `json:"category"`
	Note     string `json:"note,omitempty"`
}

type statsResponse struct {
	Period      string           `json:"period"`
	Total       int64            `json:"total"`
	Count       int              `json:"count"`
	Top         []statsEntry     `json:"top"`
	PerCategory map[string]int64 `json:"per_category"`
}

func statsPayload(s *core.Summary) statsResponse {
	resp := statsResponse{
		Period:      s.Period.String(),
		Total:       s.Total,
		Count:       s.Count,
		Top:         []statsEntry{},
		PerCategory: s.PerCategory,
	}
	for _, t := range s.Top {
		resp.Top = append(resp.Top, statsEntry{Amount: t.Amount, Category: t.Category, Note: t.Note})
	}
	return resp
}

func writeReply(w http.ResponseWriter, status int, reply string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(commandResponse{Reply: reply})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
