package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-loan-engine-go/features/query/loanreport"
	"github.com/AntonStoeckl/library-loan-engine-go/notifier"
)

const defaultTopBooks = 10

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// reporter is the part of the engine the HTTP endpoints read from.
type reporter interface {
	GetLoanReport(ctx context.Context, topBooks int) (loanreport.Report, error)
}

// newServer serves the metrics, a health probe, the loan report and the notification inbox.
func newServer(addr string, metrics http.Handler, r reporter, inbox *notifier.Inbox) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /report", reportHandler(r))
	mux.HandleFunc("GET /users/{userID}/notifications", notificationsHandler(inbox))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func reportHandler(r reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		topBooks := defaultTopBooks
		if raw := req.URL.Query().Get("top"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "top must be a non-negative integer", http.StatusBadRequest)
				return
			}

			topBooks = n
		}

		report, err := r.GetLoanReport(req.Context(), topBooks)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, report)
	}
}

func notificationsHandler(inbox *notifier.Inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		userID, err := uuid.Parse(req.PathValue("userID"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		query := notifier.Query{OnlyUnread: req.URL.Query().Get("unread") == "true"}
		writeJSON(w, inbox.Notifications(userID, query))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
