package controllers

import (
	"net/http"
	"strings"

	"github.com/pixelcart/pixelcart-backend/api/responses"
	"github.com/pixelcart/pixelcart-backend/api/validators"
	"github.com/pixelcart/pixelcart-backend/internal/analytics"
	"github.com/pixelcart/pixelcart-backend/pkg/logger"
	"github.com/pixelcart/pixelcart-backend/pkg/pagination"
	"github.com/pixelcart/pixelcart-backend/pkg/types"
)

func IngestEvent(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload analytics.IngestInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Ingest(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

func ListEvents(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.EventsDefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, err := validators.ParseQueryTime(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryTime(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		rows, err := svc.List(r.Context(), analytics.ListFilters{
			UserID:           strings.TrimSpace(query.Get("user_id")),
			SessionID:        strings.TrimSpace(query.Get("session_id")),
			EventType:        strings.TrimSpace(query.Get("event_type")),
			PagePathContains: strings.TrimSpace(query.Get("page_path")),
			From:             from,
			To:               to,
			Limit:            limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, rows, types.ListMeta{Count: len(rows), Limit: limit})
	}
}

func EraseEvents(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload analytics.EraseFilters
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Erase(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func Dashboard(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := validators.ParseQueryInt(r, "days", 0, 1, 365)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		buckets, err := svc.Dashboard(r.Context(), days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, buckets)
	}
}
