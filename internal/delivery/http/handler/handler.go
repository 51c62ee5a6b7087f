package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/newcodes7/smalltown-crawler/internal/delivery/http/response"
	"github.com/newcodes7/smalltown-crawler/internal/usecase"
)

type Handler struct {
	crawler usecase.Crawler
}

func NewHandler(crawler usecase.Crawler) *Handler {
	return &Handler{crawler: crawler}
}

// HandleCrawlAll triggers a full crawl of every eligible organization.
func (h *Handler) HandleCrawlAll(w http.ResponseWriter, r *http.Request) {
	slog.Info("full crawl requested")
	results := h.crawler.CrawlAll(r.Context())

	resp := response.CrawlAllResponse{
		Success:            true,
		Message:            "crawl completed",
		TotalOrganizations: len(results),
		Results:            results,
	}
	for _, result := range results {
		if result.Success {
			resp.SuccessCount++
			resp.TotalNewArticles += result.NewArticles
		} else {
			resp.FailureCount++
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HandleCrawlOne triggers a crawl for the organization in the URL.
func (h *Handler) HandleCrawlOne(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "organizationID"), 10, 64)
	if err != nil {
		h.writeJSONError(w, "invalid organization id", http.StatusBadRequest)
		return
	}

	slog.Info("single crawl requested", "organization_id", id)
	result := h.crawler.CrawlOne(r.Context(), id)

	if !result.Success {
		h.writeJSON(w, http.StatusBadRequest, response.CrawlOneResponse{
			Success: false,
			Message: result.ErrorMessage,
			Result:  result,
		})
		return
	}

	resp := response.CrawlOneResponse{
		Success:       true,
		Message:       "crawl completed",
		TotalArticles: result.TotalArticles,
		NewArticles:   result.NewArticles,
		Result:        result,
	}
	if result.Organization != nil {
		resp.OrganizationName = result.Organization.Name
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// HandleStats returns the aggregate crawl statistics.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.crawler.Stats(r.Context())
	if err != nil {
		slog.Error("stats computation failed", "error", err)
		h.writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.StatsResponse{
		TotalOrganizations: stats.TotalOrganizations,
		TotalNewArticles:   stats.TotalNewArticles,
		LastCrawledAt:      stats.LastCrawledAt,
	})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
