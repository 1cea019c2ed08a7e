package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/openswoop/syllabank/pkg/database"
)

func (s *Server) handleSearchCourses(w http.ResponseWriter, r *http.Request) {
	q, err := ParseSearchQuery(r.URL.Query())
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.catalog.SearchCourses(r.Context(), q)
	if err != nil {
		s.logger.Error("failed to search courses", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not search courses")
		return
	}
	if items == nil {
		items = []database.CourseListItem{}
	}
	s.respondWithJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	course, err := s.catalog.GetCourse(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrCourseNotFound) {
			s.respondWithError(w, http.StatusNotFound, "Course not found")
			return
		}
		s.logger.Error("failed to get course", zap.Int64("id", id), zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not retrieve course")
		return
	}
	s.respondWithJSON(w, http.StatusOK, course)
}

type syncRequest struct {
	URLs []string `json:"urls"`
}

// handleSync starts a sync of the requested listings, or the configured ones
// when none are given, and returns without waiting for it.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	urls := req.URLs
	if len(urls) == 0 {
		urls = s.listingURLs
	}
	if len(urls) == 0 {
		s.respondWithError(w, http.StatusBadRequest, "No listing URLs to sync")
		return
	}
	for _, u := range urls {
		if _, err := url.ParseRequestURI(u); err != nil {
			s.respondWithError(w, http.StatusBadRequest, "Invalid URL in list: "+u)
			return
		}
	}

	s.syncs.Add(1)
	go func() {
		defer s.syncs.Done()
		stats, err := s.syncer.RunAll(s.ctx, urls)
		if err != nil {
			s.logger.Error("sync failed", zap.Strings("urls", urls), zap.Error(err))
			return
		}
		s.logger.Info("sync finished", zap.Strings("urls", urls), zap.Int("imported", stats.Imported))
	}()

	s.respondWithJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "Sync started",
		"urls":    urls,
	})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	healthStatus := map[string]string{"sqlite": "healthy"}
	if err := s.catalog.Ping(ctx); err != nil {
		healthStatus["sqlite"] = "unhealthy"
		s.logger.Error("health check failed for sqlite", zap.Error(err))
		s.respondWithJSON(w, http.StatusServiceUnavailable, healthStatus)
		return
	}

	s.respondWithJSON(w, http.StatusOK, healthStatus)
}

// --- Helper Functions ---

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
