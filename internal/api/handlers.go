package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Nomadcxx/jellybucket/internal/bucket"
)

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

type BucketResponse struct {
	Value string `json:"value"`
	Field string `json:"field,omitempty"`
	Label string `json:"label"`
}

type YearBucket struct {
	Label        string `json:"label"`
	Kind         string `json:"kind"`
	Start        int    `json:"start"`
	End          *int   `json:"end,omitempty"`
	EffectiveEnd int    `json:"effective_end"`
}

type AlphaBucket struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type BucketsResponse struct {
	Year        []YearBucket  `json:"year"`
	Alpha       []AlphaBucket `json:"alpha"`
	Generated   []YearBucket  `json:"generated"`
	Extrapolate bool          `json:"extrapolate"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "healthy",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
	})
}

// handleBucket serves GET /api/v1/bucket?value=1983[&field=year]
func (s *Server) handleBucket(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	value := q.Get("value")
	field := q.Get("field")
	if strings.TrimSpace(value) == "" {
		writeError(w, http.StatusBadRequest, "missing_value", "query parameter 'value' is required")
		return
	}

	label, err := s.buckets().Bucket(value, field)
	if err != nil {
		if errors.Is(err, bucket.ErrNotAYear) {
			writeError(w, http.StatusBadRequest, "invalid_year", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "lookup_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, BucketResponse{Value: value, Field: field, Label: label})
}

// handleListBuckets serves GET /api/v1/buckets
func (s *Server) handleListBuckets(w http.ResponseWriter, r *http.Request) {
	set := s.buckets()

	resp := BucketsResponse{
		Year:        []YearBucket{},
		Alpha:       []AlphaBucket{},
		Generated:   []YearBucket{},
		Extrapolate: set.Year.Extrapolates(),
	}
	for _, span := range set.Year.Spans() {
		resp.Year = append(resp.Year, yearBucket(span))
	}
	for _, span := range set.Year.Generated() {
		resp.Generated = append(resp.Generated, yearBucket(span))
	}
	for _, d := range set.Alpha.Buckets() {
		resp.Alpha = append(resp.Alpha, AlphaBucket{
			Label: d.Label,
			Kind:  d.Kind.String(),
			Start: string(d.Start),
			End:   string(d.End),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func yearBucket(span bucket.Span) YearBucket {
	return YearBucket{
		Label:        span.Label,
		Kind:         span.Kind.String(),
		Start:        span.Start,
		End:          span.End,
		EffectiveEnd: span.EffectiveEnd,
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
