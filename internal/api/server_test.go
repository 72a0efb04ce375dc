package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nomadcxx/jellybucket/internal/bucket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	set, err := bucket.NewSet(bucket.Options{
		Year:        []string{"1950-59", "1960-69"},
		Alpha:       []string{"ABCD", "FGH", "IJKL"},
		Extrapolate: true,
	}, bucket.WithFixedYear(2014))
	require.NoError(t, err)
	return NewServer(set, nil)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleBucket(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		target string
		want   string
	}{
		{"/api/v1/bucket?value=1955", "1950-59"},
		{"/api/v1/bucket?value=1914", "1910-19"},
		{"/api/v1/bucket?value=garry", "FGH"},
		{"/api/v1/bucket?value=errol", "E"},
		{"/api/v1/bucket?value=1955&field=alpha", "1"},
	}
	for _, tt := range tests {
		rec := get(t, h, tt.target)
		require.Equal(t, http.StatusOK, rec.Code, tt.target)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp BucketResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, tt.want, resp.Label, tt.target)
	}
}

func TestHandleBucket_BadRequests(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := get(t, h, "/api/v1/bucket")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_value")

	rec = get(t, h, "/api/v1/bucket?value=soon&field=year")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_year")
}

func TestHandleListBuckets(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	get(t, h, "/api/v1/bucket?value=1914")

	rec := get(t, h, "/api/v1/buckets")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BucketsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Extrapolate)
	require.Len(t, resp.Year, 2)
	assert.Equal(t, "range", resp.Year[0].Kind)
	assert.Equal(t, 1959, resp.Year[0].EffectiveEnd)
	require.Len(t, resp.Alpha, 3)
	assert.Equal(t, "F", resp.Alpha[1].Start)
	require.Len(t, resp.Generated, 1)
	assert.Equal(t, "1910-19", resp.Generated[0].Label)
}

func TestSetBuckets(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	set, err := bucket.NewSet(bucket.Options{Year: []string{"1900-1999"}})
	require.NoError(t, err)
	s.SetBuckets(set)

	rec := get(t, h, "/api/v1/bucket?value=1955")
	var resp BucketResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1900-1999", resp.Label)
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t).Handler(), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
