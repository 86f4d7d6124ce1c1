package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"solar_advisor/internal/models"
	"solar_advisor/internal/service"
)

func TestGetHistory_ParsesFilters(t *testing.T) {
	hist := &mockHistory{records: []models.PredictionRecord{{ID: "b"}, {ID: "a"}}}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 1}, History: hist})

	w := doJSON(t, r, http.MethodGet, "/api/v1/efficiency/history?from=2025-08-01&to=2025-08-31&limit=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("history status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count       int                       `json:"count"`
		Predictions []models.PredictionRecord `json:"predictions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || len(out.Predictions) != 2 {
		t.Fatalf("unexpected body %+v", out)
	}

	wantFrom := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2025, 8, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !hist.lastList.From.Equal(wantFrom) || !hist.lastList.To.Equal(wantTo) || hist.lastList.Limit != 10 {
		t.Fatalf("unexpected filter %+v", hist.lastList)
	}
}

func TestGetHistory_BadQueries(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"bad from", "/api/v1/efficiency/history?from=yesterday", errFromInvalid},
		{"bad to", "/api/v1/efficiency/history?to=31/08/2025", errToInvalid},
		{"inverted", "/api/v1/efficiency/history?from=2025-09-01&to=2025-08-01", errRangeInvalid},
		{"zero limit", "/api/v1/efficiency/history?limit=0", errLimitInvalid},
		{"text limit", "/api/v1/efficiency/history?limit=ten", errLimitInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 1}, History: &mockHistory{}})
			w := doJSON(t, r, http.MethodGet, tc.url, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.want {
				t.Fatalf("error=%q, want %q", out.Error, tc.want)
			}
		})
	}
}

func TestGetHistory_ServiceError(t *testing.T) {
	hist := &mockHistory{listErr: errors.New("db locked")}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 1}, History: hist})
	w := doJSON(t, r, http.MethodGet, "/api/v1/efficiency/history", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGetAlerts(t *testing.T) {
	hist := &mockHistory{alerts: []models.AlertEvent{{ID: "e1", Severity: models.SeverityCritical, Code: models.AlertDustUrgent}}}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 1}, History: hist})

	w := doJSON(t, r, http.MethodGet, "/api/v1/alerts?severity=critical&from=2025-08-27T10:00:00Z", "")
	if w.Code != http.StatusOK {
		t.Fatalf("alerts status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                 `json:"count"`
		Alerts []models.AlertEvent `json:"alerts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || out.Alerts[0].Code != models.AlertDustUrgent {
		t.Fatalf("unexpected body %+v", out)
	}
	if hist.lastAlerts.Severity != "critical" || !hist.lastAlerts.From.Equal(time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected filter %+v", hist.lastAlerts)
	}

	hist.alertsErr = service.ErrInvalidSeverity
	w = doJSON(t, r, http.MethodGet, "/api/v1/alerts?severity=fatal", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown severity, got %d", w.Code)
	}
}

func TestParseQueryTime(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2025-08-27T15:04:05Z", time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC), false},
		{"2025-08-27T17:04:05+02:00", time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC), false},
		{"2025-08-27 15:04:05", time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC), false},
		{"2025-08-27", time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC), false},
		{"27.08.2025", time.Time{}, true},
	}
	for _, tc := range cases {
		got, err := parseQueryTime(tc.in)
		if tc.wantErr != (err != nil) {
			t.Fatalf("%q: wantErr=%v, got %v", tc.in, tc.wantErr, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%q: got %v, want %v", tc.in, got, tc.want)
		}
	}
}
