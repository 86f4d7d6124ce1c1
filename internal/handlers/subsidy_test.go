package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"solar_advisor/internal/service"
	"solar_advisor/internal/subsidy"
)

func TestSubsidyRoutes(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 1}, Subsidies: newTestSubsidies()})

	w := doJSON(t, r, http.MethodGet, "/api/v1/subsidies", "")
	if w.Code != http.StatusOK {
		t.Fatalf("regions status=%d", w.Code)
	}
	var list struct {
		Count   int      `json:"count"`
		Regions []string `json:"regions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if list.Count != 2 || list.Regions[0] != "Gujarat" || list.Regions[1] != "Kerala" {
		t.Fatalf("unexpected regions %+v", list)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/subsidies/kerala", "")
	if w.Code != http.StatusOK {
		t.Fatalf("lookup status=%d, body=%s", w.Code, w.Body.String())
	}
	var region subsidy.Region
	if err := json.Unmarshal(w.Body.Bytes(), &region); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if region.Name != "Kerala" || len(region.Schemes) != 1 {
		t.Fatalf("unexpected region %+v", region)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/subsidies/Atlantis", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown region, got %d", w.Code)
	}
}
