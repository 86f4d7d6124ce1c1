package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerRegistered(t *testing.T) {
	doc, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	var parsed struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("rendered doc is not JSON: %v", err)
	}
	if parsed.Info.Title != SwaggerInfo.Title {
		t.Fatalf("title %q, want %q", parsed.Info.Title, SwaggerInfo.Title)
	}
	for _, p := range []string{"/api/v1/efficiency/predict", "/api/v1/model", "/api/v1/subsidies/{region}", "/api/v1/recommendations"} {
		if _, ok := parsed.Paths[p]; !ok {
			t.Fatalf("path %s missing from swagger doc", p)
		}
	}
}
