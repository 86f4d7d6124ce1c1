package models

// ModelInfo describes a loaded regressor artifact.
type ModelInfo struct {
	Algorithm string   `json:"algorithm"`
	Path      string   `json:"path"`
	SHA256    string   `json:"sha256"`
	Schema    []string `json:"schema"`
	TreeCount int      `json:"tree_count"`
	BaseScore float64  `json:"base_score"`
}
