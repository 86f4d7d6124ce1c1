// Package ml loads the persisted efficiency regressor and runs inference with it.
package ml

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"solar_advisor/internal/features"
	"solar_advisor/internal/models"
)

// ErrModelLoad is matched by every failure to read, decode or validate an artifact.
var ErrModelLoad = errors.New("model load failure")

const algorithmGBT = "gradient_boosted_trees"

// maxTreeDepth bounds traversal; deeper trees are rejected at load time.
const maxTreeDepth = 64

// artifact is the on-disk layout: the regressor and the ordered feature names it expects.
type artifact struct {
	Algorithm    string         `json:"algorithm"`
	FeatureNames []string       `json:"feature_names"`
	BaseScore    float64        `json:"base_score"`
	Trees        []artifactTree `json:"trees"`
}

type artifactTree struct {
	Nodes []artifactNode `json:"nodes"`
}

// artifactNode follows the xgboost JSON dump: split nodes send values below
// split_condition to "yes", NaN to "missing".
type artifactNode struct {
	NodeID    int      `json:"nodeid"`
	Split     string   `json:"split,omitempty"`
	Condition float64  `json:"split_condition,omitempty"`
	Yes       int      `json:"yes,omitempty"`
	No        int      `json:"no,omitempty"`
	Missing   int      `json:"missing,omitempty"`
	Leaf      *float64 `json:"leaf,omitempty"`
}

type node struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	yes       int
	no        int
	missing   int
}

type tree []node

// Model is an immutable, pre-trained regressor plus its schema. Safe for concurrent use.
type Model struct {
	schema    []string
	baseScore float64
	trees     []tree
	path      string
	checksum  string
}

// Load reads and validates the artifact at path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrModelLoad, path, err)
	}
	m, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	m.path = path
	return m, nil
}

// Decode reads an artifact from r.
func Decode(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read artifact: %w", ErrModelLoad, err)
	}

	var a artifact
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decode artifact: %w", ErrModelLoad, err)
	}

	m, err := compile(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}
	sum := sha256.Sum256(data)
	m.checksum = hex.EncodeToString(sum[:])
	return m, nil
}

func compile(a artifact) (*Model, error) {
	if a.Algorithm != "" && a.Algorithm != algorithmGBT {
		return nil, fmt.Errorf("unsupported algorithm %q", a.Algorithm)
	}
	if err := features.CheckSchema(a.FeatureNames); err != nil {
		return nil, err
	}
	if len(a.Trees) == 0 {
		return nil, errors.New("artifact has no trees")
	}
	if math.IsNaN(a.BaseScore) || math.IsInf(a.BaseScore, 0) {
		return nil, errors.New("base_score is not finite")
	}

	index := make(map[string]int, len(a.FeatureNames))
	for i, name := range a.FeatureNames {
		index[name] = i
	}

	m := &Model{
		schema:    append([]string(nil), a.FeatureNames...),
		baseScore: a.BaseScore,
		trees:     make([]tree, 0, len(a.Trees)),
	}
	for ti, at := range a.Trees {
		t, err := compileTree(at, index)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", ti, err)
		}
		m.trees = append(m.trees, t)
	}
	return m, nil
}

// compileTree re-indexes nodes by position and resolves split features to columns.
func compileTree(at artifactTree, index map[string]int) (tree, error) {
	if len(at.Nodes) == 0 {
		return nil, errors.New("empty tree")
	}

	pos := make(map[int]int, len(at.Nodes))
	for i, n := range at.Nodes {
		if _, dup := pos[n.NodeID]; dup {
			return nil, fmt.Errorf("duplicate nodeid %d", n.NodeID)
		}
		pos[n.NodeID] = i
	}
	if _, ok := pos[0]; !ok {
		return nil, errors.New("missing root nodeid 0")
	}

	child := func(id int) (int, error) {
		p, ok := pos[id]
		if !ok {
			return 0, fmt.Errorf("dangling child nodeid %d", id)
		}
		return p, nil
	}

	t := make(tree, len(at.Nodes))
	for i, n := range at.Nodes {
		if n.Leaf != nil {
			if math.IsNaN(*n.Leaf) || math.IsInf(*n.Leaf, 0) {
				return nil, fmt.Errorf("node %d: leaf is not finite", n.NodeID)
			}
			t[i] = node{leaf: true, value: *n.Leaf}
			continue
		}
		col, ok := index[n.Split]
		if !ok {
			return nil, fmt.Errorf("node %d: split on unknown feature %q", n.NodeID, n.Split)
		}
		yes, err := child(n.Yes)
		if err != nil {
			return nil, err
		}
		no, err := child(n.No)
		if err != nil {
			return nil, err
		}
		missing := yes
		if n.Missing != 0 {
			if missing, err = child(n.Missing); err != nil {
				return nil, err
			}
		}
		t[i] = node{feature: col, threshold: n.Condition, yes: yes, no: no, missing: missing}
	}

	root := pos[0]
	if err := checkTree(t, root); err != nil {
		return nil, err
	}
	return reroot(t, root), nil
}

// checkTree walks the tree from root once. Every node may be reached from a single
// parent only, which rules out cycles and shared subtrees in linear time.
func checkTree(t tree, root int) error {
	type frame struct{ i, depth int }
	seen := make([]bool, len(t))
	seen[root] = true
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > maxTreeDepth {
			return fmt.Errorf("tree deeper than %d", maxTreeDepth)
		}
		n := t[f.i]
		if n.leaf {
			continue
		}
		children := []int{n.yes, n.no}
		if n.missing != n.yes && n.missing != n.no {
			children = append(children, n.missing)
		}
		if n.yes == n.no {
			return fmt.Errorf("node at position %d: yes and no point at the same child", f.i)
		}
		for _, c := range children {
			if seen[c] {
				return fmt.Errorf("node at position %d reached twice: cycle or shared child", c)
			}
			seen[c] = true
			stack = append(stack, frame{c, f.depth + 1})
		}
	}
	return nil
}

// reroot moves the root to position 0 so evaluation always starts there.
func reroot(t tree, root int) tree {
	if root == 0 {
		return t
	}
	swap := func(i int) int {
		switch i {
		case 0:
			return root
		case root:
			return 0
		}
		return i
	}
	out := make(tree, len(t))
	for i, n := range t {
		if !n.leaf {
			n.yes, n.no, n.missing = swap(n.yes), swap(n.no), swap(n.missing)
		}
		out[swap(i)] = n
	}
	return out
}

func (t tree) eval(values []float64) float64 {
	i := 0
	for {
		n := t[i]
		if n.leaf {
			return n.value
		}
		x := values[n.feature]
		switch {
		case math.IsNaN(x):
			i = n.missing
		case x < n.threshold:
			i = n.yes
		default:
			i = n.no
		}
	}
}

// Schema returns a copy of the ordered feature names the model expects.
func (m *Model) Schema() []string {
	return append([]string(nil), m.schema...)
}

// Predict returns the efficiency estimate for v. v must match the schema exactly.
func (m *Model) Predict(v models.FeatureVector) (float64, error) {
	if err := features.Conforms(v, m.schema); err != nil {
		return 0, err
	}
	score := m.baseScore
	for _, t := range m.trees {
		score += t.eval(v.Values)
	}
	return score, nil
}

// Info describes the loaded artifact.
func (m *Model) Info() models.ModelInfo {
	return models.ModelInfo{
		Algorithm: algorithmGBT,
		Path:      m.path,
		SHA256:    m.checksum,
		Schema:    m.Schema(),
		TreeCount: len(m.trees),
		BaseScore: m.baseScore,
	}
}
