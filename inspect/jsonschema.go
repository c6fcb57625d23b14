package inspect

// InspectOptions controls inspect behavior.
type InspectOptions struct {
	Tokens bool // include the token stream
	Tree   bool // include the syntax tree
	Slices bool // parse with slice syntax enabled
	Pretty bool // indent JSON output (used by the CLI layer)
}

// TokenView is the serializable form of a token.
type TokenView struct {
	Type          string `json:"type" yaml:"type"`
	Value         string `json:"value" yaml:"value"`
	Line          int    `json:"line" yaml:"line"`
	Column        int    `json:"column" yaml:"column"`
	Offset        int    `json:"offset" yaml:"offset"`
	NewlineBefore bool   `json:"newline_before,omitempty" yaml:"newline_before,omitempty"`
}

// InspectResult is the JSON/YAML-serializable output model.
type InspectResult struct {
	Tokens []TokenView    `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Tree   map[string]any `json:"tree,omitempty" yaml:"tree,omitempty"`
	Counts map[string]int `json:"counts,omitempty" yaml:"counts,omitempty"`
	Notes  []string       `json:"notes,omitempty" yaml:"notes,omitempty"`
}
