package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// TopologySpec mirrors the immutable grid parameters of an expression.
type TopologySpec struct {
	Inputs     int `json:"inputs"`
	Outputs    int `json:"outputs"`
	Rows       int `json:"rows"`
	Cols       int `json:"cols"`
	LevelsBack int `json:"levels_back"`
	Arity      int `json:"arity"`
}

// ExpressionRecord is the archived form of one CGP expression: enough to
// rebuild it exactly (topology, kernel names, chromosome) plus the decoded
// active sets for inspection without a rebuild.
type ExpressionRecord struct {
	VersionedRecord
	ID           string       `json:"id"`
	CreatedAtUTC string       `json:"created_at_utc"`
	Topology     TopologySpec `json:"topology"`
	Kernels      []string     `json:"kernels"`
	Seed         int64        `json:"seed"`
	Chromosome   []int        `json:"chromosome"`
	ActiveNodes  []int        `json:"active_nodes"`
	ActiveGenes  []int        `json:"active_genes"`
	Notes        string       `json:"notes,omitempty"`
}

// EvaluationRecord stores one evaluation of an archived expression.
type EvaluationRecord struct {
	ExpressionID string    `json:"expression_id"`
	Inputs       []float64 `json:"inputs"`
	Outputs      []float64 `json:"outputs"`
	Symbolic     []string  `json:"symbolic,omitempty"`
	CreatedAtUTC string    `json:"created_at_utc"`
}
