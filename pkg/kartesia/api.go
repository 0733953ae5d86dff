// Package kartesia is the public client for building, evaluating, mutating
// and archiving CGP expressions.
package kartesia

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kartesia/internal/expression"
	"kartesia/internal/genotype"
	"kartesia/internal/kernel"
	"kartesia/internal/model"
	"kartesia/internal/storage"
)

var ErrExpressionNotFound = errors.New("expression not found")

const defaultDBPath = "kartesia.db"

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store storage.Store
}

// New wires a client to its archive store and initializes it.
func New(ctx context.Context, opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

// Close releases the underlying store when it supports closing.
func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

type CreateRequest struct {
	Topology   model.TopologySpec
	Kernels    []string
	Seed       int64
	Chromosome []int
	Notes      string
}

type ExpressionSummary struct {
	ID          string
	Topology    model.TopologySpec
	Kernels     []string
	Chromosome  []int
	ActiveNodes []int
	ActiveGenes []int
}

// Create builds an expression from the request, optionally forcing a given
// chromosome, archives it and returns its summary.
func (c *Client) Create(ctx context.Context, req CreateRequest) (ExpressionSummary, error) {
	expr, err := buildNumeric(req.Topology, req.Kernels, req.Seed)
	if err != nil {
		return ExpressionSummary{}, err
	}
	if req.Chromosome != nil {
		if err := expr.Set(genotype.Chromosome(req.Chromosome)); err != nil {
			return ExpressionSummary{}, err
		}
	}

	record := model.ExpressionRecord{
		ID:           uuid.NewString(),
		CreatedAtUTC: time.Now().UTC().Format(time.RFC3339Nano),
		Topology:     req.Topology,
		Kernels:      append([]string(nil), req.Kernels...),
		Seed:         req.Seed,
		Chromosome:   expr.Get(),
		ActiveNodes:  expr.ActiveNodes(),
		ActiveGenes:  expr.ActiveGenes(),
		Notes:        req.Notes,
	}
	storage.Stamp(&record)
	if err := c.store.SaveExpression(ctx, record); err != nil {
		return ExpressionSummary{}, err
	}
	return summaryFromRecord(record), nil
}

// Get returns the archived summary for one expression.
func (c *Client) Get(ctx context.Context, id string) (ExpressionSummary, error) {
	record, err := c.record(ctx, id)
	if err != nil {
		return ExpressionSummary{}, err
	}
	return summaryFromRecord(record), nil
}

// List returns summaries for every archived expression in creation order.
func (c *Client) List(ctx context.Context) ([]ExpressionSummary, error) {
	records, err := c.store.ListExpressions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ExpressionSummary, len(records))
	for i, record := range records {
		out[i] = summaryFromRecord(record)
	}
	return out, nil
}

// Delete removes an archived expression and its evaluation history.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.store.DeleteExpression(ctx, id)
}

// Render returns the human-readable dump of an archived expression.
func (c *Client) Render(ctx context.Context, id string) (string, error) {
	record, err := c.record(ctx, id)
	if err != nil {
		return "", err
	}
	expr, err := rebuildNumeric(record)
	if err != nil {
		return "", err
	}
	return expr.String(), nil
}

type EvalRequest struct {
	ID       string
	Inputs   []float64
	Symbolic bool
	Persist  bool
}

type EvalSummary struct {
	Outputs  []float64
	Symbolic []string
}

// Evaluate runs an archived expression on one input point, optionally also
// producing the symbolic form of each output and persisting the result.
func (c *Client) Evaluate(ctx context.Context, req EvalRequest) (EvalSummary, error) {
	record, err := c.record(ctx, req.ID)
	if err != nil {
		return EvalSummary{}, err
	}
	expr, err := rebuildNumeric(record)
	if err != nil {
		return EvalSummary{}, err
	}
	outputs, err := expr.Eval(req.Inputs)
	if err != nil {
		return EvalSummary{}, err
	}

	summary := EvalSummary{Outputs: outputs}
	if req.Symbolic {
		symbolic, err := renderSymbolic(record)
		if err != nil {
			return EvalSummary{}, err
		}
		summary.Symbolic = symbolic
	}

	if req.Persist {
		evaluation := model.EvaluationRecord{
			ExpressionID: record.ID,
			Inputs:       append([]float64(nil), req.Inputs...),
			Outputs:      append([]float64(nil), outputs...),
			Symbolic:     summary.Symbolic,
			CreatedAtUTC: time.Now().UTC().Format(time.RFC3339Nano),
		}
		if err := c.store.SaveEvaluation(ctx, evaluation); err != nil {
			return EvalSummary{}, err
		}
	}
	return summary, nil
}

// Evaluations returns the persisted evaluation history of an expression.
func (c *Client) Evaluations(ctx context.Context, id string) ([]model.EvaluationRecord, error) {
	if _, err := c.record(ctx, id); err != nil {
		return nil, err
	}
	return c.store.GetEvaluations(ctx, id)
}

type MutateRequest struct {
	ID       string
	Operator string
	Indexes  []int
	Count    int
	Seed     int64
}

// Mutate applies one named mutation operator to an archived expression and
// persists the mutated chromosome. Supported operators: point, random,
// active, active_function, active_connection, output.
func (c *Client) Mutate(ctx context.Context, req MutateRequest) (ExpressionSummary, error) {
	record, err := c.record(ctx, req.ID)
	if err != nil {
		return ExpressionSummary{}, err
	}
	expr, err := buildNumeric(record.Topology, record.Kernels, req.Seed)
	if err != nil {
		return ExpressionSummary{}, err
	}
	if err := expr.Set(genotype.Chromosome(record.Chromosome)); err != nil {
		return ExpressionSummary{}, err
	}

	count := req.Count
	if count <= 0 {
		count = 1
	}
	switch req.Operator {
	case "point":
		if err := expr.MutateGenes(req.Indexes); err != nil {
			return ExpressionSummary{}, err
		}
	case "random":
		expr.MutateRandom(count)
	case "active":
		expr.MutateActive(count)
	case "active_function":
		expr.MutateActiveFunction()
	case "active_connection":
		expr.MutateActiveConnection()
	case "output":
		expr.MutateOutput()
	default:
		return ExpressionSummary{}, fmt.Errorf("unsupported mutation operator: %s", req.Operator)
	}

	record.Chromosome = expr.Get()
	record.ActiveNodes = expr.ActiveNodes()
	record.ActiveGenes = expr.ActiveGenes()
	storage.Stamp(&record)
	if err := c.store.SaveExpression(ctx, record); err != nil {
		return ExpressionSummary{}, err
	}
	return summaryFromRecord(record), nil
}

func (c *Client) record(ctx context.Context, id string) (model.ExpressionRecord, error) {
	record, ok, err := c.store.GetExpression(ctx, id)
	if err != nil {
		return model.ExpressionRecord{}, err
	}
	if !ok {
		return model.ExpressionRecord{}, fmt.Errorf("%w: %s", ErrExpressionNotFound, id)
	}
	return record, nil
}

func topology(spec model.TopologySpec) genotype.Topology {
	return genotype.Topology{
		Inputs:     spec.Inputs,
		Outputs:    spec.Outputs,
		Rows:       spec.Rows,
		Cols:       spec.Cols,
		LevelsBack: spec.LevelsBack,
		Arity:      spec.Arity,
	}
}

func buildNumeric(spec model.TopologySpec, kernelNames []string, seed int64) (*expression.Expression[float64], error) {
	set, err := kernel.Float64Set(spec.Arity, kernelNames...)
	if err != nil {
		return nil, err
	}
	return expression.New(topology(spec), set, seed)
}

func rebuildNumeric(record model.ExpressionRecord) (*expression.Expression[float64], error) {
	expr, err := buildNumeric(record.Topology, record.Kernels, record.Seed)
	if err != nil {
		return nil, err
	}
	if err := expr.Set(genotype.Chromosome(record.Chromosome)); err != nil {
		return nil, err
	}
	return expr, nil
}

// renderSymbolic evaluates the archived chromosome over the symbolic kernel
// set with x0..x(n-1) as inputs.
func renderSymbolic(record model.ExpressionRecord) ([]string, error) {
	set, err := kernel.SymbolicSet(record.Topology.Arity, record.Kernels...)
	if err != nil {
		return nil, err
	}
	expr, err := expression.New(topology(record.Topology), set, record.Seed)
	if err != nil {
		return nil, err
	}
	if err := expr.Set(genotype.Chromosome(record.Chromosome)); err != nil {
		return nil, err
	}
	inputs := make([]string, record.Topology.Inputs)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("x%d", i)
	}
	return expr.Eval(inputs)
}

func summaryFromRecord(record model.ExpressionRecord) ExpressionSummary {
	return ExpressionSummary{
		ID:          record.ID,
		Topology:    record.Topology,
		Kernels:     append([]string(nil), record.Kernels...),
		Chromosome:  append([]int(nil), record.Chromosome...),
		ActiveNodes: append([]int(nil), record.ActiveNodes...),
		ActiveGenes: append([]int(nil), record.ActiveGenes...),
	}
}
