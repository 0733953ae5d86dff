package kartesia

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"kartesia/internal/model"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := New(context.Background(), Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Errorf("close failed: %v", err)
		}
	})
	return client
}

func addRequest() CreateRequest {
	return CreateRequest{
		Topology:   model.TopologySpec{Inputs: 2, Outputs: 1, Rows: 1, Cols: 1, LevelsBack: 1, Arity: 2},
		Kernels:    []string{"sum", "diff"},
		Seed:       7,
		Chromosome: []int{0, 0, 1, 2},
	}
}

func TestClientCreateForcedChromosome(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Create(ctx, addRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if summary.ID == "" {
		t.Fatal("expected a generated ID")
	}
	if !reflect.DeepEqual(summary.Chromosome, []int{0, 0, 1, 2}) {
		t.Fatalf("chromosome not applied: %v", summary.Chromosome)
	}
	if !reflect.DeepEqual(summary.ActiveNodes, []int{0, 1, 2}) {
		t.Fatalf("unexpected active nodes: %v", summary.ActiveNodes)
	}
	if !reflect.DeepEqual(summary.ActiveGenes, []int{0, 1, 2, 3}) {
		t.Fatalf("unexpected active genes: %v", summary.ActiveGenes)
	}

	got, err := client.Get(ctx, summary.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !reflect.DeepEqual(got, summary) {
		t.Fatalf("get mismatch: %+v vs %+v", got, summary)
	}
}

func TestClientCreateRejectsBadChromosome(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	req := addRequest()
	req.Chromosome = []int{0, 0, 1} // wrong length
	if _, err := client.Create(ctx, req); err == nil {
		t.Fatal("expected error for incompatible chromosome")
	}
}

func TestClientEvaluate(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Create(ctx, addRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	eval, err := client.Evaluate(ctx, EvalRequest{ID: summary.ID, Inputs: []float64{2, 3}, Symbolic: true})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if len(eval.Outputs) != 1 || eval.Outputs[0] != 5 {
		t.Fatalf("unexpected outputs: %v", eval.Outputs)
	}
	if len(eval.Symbolic) != 1 || eval.Symbolic[0] != "(x0+x1)" {
		t.Fatalf("unexpected symbolic form: %v", eval.Symbolic)
	}
}

func TestClientEvaluatePersist(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Create(ctx, addRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := client.Evaluate(ctx, EvalRequest{ID: summary.ID, Inputs: []float64{2, 3}, Persist: true}); err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if _, err := client.Evaluate(ctx, EvalRequest{ID: summary.ID, Inputs: []float64{1, 1}}); err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	history, err := client.Evaluations(ctx, summary.ID)
	if err != nil {
		t.Fatalf("evaluations failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one persisted evaluation, got %d", len(history))
	}
	if !reflect.DeepEqual(history[0].Inputs, []float64{2, 3}) || history[0].Outputs[0] != 5 {
		t.Fatalf("unexpected persisted evaluation: %+v", history[0])
	}
}

func TestClientEvaluateInputMismatch(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Create(ctx, addRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := client.Evaluate(ctx, EvalRequest{ID: summary.ID, Inputs: []float64{2}}); err == nil {
		t.Fatal("expected error for wrong input size")
	}
}

func TestClientMutateOperators(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	for _, operator := range []string{"random", "active", "active_function", "active_connection", "output"} {
		summary, err := client.Create(ctx, addRequest())
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		mutated, err := client.Mutate(ctx, MutateRequest{ID: summary.ID, Operator: operator, Count: 3, Seed: 11})
		if err != nil {
			t.Fatalf("operator %s failed: %v", operator, err)
		}
		if len(mutated.Chromosome) != len(summary.Chromosome) {
			t.Fatalf("operator %s changed chromosome length", operator)
		}
		stored, err := client.Get(ctx, summary.ID)
		if err != nil {
			t.Fatalf("get after mutate failed: %v", err)
		}
		if !reflect.DeepEqual(stored.Chromosome, mutated.Chromosome) {
			t.Fatalf("operator %s: mutation not persisted", operator)
		}
	}
}

func TestClientMutatePoint(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Create(ctx, addRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mutated, err := client.Mutate(ctx, MutateRequest{ID: summary.ID, Operator: "point", Indexes: []int{0}, Seed: 11})
	if err != nil {
		t.Fatalf("point mutation failed: %v", err)
	}
	// With two kernels the function gene has bounds [0,1], so a point
	// mutation must flip it.
	if mutated.Chromosome[0] != 1 {
		t.Fatalf("function gene not flipped: %v", mutated.Chromosome)
	}

	if _, err := client.Mutate(ctx, MutateRequest{ID: summary.ID, Operator: "point", Indexes: []int{99}}); err == nil {
		t.Fatal("expected error for out of range gene index")
	}
}

func TestClientMutateUnknownOperator(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Create(ctx, addRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := client.Mutate(ctx, MutateRequest{ID: summary.ID, Operator: "shuffle"}); err == nil {
		t.Fatal("expected error for unknown operator")
	}
}

func TestClientRender(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Create(ctx, addRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	dump, err := client.Render(ctx, summary.ID)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{"inputs:", "chromosome:", "active nodes:"} {
		if !strings.Contains(dump, want) {
			t.Fatalf("render output missing %q:\n%s", want, dump)
		}
	}
}

func TestClientListAndDelete(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	first, err := client.Create(ctx, addRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := client.Create(ctx, addRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	summaries, err := client.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected two expressions, got %d", len(summaries))
	}

	if err := client.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	summaries, err = client.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != second.ID {
		t.Fatalf("unexpected survivors: %+v", summaries)
	}
}

func TestClientNotFound(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Get(ctx, "missing"); !errors.Is(err, ErrExpressionNotFound) {
		t.Fatalf("expected ErrExpressionNotFound, got %v", err)
	}
	if _, err := client.Evaluate(ctx, EvalRequest{ID: "missing", Inputs: []float64{1, 2}}); !errors.Is(err, ErrExpressionNotFound) {
		t.Fatalf("expected ErrExpressionNotFound, got %v", err)
	}
	if _, err := client.Evaluations(ctx, "missing"); !errors.Is(err, ErrExpressionNotFound) {
		t.Fatalf("expected ErrExpressionNotFound, got %v", err)
	}
	if _, err := client.Mutate(ctx, MutateRequest{ID: "missing", Operator: "random"}); !errors.Is(err, ErrExpressionNotFound) {
		t.Fatalf("expected ErrExpressionNotFound, got %v", err)
	}
}
