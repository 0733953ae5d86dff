//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"kartesia/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store := NewSQLiteStore(filepath.Join(t.TempDir(), "kartesia.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close failed: %v", err)
		}
	})
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	record := expressionRecord("e1", "2026-01-01T00:00:00Z")
	if err := store.SaveExpression(ctx, record); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, ok, err := store.GetExpression(ctx, "e1")
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, record) {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, record)
	}

	if _, ok, err := store.GetExpression(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func TestSQLiteStoreUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	record := expressionRecord("e1", "2026-01-01T00:00:00Z")
	if err := store.SaveExpression(ctx, record); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	record.Chromosome = []int{1, 0, 1, 2}
	if err := store.SaveExpression(ctx, record); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	records, err := store.ListExpressions(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record after upsert, got %d", len(records))
	}
	if !reflect.DeepEqual(records[0].Chromosome, []int{1, 0, 1, 2}) {
		t.Fatalf("upsert did not replace payload: %+v", records[0].Chromosome)
	}
}

func TestSQLiteStoreEvaluationsAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	record := expressionRecord("e1", "2026-01-01T00:00:00Z")
	if err := store.SaveExpression(ctx, record); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	evaluation := model.EvaluationRecord{
		ExpressionID: "e1",
		Inputs:       []float64{2, 3},
		Outputs:      []float64{5},
		CreatedAtUTC: "2026-01-01T00:00:01Z",
	}
	if err := store.SaveEvaluation(ctx, evaluation); err != nil {
		t.Fatalf("save evaluation failed: %v", err)
	}

	evaluations, err := store.GetEvaluations(ctx, "e1")
	if err != nil {
		t.Fatalf("get evaluations failed: %v", err)
	}
	if len(evaluations) != 1 || !reflect.DeepEqual(evaluations[0], evaluation) {
		t.Fatalf("unexpected evaluations: %+v", evaluations)
	}

	if err := store.DeleteExpression(ctx, "e1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := store.GetExpression(ctx, "e1"); ok {
		t.Fatal("expression survived delete")
	}
	evaluations, err = store.GetEvaluations(ctx, "e1")
	if err != nil {
		t.Fatalf("get evaluations failed: %v", err)
	}
	if len(evaluations) != 0 {
		t.Fatalf("evaluations survived delete: %+v", evaluations)
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "kartesia.db"))
	if _, err := store.ListExpressions(context.Background()); err == nil {
		t.Fatal("expected error before Init")
	}
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	store := NewSQLiteStore("")
	if err := store.Init(context.Background()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
