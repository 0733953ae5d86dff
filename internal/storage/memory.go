package storage

import (
	"context"
	"sort"
	"sync"

	"kartesia/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	expressions map[string]model.ExpressionRecord
	evaluations map[string][]model.EvaluationRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.expressions = make(map[string]model.ExpressionRecord)
	s.evaluations = make(map[string][]model.EvaluationRecord)
	return nil
}

func (s *MemoryStore) SaveExpression(_ context.Context, record model.ExpressionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expressions[record.ID] = record
	return nil
}

func (s *MemoryStore) GetExpression(_ context.Context, id string) (model.ExpressionRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.expressions[id]
	return record, ok, nil
}

func (s *MemoryStore) ListExpressions(_ context.Context) ([]model.ExpressionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ExpressionRecord, 0, len(s.expressions))
	for _, record := range s.expressions {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAtUTC != out[j].CreatedAtUTC {
			return out[i].CreatedAtUTC < out[j].CreatedAtUTC
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) DeleteExpression(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.expressions, id)
	delete(s.evaluations, id)
	return nil
}

func (s *MemoryStore) SaveEvaluation(_ context.Context, record model.EvaluationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evaluations[record.ExpressionID] = append(s.evaluations[record.ExpressionID], record)
	return nil
}

func (s *MemoryStore) GetEvaluations(_ context.Context, expressionID string) ([]model.EvaluationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.evaluations[expressionID]
	out := make([]model.EvaluationRecord, len(records))
	copy(out, records)
	return out, nil
}
