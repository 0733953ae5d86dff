package storage

import (
	"context"

	"kartesia/internal/model"
)

// Store defines persistence operations for archived expressions and their
// evaluation history.
type Store interface {
	Init(ctx context.Context) error
	SaveExpression(ctx context.Context, record model.ExpressionRecord) error
	GetExpression(ctx context.Context, id string) (model.ExpressionRecord, bool, error)
	ListExpressions(ctx context.Context) ([]model.ExpressionRecord, error)
	DeleteExpression(ctx context.Context, id string) error
	SaveEvaluation(ctx context.Context, record model.EvaluationRecord) error
	GetEvaluations(ctx context.Context, expressionID string) ([]model.EvaluationRecord, error)
}
