package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"kartesia/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeExpression(r model.ExpressionRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeExpression(data []byte) (model.ExpressionRecord, error) {
	var record model.ExpressionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.ExpressionRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.ExpressionRecord{}, err
	}
	return record, nil
}

func EncodeEvaluations(records []model.EvaluationRecord) ([]byte, error) {
	return json.Marshal(records)
}

func DecodeEvaluations(data []byte) ([]model.EvaluationRecord, error) {
	var records []model.EvaluationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion {
		return fmt.Errorf("%w: schema %d, want %d", ErrVersionMismatch, v.SchemaVersion, CurrentSchemaVersion)
	}
	if v.CodecVersion != CurrentCodecVersion {
		return fmt.Errorf("%w: codec %d, want %d", ErrVersionMismatch, v.CodecVersion, CurrentCodecVersion)
	}
	return nil
}

// Stamp sets the current schema and codec versions on a record before it is
// persisted.
func Stamp(r *model.ExpressionRecord) {
	r.SchemaVersion = CurrentSchemaVersion
	r.CodecVersion = CurrentCodecVersion
}
