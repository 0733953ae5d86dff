package main

import (
	"encoding/json"
	"fmt"
	"os"

	"kartesia/internal/model"
	"kartesia/pkg/kartesia"
)

func topologySpec(inputs, outputs, rows, cols, levelsBack, arity int) model.TopologySpec {
	return model.TopologySpec{
		Inputs:     inputs,
		Outputs:    outputs,
		Rows:       rows,
		Cols:       cols,
		LevelsBack: levelsBack,
		Arity:      arity,
	}
}

func loadCreateRequestFromConfig(path string) (kartesia.CreateRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return kartesia.CreateRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return kartesia.CreateRequest{}, err
	}

	var req kartesia.CreateRequest
	if v, ok := asInt(raw["inputs"]); ok {
		req.Topology.Inputs = v
	}
	if v, ok := asInt(raw["outputs"]); ok {
		req.Topology.Outputs = v
	}
	if v, ok := asInt(raw["rows"]); ok {
		req.Topology.Rows = v
	}
	if v, ok := asInt(raw["cols"]); ok {
		req.Topology.Cols = v
	}
	if v, ok := asInt(raw["levels_back"]); ok {
		req.Topology.LevelsBack = v
	}
	if v, ok := asInt(raw["arity"]); ok {
		req.Topology.Arity = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asString(raw["notes"]); ok {
		req.Notes = v
	}
	if v, ok := asStringSlice(raw["kernels"]); ok {
		req.Kernels = v
	}
	if v, ok := asIntSlice(raw["chromosome"]); ok {
		req.Chromosome = v
	}
	if req.Topology.Inputs == 0 || req.Topology.Outputs == 0 {
		return kartesia.CreateRequest{}, fmt.Errorf("config %s: inputs and outputs are required", path)
	}
	if len(req.Kernels) == 0 {
		return kartesia.CreateRequest{}, fmt.Errorf("config %s: kernels are required", path)
	}
	return req, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func asInt64(v any) (int64, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func asStringSlice(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func asIntSlice(v any) ([]int, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		f, ok := item.(float64)
		if !ok {
			return nil, false
		}
		out = append(out, int(f))
	}
	return out, true
}
