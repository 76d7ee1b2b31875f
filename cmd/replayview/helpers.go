package main

import (
	"encoding/json"
	"net/http"
)

func withCORS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// DuckDB's driver surfaces nested parquet columns as []any / map[string]any;
// the converters below tolerate the integer width varying by file.

func asInt64(v any) int64 {
	switch vv := v.(type) {
	case int64:
		return vv
	case int32:
		return int64(vv)
	case int:
		return int64(vv)
	case float64:
		return int64(vv)
	default:
		return 0
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt32Slice(v any) []int32 {
	switch vv := v.(type) {
	case nil:
		return nil
	case []int32:
		return vv
	case []int64:
		out := make([]int32, len(vv))
		for i, x := range vv {
			out[i] = int32(x)
		}
		return out
	case []any:
		out := make([]int32, len(vv))
		for i, x := range vv {
			out[i] = int32(asInt64(x))
		}
		return out
	default:
		return nil
	}
}

func zipPoints(xs, ys []int32) []Point {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		out[i] = Point{X: xs[i], Y: ys[i]}
	}
	return out
}

func asFrameSnakes(v any) []FrameSnake {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	snakes := make([]FrameSnake, 0, len(list))
	for _, it := range list {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		snakes = append(snakes, FrameSnake{
			Name:    asString(m["name"]),
			Alive:   asBool(m["alive"]),
			Score:   int32(asInt64(m["score"])),
			Heading: asString(m["heading"]),
			Body:    zipPoints(asInt32Slice(m["body_x"]), asInt32Slice(m["body_y"])),
		})
	}
	return snakes
}
