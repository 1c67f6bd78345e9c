package storage

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/ltisim/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Times   []number   `json:"times"`
	Inputs  []number   `json:"inputs"`
	Outputs []number   `json:"outputs"`
	States  [][]number `json:"states"`
}

// number encodes non-finite values as null.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func numbers(xs []float64) []number {
	out := make([]number, len(xs))
	for i, x := range xs {
		out[i] = number(x)
	}
	return out
}

// ExportJSON writes the run metadata and every sample as one JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, result *dynamo.Result) error {
	data := ExportData{
		RunMetadata: meta,
		Times:       numbers(result.Times),
		Inputs:      numbers(result.Inputs),
		Outputs:     numbers(result.Outputs),
		States:      make([][]number, len(result.States)),
	}
	data.Samples = len(result.Times)
	data.Metrics = finite(meta.Metrics)
	for i, x := range result.States {
		data.States[i] = numbers(x)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
