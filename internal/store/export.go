package store

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Trace []ExportTracePoint `json:"trace"`
}

type ExportTracePoint struct {
	Iteration int     `json:"iteration"`
	XRo       float64 `json:"x_ro"`
	YRo       float64 `json:"y_ro"`
	Imbalance float64 `json:"imbalance"`
}

// ExportJSON writes a run with its full iteration trace as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, trace []TracePoint) error {
	data := ExportData{
		RunMetadata: *meta,
		Trace:       make([]ExportTracePoint, len(trace)),
	}
	for i, pt := range trace {
		data.Trace[i] = ExportTracePoint{
			Iteration: pt.Iteration,
			XRo:       pt.XRo,
			YRo:       pt.YRo,
			Imbalance: pt.Imbalance,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
