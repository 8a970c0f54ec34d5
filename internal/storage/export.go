package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	ID         string             `json:"id"`
	Algorithm  string             `json:"algorithm"`
	Size       int                `json:"size"`
	K          float64            `json:"k"`
	J          float64            `json:"J"`
	T          float64            `json:"T"`
	Tc         float64            `json:"Tc"`
	Iterations int                `json:"iterations"`
	H          []float64          `json:"H"`
	M          []float64          `json:"M"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run's metadata and observable traces as one JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, obs []Observables) error {
	data := ExportData{
		ID:         meta.ID,
		Algorithm:  meta.Algorithm,
		Size:       meta.Size,
		K:          meta.K,
		J:          meta.J,
		T:          meta.T,
		Tc:         meta.Tc,
		Iterations: len(obs),
		H:          make([]float64, len(obs)),
		M:          make([]float64, len(obs)),
		Metrics:    meta.Metrics,
	}

	for i, o := range obs {
		data.H[i] = o.H
		data.M[i] = o.M
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
