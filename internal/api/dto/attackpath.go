package dto

import (
	"encoding/json"
	"time"
)

// AttackPathDTO represents an attack path in API responses. Nodes and
// edges are stored as JSON text and passed through verbatim.
type AttackPathDTO struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Severity   string          `json:"severity"`
	Nodes      json.RawMessage `json:"nodes"`
	Edges      json.RawMessage `json:"edges"`
	Likelihood float64         `json:"likelihood"`
	CreatedAt  time.Time       `json:"createdAt"`
}
