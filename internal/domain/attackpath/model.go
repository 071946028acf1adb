package attackpath

import "time"

// AttackPath represents a modeled attack chain across network assets.
// Nodes and Edges hold JSON-encoded graph fragments. Append-mostly.
type AttackPath struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Severity   string    `json:"severity"`
	Nodes      string    `json:"nodes"`
	Edges      string    `json:"edges"`
	Likelihood float64   `json:"likelihood"`
	CreatedAt  time.Time `json:"created_at"`
}
