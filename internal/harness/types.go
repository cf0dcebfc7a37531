package harness

import (
	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/storage"
)

// Step outcomes recorded in the trace.
const (
	OutcomeOK    = "ok"
	OutcomeNoop  = "noop"
	OutcomeError = "error"
)

// TraceEvent records one executed flow step and the cart after it.
type TraceEvent struct {
	Step    int    `json:"step"`
	Op      string `json:"op"`
	ItemID  string `json:"item_id,omitempty"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
	Notice  string `json:"notice,omitempty"`
	Count   int    `json:"count"`
	Total   string `json:"total"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion matched.
	Pass bool `json:"pass"`

	Trace []TraceEvent `json:"trace"`

	// Errors contains expect and assertion failures.
	Errors []string `json:"errors,omitempty"`

	// Transcripts holds the text of every successful checkout in order.
	Transcripts []string `json:"transcripts,omitempty"`

	// Cart is the final cart.
	Cart cart.Cart `json:"cart"`

	// Orders is the final order log.
	Orders []storage.OrderRecord `json:"orders,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
