// Package funding ingests external transaction events and normalizes them
// into the shape the simulation applies between ticks.
package funding

import "fmt"

// Event is one normalized funding transaction. Amount is always positive;
// sells arrive with IsWithdrawal set. TeamID is optional and only honored
// under the explicit team strategy.
type Event struct {
	Wallet         string  `json:"wallet" jsonschema:"required"`
	Amount         float64 `json:"amount" jsonschema:"required,minimum=0"`
	IsWithdrawal   bool    `json:"isWithdrawal,omitempty"`
	TeamID         string  `json:"teamId,omitempty"`
	TimestampMs    int64   `json:"timestampMs" jsonschema:"required,minimum=0"`
	IdempotencyKey string  `json:"idempotencyKey,omitempty"`
}

// Page is the wire shape returned by the transaction API.
type Page struct {
	Transactions []Event `json:"transactions"`
}

// Normalized returns a copy with a positive amount, the sign folded into
// IsWithdrawal, and a synthesized idempotency key when the API omitted one.
func (e Event) Normalized() Event {
	if e.Amount < 0 {
		e.Amount = -e.Amount
		e.IsWithdrawal = true
	}
	if e.IdempotencyKey == "" {
		e.IdempotencyKey = fmt.Sprintf("%s:%d:%.8f", e.Wallet, e.TimestampMs, e.Amount)
	}
	return e
}
