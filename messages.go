package main

// stateMessage is the renderer-facing snapshot broadcast over the websocket
// and served by /state. Trees and decorations are static per world; clients
// may cache them keyed on the seed.
type stateMessage struct {
	Type          string       `json:"type"`
	Tick          uint64       `json:"t"`
	ServerTime    int64        `json:"serverTime"`
	Monkeys       []Monkey     `json:"monkeys"`
	Bananas       []Banana     `json:"bananas"`
	Teams         []Team       `json:"teams"`
	Trees         []Tree       `json:"trees,omitempty"`
	Decorations   []Decoration `json:"decorations,omitempty"`
	Config        worldConfig  `json:"config"`
	CombatEnabled bool         `json:"combatEnabled"`
}

type diagnosticsMessage struct {
	Tick          uint64            `json:"t"`
	Subscribers   int               `json:"subscribers"`
	LiveMonkeys   int               `json:"liveMonkeys"`
	Teams         int               `json:"teams"`
	Bananas       int               `json:"bananas"`
	CombatEnabled bool              `json:"combatEnabled"`
	Telemetry     telemetrySnapshot `json:"telemetry"`
}

type fundRequest struct {
	Wallet         string  `json:"wallet"`
	Amount         float64 `json:"amount"`
	IsWithdrawal   bool    `json:"isWithdrawal"`
	TeamID         string  `json:"teamId"`
	IdempotencyKey string  `json:"idempotencyKey"`
}

type combatRequest struct {
	Enabled bool `json:"enabled"`
}
