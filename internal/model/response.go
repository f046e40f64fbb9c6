package model

import (
	json "github.com/goccy/go-json"

	"calculator-engine/internal/form"
	"calculator-engine/internal/jsonpatch"
)

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	Calculator             string `json:"calculator"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
	Cached                 bool   `json:"cached"`
}

// CalculationResult.Inputs holds the canonical, clamped inputs actually used.
type CalculationResult struct {
	Messages   []CalculationMessage `json:"messages"`
	Inputs     form.Values          `json:"inputs,omitempty"`
	ShareQuery string               `json:"share_query,omitempty"`
	Output     json.RawMessage      `json:"output"`
}

type CompareResponse struct {
	Base    *CalculationResponse `json:"base"`
	Variant *CalculationResponse `json:"variant"`
	Changes []jsonpatch.Op       `json:"changes"`
}

type CalculatorInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
