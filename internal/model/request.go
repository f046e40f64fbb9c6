package model

import "calculator-engine/internal/form"

type CalculationRequest struct {
	Calculator string      `json:"calculator"`
	Inputs     form.Values `json:"inputs"`
}

// CompareRequest runs one calculator twice. Variant values override Base.
type CompareRequest struct {
	Calculator string      `json:"calculator"`
	Base       form.Values `json:"base"`
	Variant    form.Values `json:"variant"`
}
