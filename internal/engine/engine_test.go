package engine

import (
	"context"
	"math"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"calculator-engine/internal/cache"
	"calculator-engine/internal/form"
	"calculator-engine/internal/model"
)

func savingsRequest() *model.CalculationRequest {
	return &model.CalculationRequest{
		Calculator: "savings",
		Inputs: form.Values{
			"current_balance":     "0",
			"annual_contribution": "1200",
			"return_rate":         "5",
			"compounding":         "monthly",
			"years":               "1",
		},
	}
}

func decodeOutput(t *testing.T, resp *model.CalculationResponse) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(resp.CalculationResult.Output, &out); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	return out
}

func TestSavingsExample(t *testing.T) {
	resp := New(nil, 0, nil).Process(context.Background(), savingsRequest())

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}

	if resp.CalculationMetadata.Calculator != "savings" {
		t.Fatalf("expected calculator savings, got %s", resp.CalculationMetadata.Calculator)
	}

	if resp.CalculationMetadata.CalculationID == "" {
		t.Fatal("expected a calculation_id")
	}

	if len(resp.CalculationResult.Messages) != 0 {
		t.Fatalf("expected 0 messages, got %d", len(resp.CalculationResult.Messages))
	}

	out := decodeOutput(t, resp)
	if got := out["final_balance"].(float64); math.Abs(got-1227.89) > 0.01 {
		t.Fatalf("expected final_balance ~1227.89, got %.4f", got)
	}
	if got := out["total_contributions"].(float64); math.Abs(got-1200) > 1e-9 {
		t.Fatalf("expected total_contributions 1200, got %.4f", got)
	}
	if got := out["total_growth"].(float64); math.Abs(got-27.89) > 0.01 {
		t.Fatalf("expected total_growth ~27.89, got %.4f", got)
	}

	// canonical inputs and share link
	if resp.CalculationResult.Inputs["return_rate"] != "5" {
		t.Fatalf("expected canonical return_rate 5, got %q", resp.CalculationResult.Inputs["return_rate"])
	}
	if resp.CalculationResult.ShareQuery == "" {
		t.Fatal("expected a share query")
	}
}

func TestUnknownCalculator(t *testing.T) {
	resp := New(nil, 0, nil).Process(context.Background(), &model.CalculationRequest{Calculator: "fico"})

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.CalculationResult.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(resp.CalculationResult.Messages))
	}
	msg := resp.CalculationResult.Messages[0]
	if msg.Code != "UNKNOWN_CALCULATOR" || msg.Level != "CRITICAL" {
		t.Fatalf("expected CRITICAL UNKNOWN_CALCULATOR, got %s %s", msg.Level, msg.Code)
	}
	if string(resp.CalculationResult.Output) != "null" {
		t.Fatalf("expected null output, got %s", resp.CalculationResult.Output)
	}
}

func TestMissingFieldsFail(t *testing.T) {
	resp := New(nil, 0, nil).Process(context.Background(), &model.CalculationRequest{Calculator: "ira"})

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	for i, m := range resp.CalculationResult.Messages {
		if m.ID != i {
			t.Fatalf("expected message id %d, got %d", i, m.ID)
		}
		if m.Code != "MISSING_FIELD" {
			t.Fatalf("expected MISSING_FIELD, got %s", m.Code)
		}
	}
	if resp.CalculationResult.ShareQuery != "" {
		t.Fatal("expected no share query for a failed validation")
	}
}

func TestClampedValueWarnsButSucceeds(t *testing.T) {
	req := savingsRequest()
	req.Inputs["return_rate"] = "500"

	resp := New(nil, 0, nil).Process(context.Background(), req)

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.CalculationResult.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(resp.CalculationResult.Messages))
	}
	msg := resp.CalculationResult.Messages[0]
	if msg.Level != "WARNING" || msg.Code != "VALUE_CLAMPED" || msg.Field != "return_rate" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestDegenerateRandomRangeFails(t *testing.T) {
	resp := New(nil, 0, nil).Process(context.Background(), &model.CalculationRequest{
		Calculator: "random",
		Inputs:     form.Values{"min": "1", "max": "10", "count": "20", "unique": "true"},
	})

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationResult.Messages[0].Code != "RANGE_TOO_SMALL" {
		t.Fatalf("expected RANGE_TOO_SMALL, got %s", resp.CalculationResult.Messages[0].Code)
	}
	if string(resp.CalculationResult.Output) != "null" {
		t.Fatalf("expected no partial output, got %s", resp.CalculationResult.Output)
	}
}

func TestIdempotent(t *testing.T) {
	e := New(nil, 0, nil)
	a := e.Process(context.Background(), savingsRequest())
	b := e.Process(context.Background(), savingsRequest())

	if string(a.CalculationResult.Output) != string(b.CalculationResult.Output) {
		t.Fatal("expected identical output for identical inputs")
	}
	if a.CalculationMetadata.CalculationID == b.CalculationMetadata.CalculationID {
		t.Fatal("expected distinct calculation ids")
	}
}

func TestCacheHit(t *testing.T) {
	mem := cache.NewMemory(16, time.Hour)
	e := New(mem, 0, nil)

	first := e.Process(context.Background(), savingsRequest())
	if first.CalculationMetadata.Cached {
		t.Fatal("expected first calculation to miss the cache")
	}

	// Equivalent raw inputs share the canonical key.
	req := savingsRequest()
	req.Inputs["annual_contribution"] = "$1,200"
	second := e.Process(context.Background(), req)
	if !second.CalculationMetadata.Cached {
		t.Fatal("expected second calculation to hit the cache")
	}
	if string(first.CalculationResult.Output) != string(second.CalculationResult.Output) {
		t.Fatal("expected cached output to match")
	}
	if mem.Len() != 1 {
		t.Fatalf("expected 1 cache entry, got %d", mem.Len())
	}
}

func TestUnseededRandomIsNotCached(t *testing.T) {
	mem := cache.NewMemory(16, time.Hour)
	e := New(mem, 0, nil)
	req := &model.CalculationRequest{Calculator: "random", Inputs: form.Values{"min": "1", "max": "100", "count": "5"}}

	e.Process(context.Background(), req)
	resp := e.Process(context.Background(), req)

	if resp.CalculationMetadata.Cached {
		t.Fatal("expected unseeded draw to bypass the cache")
	}
	if mem.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", mem.Len())
	}

	req.Inputs["seed"] = "3"
	e.Process(context.Background(), req)
	if mem.Len() != 1 {
		t.Fatalf("expected seeded draw to be cached, got %d entries", mem.Len())
	}
}

func TestCompare(t *testing.T) {
	resp := New(nil, 0, nil).Compare(context.Background(), &model.CompareRequest{
		Calculator: "savings",
		Base:       savingsRequest().Inputs,
		Variant:    form.Values{"annual_contribution": "2400"},
	})

	if resp.Variant.CalculationResult.Inputs["annual_contribution"] != "2400" {
		t.Fatalf("expected variant contribution 2400, got %q", resp.Variant.CalculationResult.Inputs["annual_contribution"])
	}
	if resp.Base.CalculationResult.Inputs["annual_contribution"] != "1200" {
		t.Fatal("expected base inputs to be left untouched")
	}

	found := false
	for _, op := range resp.Changes {
		if op.Path == "/final_balance" && op.Op == "replace" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a replace of /final_balance, got %+v", resp.Changes)
	}
}

func TestCompareFailureHasNoChanges(t *testing.T) {
	resp := New(nil, 0, nil).Compare(context.Background(), &model.CompareRequest{
		Calculator: "savings",
		Base:       savingsRequest().Inputs,
		Variant:    form.Values{"return_rate": "abc"},
	})

	if resp.Variant.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected variant FAILURE, got %s", resp.Variant.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.Changes) != 0 {
		t.Fatalf("expected no changes, got %d", len(resp.Changes))
	}
}
