package engine

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"calculator-engine/internal/cache"
	"calculator-engine/internal/calculators"
	"calculator-engine/internal/form"
	"calculator-engine/internal/jsonpatch"
	"calculator-engine/internal/model"
	"calculator-engine/internal/snapshot"
)

var jsonNull = json.RawMessage("null")

// cachedResult is what the cache holds for one canonical input set.
// Validation warnings are not stored: they depend on the raw request.
type cachedResult struct {
	Output   json.RawMessage            `json:"output"`
	Messages []model.CalculationMessage `json:"messages,omitempty"`
}

type Engine struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// New builds an engine. A nil cache disables caching and a nil logger
// discards logs.
func New(c cache.Cache, ttl time.Duration, logger *zap.Logger) *Engine {
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cache: c, ttl: ttl, logger: logger}
}

// Process runs one calculation. It never returns nil: every problem is
// reported as a message and a FAILURE outcome.
func (e *Engine) Process(ctx context.Context, req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	var allMessages []model.CalculationMessage
	outcome := model.OutcomeSuccess
	output := jsonNull
	hit := false
	var inputs form.Values
	var shareQuery string

	calc, ok := calculators.Get(req.Calculator)
	if !ok {
		allMessages = appendMessages(allMessages, []model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    "UNKNOWN_CALCULATOR",
			Message: fmt.Sprintf("Unknown calculator: %s", req.Calculator),
		}})
		outcome = model.OutcomeFailure
	} else {
		// Validate
		in, validationMsgs := calc.Validate(req.Inputs)
		allMessages = appendMessages(allMessages, validationMsgs)

		if model.HasCritical(validationMsgs) {
			outcome = model.OutcomeFailure
		} else {
			inputs = in.Query()
			shareQuery = snapshot.Encode(calc.Name(), inputs)

			// Apply
			var res cachedResult
			res, hit = e.apply(ctx, calc, in, shareQuery)
			allMessages = appendMessages(allMessages, res.Messages)
			if model.HasCritical(res.Messages) {
				outcome = model.OutcomeFailure
			} else {
				output = res.Output
			}
		}
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}

	e.logger.Debug("calculation processed",
		zap.String("calculator", req.Calculator),
		zap.String("outcome", outcome),
		zap.Bool("cached", hit),
		zap.Int("messages", len(allMessages)),
		zap.Duration("elapsed", elapsed),
	)

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			Calculator:             req.Calculator,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
			Cached:                 hit,
		},
		CalculationResult: model.CalculationResult{
			Messages:   allMessages,
			Inputs:     inputs,
			ShareQuery: shareQuery,
			Output:     output,
		},
	}
}

// Compare runs the base scenario and a variant that overrides some of its
// inputs, then diffs the two outputs.
func (e *Engine) Compare(ctx context.Context, req *model.CompareRequest) *model.CompareResponse {
	variantInputs := req.Base.Clone()
	for k, v := range req.Variant {
		variantInputs[k] = v
	}

	resp := &model.CompareResponse{
		Base:    e.Process(ctx, &model.CalculationRequest{Calculator: req.Calculator, Inputs: req.Base}),
		Variant: e.Process(ctx, &model.CalculationRequest{Calculator: req.Calculator, Inputs: variantInputs}),
		Changes: []jsonpatch.Op{},
	}
	if resp.Base.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess ||
		resp.Variant.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		return resp
	}

	changes, err := jsonpatch.DiffJSON(resp.Base.CalculationResult.Output, resp.Variant.CalculationResult.Output)
	if err != nil {
		e.logger.Warn("diffing scenario outputs", zap.String("calculator", req.Calculator), zap.Error(err))
		return resp
	}
	if changes != nil {
		resp.Changes = changes
	}
	return resp
}

// apply runs the calculator, serving deterministic inputs from the cache
// when possible. Cache failures are logged and fall back to computing.
func (e *Engine) apply(ctx context.Context, calc calculators.Calculator, in calculators.Input, key string) (cachedResult, bool) {
	deterministic := calculators.Deterministic(in)
	if deterministic {
		if res, ok := e.lookup(ctx, key); ok {
			return res, true
		}
	}

	out, msgs := calc.Apply(in)
	res := cachedResult{Messages: msgs}
	if model.HasCritical(msgs) {
		return res, false
	}

	b, err := json.Marshal(out)
	if err != nil {
		res.Messages = append(res.Messages, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "OUTPUT_ENCODING_FAILED",
			Message: err.Error(),
		})
		return res, false
	}
	res.Output = b

	if deterministic {
		e.store(ctx, key, res)
	}
	return res, false
}

func (e *Engine) lookup(ctx context.Context, key string) (cachedResult, bool) {
	var res cachedResult
	b, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return res, false
	}
	if !ok {
		return res, false
	}
	if err := json.Unmarshal(b, &res); err != nil {
		e.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		return res, false
	}
	return res, true
}

func (e *Engine) store(ctx context.Context, key string, res cachedResult) {
	b, err := json.Marshal(res)
	if err != nil {
		e.logger.Warn("encoding cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := e.cache.Set(ctx, key, b, e.ttl); err != nil {
		e.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// appendMessages numbers msgs after the ones already collected.
func appendMessages(all, msgs []model.CalculationMessage) []model.CalculationMessage {
	for _, m := range msgs {
		m.ID = len(all)
		all = append(all, m)
	}
	return all
}
