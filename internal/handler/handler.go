package handler

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"calculator-engine/internal/calculators"
	"calculator-engine/internal/engine"
	"calculator-engine/internal/model"
	"calculator-engine/internal/snapshot"
)

const sharedPrefix = "/api/calculate/"

// DefaultTimeout bounds the cache round trips of one request.
const DefaultTimeout = 5 * time.Second

type Handler struct {
	engine  *engine.Engine
	limiter *RateLimiter
	logger  *zap.Logger
	timeout time.Duration
}

// New wires the HTTP routes. limiter may be nil to disable rate limiting.
func New(e *engine.Engine, limiter *RateLimiter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{engine: e, limiter: limiter, logger: logger, timeout: DefaultTimeout}
}

// Handle is the fasthttp entry point.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	if path == "/healthz" {
		if !ctx.IsGet() {
			methodNotAllowed(ctx, fasthttp.MethodGet)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		return
	}

	if !strings.HasPrefix(path, "/api/") {
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
		return
	}
	if !h.allow(ctx) {
		return
	}

	switch {
	case path == "/api/calculate":
		h.HandleCalculation(ctx)
	case path == "/api/compare":
		h.HandleCompare(ctx)
	case path == "/api/calculators":
		h.HandleList(ctx)
	case strings.HasPrefix(path, sharedPrefix):
		h.HandleShared(ctx, strings.TrimPrefix(path, sharedPrefix))
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

// HandleCalculation serves POST /api/calculate.
func (h *Handler) HandleCalculation(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		methodNotAllowed(ctx, fasthttp.MethodPost)
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Calculator) == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "A calculator name is required")
		return
	}

	h.respond(ctx, &req)
}

// HandleShared serves GET /api/calculate/{name}?k=v, the shareable link form.
func (h *Handler) HandleShared(ctx *fasthttp.RequestCtx, name string) {
	if !ctx.IsGet() {
		methodNotAllowed(ctx, fasthttp.MethodGet)
		return
	}
	if _, ok := calculators.Get(name); !ok {
		writeError(ctx, fasthttp.StatusNotFound, "Unknown calculator: "+name)
		return
	}

	h.respond(ctx, &model.CalculationRequest{
		Calculator: name,
		Inputs:     snapshot.FromArgs(ctx.QueryArgs()),
	})
}

// HandleCompare serves POST /api/compare.
func (h *Handler) HandleCompare(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		methodNotAllowed(ctx, fasthttp.MethodPost)
		return
	}

	var req model.CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Calculator) == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "A calculator name is required")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	resp := h.engine.Compare(c, &req)

	status := fasthttp.StatusOK
	if resp.Base.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess ||
		resp.Variant.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		status = fasthttp.StatusUnprocessableEntity
	}
	writeJSON(ctx, status, resp)
}

// HandleList serves GET /api/calculators.
func (h *Handler) HandleList(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		methodNotAllowed(ctx, fasthttp.MethodGet)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, calculators.List())
}

func (h *Handler) respond(ctx *fasthttp.RequestCtx, req *model.CalculationRequest) {
	c, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	resp := h.engine.Process(c, req)

	status := fasthttp.StatusOK
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		status = fasthttp.StatusUnprocessableEntity
	}
	writeJSON(ctx, status, resp)
}

func (h *Handler) allow(ctx *fasthttp.RequestCtx) bool {
	if h.limiter == nil {
		return true
	}
	client := ctx.RemoteIP().String()
	ok, retryAfter := h.limiter.Allow(client)
	if ok {
		return true
	}
	h.logger.Debug("rate limited", zap.String("client", client), zap.Duration("retry_after", retryAfter))
	ctx.Response.Header.Set(fasthttp.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
	writeError(ctx, fasthttp.StatusTooManyRequests, "Rate limit exceeded")
	return false
}

func methodNotAllowed(ctx *fasthttp.RequestCtx, allowed string) {
	ctx.Response.Header.Set(fasthttp.HeaderAllow, allowed)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		ctx.Error("Internal server error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
