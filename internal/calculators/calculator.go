package calculators

import (
	"errors"
	"fmt"

	"calculator-engine/internal/form"
	"calculator-engine/internal/model"
)

// Input is a parsed, clamped set of calculator inputs. Query returns the
// canonical values that reproduce it, which doubles as the share snapshot.
type Input interface {
	Query() form.Values
}

// Calculator defines the contract for all calculator implementations.
// Validate turns raw form values into an Input and reports problems; Apply
// runs the formula. A CRITICAL message from either stops the calculation.
type Calculator interface {
	Name() string
	Title() string
	Category() string
	Validate(values form.Values) (Input, []model.CalculationMessage)
	Apply(in Input) (any, []model.CalculationMessage)
}

// Deterministic reports whether applying in twice yields identical output.
// Inputs are deterministic unless they say otherwise.
func Deterministic(in Input) bool {
	if d, ok := in.(interface{ Deterministic() bool }); ok {
		return d.Deterministic()
	}
	return true
}

type calculator[I Input, R any] struct {
	name     string
	title    string
	category string
	parse    func(*form.Parser) I
	apply    func(I) (R, error)
	notes    func(I, R) []model.CalculationMessage
}

func (c *calculator[I, R]) Name() string     { return c.name }
func (c *calculator[I, R]) Title() string    { return c.title }
func (c *calculator[I, R]) Category() string { return c.category }

func (c *calculator[I, R]) Validate(values form.Values) (Input, []model.CalculationMessage) {
	p := form.NewParser(values)
	in := c.parse(p)

	msgs := ErrorMessages(p.Err())
	for _, adj := range p.Adjustments() {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelWarning,
			Code:    form.CodeValueClamped,
			Field:   adj.Field,
			Message: adj.String(),
		})
	}
	return in, msgs
}

func (c *calculator[I, R]) Apply(raw Input) (any, []model.CalculationMessage) {
	in, ok := raw.(I)
	if !ok {
		return nil, []model.CalculationMessage{critical("", "INVALID_INPUT",
			fmt.Sprintf("%s cannot apply inputs of type %T", c.name, raw))}
	}
	res, err := c.apply(in)
	if err != nil {
		return nil, ErrorMessages(err)
	}
	if c.notes == nil {
		return res, nil
	}
	return res, c.notes(in, res)
}

// ErrorMessages converts field and validation errors into CRITICAL messages.
func ErrorMessages(err error) []model.CalculationMessage {
	if err == nil {
		return nil
	}
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		msgs := make([]model.CalculationMessage, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			msgs = append(msgs, critical(fe.Field, fe.Code, fe.Message))
		}
		return msgs
	}
	var fe *form.FieldError
	if errors.As(err, &fe) {
		return []model.CalculationMessage{critical(fe.Field, fe.Code, fe.Message)}
	}
	return []model.CalculationMessage{critical("", "CALCULATION_FAILED", err.Error())}
}

func critical(field, code, message string) model.CalculationMessage {
	return model.CalculationMessage{Level: model.LevelCritical, Code: code, Field: field, Message: message}
}

func warning(field, code, message string) model.CalculationMessage {
	return model.CalculationMessage{Level: model.LevelWarning, Code: code, Field: field, Message: message}
}

// pure lifts an infallible formula into the calculator apply signature.
func pure[I, R any](f func(I) R) func(I) (R, error) {
	return func(in I) (R, error) {
		return f(in), nil
	}
}
