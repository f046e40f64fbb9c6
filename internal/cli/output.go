package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"calculator-engine/internal/model"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var Formats = []string{FormatTable, FormatJSON, FormatYAML}

// Write renders v in format. Table rendering understands calculation
// responses and calculator lists; other values fall back to YAML.
func Write(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		return writeYAML(w, v)
	case FormatTable, "":
		switch x := v.(type) {
		case *model.CalculationResponse:
			return writeResponse(w, x)
		case *model.CompareResponse:
			return writeCompare(w, x)
		case []model.CalculatorInfo:
			return writeList(w, x)
		default:
			return writeYAML(w, v)
		}
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// writeYAML goes through JSON first so json tags and raw outputs are
// honoured.
func writeYAML(w io.Writer, v any) error {
	generic, err := toGeneric(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func toGeneric(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	var generic any
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	return generic, nil
}

func writeResponse(w io.Writer, resp *model.CalculationResponse) error {
	var b strings.Builder
	meta := resp.CalculationMetadata
	res := resp.CalculationResult

	b.WriteString("\n")
	b.WriteString(RenderTitle(strings.ToUpper(meta.Calculator) + "  " + RenderOutcome(meta.CalculationOutcome)))
	b.WriteString("\n\n")

	if len(res.Messages) > 0 {
		rows := make([][]string, 0, len(res.Messages))
		for _, m := range res.Messages {
			rows = append(rows, []string{RenderLevel(m.Level), m.Code, m.Field, m.Message})
		}
		b.WriteString(RenderTable(Table{
			Title:   "Messages",
			Headers: []string{"Level", "Code", "Field", "Message"},
			Rows:    rows,
		}))
		b.WriteString("\n")
	}

	if len(res.Output) > 0 && string(res.Output) != "null" {
		var out any
		if err := json.Unmarshal(res.Output, &out); err != nil {
			return fmt.Errorf("decoding output: %w", err)
		}
		for _, t := range FlattenOutput(out) {
			b.WriteString(RenderTable(t))
			b.WriteString("\n")
		}
	}

	if res.ShareQuery != "" {
		b.WriteString(RenderMuted("  share: ?" + res.ShareQuery))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeCompare shows the variant in full, then what changed from the base.
func writeCompare(w io.Writer, resp *model.CompareResponse) error {
	if err := writeResponse(w, resp.Variant); err != nil {
		return err
	}
	if len(resp.Changes) == 0 {
		_, err := io.WriteString(w, RenderMuted("  no changes from base")+"\n")
		return err
	}
	rows := make([][]string, 0, len(resp.Changes))
	for _, op := range resp.Changes {
		rows = append(rows, []string{op.Path, op.Op, FormatValue(op.From), FormatValue(op.Value)})
	}
	_, err := io.WriteString(w, "\n"+RenderTable(Table{
		Title:   "Changes vs base",
		Headers: []string{"Path", "Op", "Base", "Variant"},
		Rows:    rows,
	}))
	return err
}

func writeList(w io.Writer, infos []model.CalculatorInfo) error {
	rows := make([][]string, 0, len(infos))
	for _, c := range infos {
		rows = append(rows, []string{c.Name, c.Title, c.Category})
	}
	_, err := io.WriteString(w, RenderTable(Table{
		Headers: []string{"Name", "Title", "Category"},
		Rows:    rows,
	}))
	return err
}
