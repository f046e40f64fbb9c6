package cli

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"calculator-engine/internal/model"
)

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "-"},
		{true, "yes"},
		{false, "no"},
		{1227.8934, "1,227.89"},
		{2024.0, "2,024"},
		{-5.5, "-5.50"},
		{-0.25, "-0.25"},
		{"FF", "FF"},
		{[]any{1.0, 2.0, 3.0}, "1, 2, 3"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatValue(c.in), "FormatValue(%v)", c.in)
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Final Balance", Humanize("final_balance"))
	assert.Equal(t, "Traditional Net Balance", Humanize("traditional.net_balance"))
	assert.Equal(t, "Social Security", Humanize("social-security"))
}

func TestFlattenOutput(t *testing.T) {
	var out any
	require.NoError(t, json.Unmarshal([]byte(`{
		"years": 2,
		"final_balance": 2500.5,
		"roth": {"net_balance": 10},
		"numbers": [3, 1],
		"projection": [{"year": 0, "balance": 0}, {"year": 1, "balance": 1200}]
	}`), &out))

	tables := FlattenOutput(out)
	require.Len(t, tables, 2)

	summary := tables[0]
	assert.Equal(t, [][]string{
		{"Final Balance", "2,500.50"},
		{"Numbers", "3, 1"},
		{"Roth Net Balance", "10"},
		{"Years", "2"},
	}, summary.Rows)

	proj := tables[1]
	assert.Equal(t, "Projection", proj.Title)
	assert.Equal(t, []string{"Balance", "Year"}, proj.Headers)
	assert.Equal(t, []string{"1,200", "1"}, proj.Rows[1])
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Schedule",
		Headers: []string{"Year", "Balance"},
		Rows:    [][]string{{"1", "1,227.89"}, {"2", "2,514.08"}},
	})
	assert.Contains(t, out, "Schedule")
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "1,227.89")
	assert.Equal(t, 7, strings.Count(out, "\n"))

	assert.Empty(t, RenderTable(Table{}))
}

func sampleResponse() *model.CalculationResponse {
	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{Calculator: "binary", CalculationOutcome: model.OutcomeSuccess},
		CalculationResult: model.CalculationResult{
			Messages:   []model.CalculationMessage{{Level: model.LevelWarning, Code: "VALUE_CLAMPED", Field: "x", Message: "x adjusted from 1 to 0"}},
			ShareQuery: "calc=binary&from_base=10&value=5",
			Output:     json.RawMessage(`{"binary":"101","bit_length":3}`),
		},
	}
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, sampleResponse()))
	out := buf.String()
	assert.Contains(t, out, "BINARY")
	assert.Contains(t, out, "VALUE_CLAMPED")
	assert.Contains(t, out, "Bit Length")
	assert.Contains(t, out, "?calc=binary")
}

func TestWrite_JSONAndYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleResponse()))
	var decoded model.CalculationResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "binary", decoded.CalculationMetadata.Calculator)

	buf.Reset()
	require.NoError(t, Write(&buf, FormatYAML, sampleResponse()))
	var generic map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &generic))
	result := generic["calculation_result"].(map[string]any)
	assert.Equal(t, "101", result["output"].(map[string]any)["binary"])
}

func TestWrite_List(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, []model.CalculatorInfo{{Name: "pace", Title: "Running Pace", Category: "health"}}))
	assert.Contains(t, buf.String(), "Running Pace")
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", sampleResponse())
	assert.ErrorContains(t, err, "unknown format")
}
