package jsonpatch

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffJSON_ScalarChanges(t *testing.T) {
	ops, err := DiffJSON(
		[]byte(`{"final_balance": 100, "years": 10, "label": "a"}`),
		[]byte(`{"final_balance": 150, "years": 10, "label": "a"}`),
	)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, Op{Op: "replace", Path: "/final_balance", Value: 150.0, From: 100.0}, ops[0])
}

func TestDiffJSON_Identical(t *testing.T) {
	ops, err := DiffJSON([]byte(`{"a": [1, 2, {"b": true}]}`), []byte(`{"a": [1, 2, {"b": true}]}`))
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestDiff_ArrayGrowAndShrink(t *testing.T) {
	ops := Diff([]any{1.0, 2.0, 3.0}, []any{1.0}, "/rows")
	require.Len(t, ops, 2)
	assert.Equal(t, "/rows/2", ops[0].Path)
	assert.Equal(t, "/rows/1", ops[1].Path)
	assert.Equal(t, "remove", ops[0].Op)

	ops = Diff([]any{1.0}, []any{1.0, 2.0}, "/rows")
	require.Len(t, ops, 1)
	assert.Equal(t, Op{Op: "add", Path: "/rows/1", Value: 2.0}, ops[0])
}

func TestDiff_KeysAreSortedAndEscaped(t *testing.T) {
	a := map[string]any{"z": 1.0, "a/b": 1.0, "m~n": 1.0}
	b := map[string]any{"z": 2.0, "a/b": 2.0, "m~n": 2.0}

	ops := Diff(a, b, "")
	require.Len(t, ops, 3)
	assert.Equal(t, "/a~1b", ops[0].Path)
	assert.Equal(t, "/m~0n", ops[1].Path)
	assert.Equal(t, "/z", ops[2].Path)
}

func TestDiff_TypeChange(t *testing.T) {
	ops := Diff(map[string]any{"x": []any{1.0}}, map[string]any{"x": map[string]any{}}, "")
	require.Len(t, ops, 1)
	assert.Equal(t, "replace", ops[0].Op)
	assert.Equal(t, "/x", ops[0].Path)
}

func TestDiffJSON_InvalidInput(t *testing.T) {
	_, err := DiffJSON([]byte(`{`), []byte(`{}`))
	assert.Error(t, err)
}

func TestOp_NullValueIsKept(t *testing.T) {
	ops, err := DiffJSON([]byte(`{"soul_urge": 6}`), []byte(`{"soul_urge": null}`))
	require.NoError(t, err)
	require.Len(t, ops, 1)

	b, err := json.Marshal(ops[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"replace","path":"/soul_urge","value":null,"from_value":6}`, string(b))

	b, err = json.Marshal(Op{Op: "remove", Path: "/x", From: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"remove","path":"/x","from_value":1}`, string(b))
}
