package jsonpatch

import (
	"slices"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Op is one RFC 6902 operation.
type Op struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
	// From holds the replaced or removed value so a reader can see both sides.
	From any `json:"from_value,omitempty"`
}

// MarshalJSON always writes value for add and replace, even when it is null.
func (o Op) MarshalJSON() ([]byte, error) {
	if o.Op == "remove" {
		return json.Marshal(struct {
			Op   string `json:"op"`
			Path string `json:"path"`
			From any    `json:"from_value,omitempty"`
		}{o.Op, o.Path, o.From})
	}
	return json.Marshal(struct {
		Op    string `json:"op"`
		Path  string `json:"path"`
		Value any    `json:"value"`
		From  any    `json:"from_value,omitempty"`
	}{o.Op, o.Path, o.Value, o.From})
}

// DiffJSON decodes two JSON documents and diffs them.
func DiffJSON(a, b []byte) ([]Op, error) {
	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return nil, err
	}
	return Diff(av, bv, ""), nil
}

// Diff computes an RFC 6902 JSON Patch that transforms a into b.
// Both a and b should be the result of json.Unmarshal into any.
// Path should be "" for the root document. Object keys are visited in
// sorted order so the patch is stable.
func Diff(a, b any, path string) []Op {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []Op{replaceOp(path, a, b)}
	}

	aMap, aIsMap := a.(map[string]any)
	bMap, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]any)
	bArr, bIsArr := b.([]any)
	if aIsArr && bIsArr {
		return diffArrays(aArr, bArr, path)
	}

	if aIsMap || bIsMap || aIsArr || bIsArr || a != b {
		return []Op{replaceOp(path, a, b)}
	}
	return nil
}

func diffObjects(a, b map[string]any, path string) []Op {
	var ops []Op

	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			ops = append(ops, Op{Op: "remove", Path: path + "/" + escapeKey(k), From: a[k]})
		}
	}

	for _, k := range sortedKeys(b) {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			ops = append(ops, Op{Op: "add", Path: childPath, Value: b[k]})
			continue
		}
		ops = append(ops, Diff(av, b[k], childPath)...)
	}

	return ops
}

func diffArrays(a, b []any, path string) []Op {
	var ops []Op
	common := min(len(a), len(b))

	for i := 0; i < common; i++ {
		ops = append(ops, Diff(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}

	// Removals run from the end so earlier indices stay valid.
	for i := len(a) - 1; i >= common; i-- {
		ops = append(ops, Op{Op: "remove", Path: path + "/" + strconv.Itoa(i), From: a[i]})
	}
	for i := common; i < len(b); i++ {
		ops = append(ops, Op{Op: "add", Path: path + "/" + strconv.Itoa(i), Value: b[i]})
	}

	return ops
}

func replaceOp(path string, from, to any) Op {
	return Op{Op: "replace", Path: path, Value: to, From: from}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
