package jsonlogic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func applyJSON(t *testing.T, ruleJSON, dataJSON string) (JsValue, error) {
	t.Helper()
	rule := mustParseJSON(t, ruleJSON)
	data := mustParseJSON(t, dataJSON)
	return Apply(rule, data)
}

func requireApply(t *testing.T, ruleJSON, dataJSON, expectedJSON string) {
	t.Helper()
	result, err := applyJSON(t, ruleJSON, dataJSON)
	require.NoError(t, err)
	expected := mustParseJSON(t, expectedJSON)
	require.Equal(t, expected, result)
}

func TestApplyRawPassthrough(t *testing.T) {
	tests := []string{`42`, `"hi"`, `null`, `[1,2,3]`, `{"a":1}`}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			requireApply(t, s, `{}`, s)
		})
	}
}

func TestApplyComparisonOperators(t *testing.T) {
	requireApply(t, `{"==": [1, "1"]}`, `{}`, `true`)
	requireApply(t, `{"===": [1, "1"]}`, `{}`, `false`)
	requireApply(t, `{"!=": [1, 2]}`, `{}`, `true`)
	requireApply(t, `{"!==": [1, "1"]}`, `{}`, `true`)
	requireApply(t, `{"!": [0]}`, `{}`, `true`)
	requireApply(t, `{"!!": [1]}`, `{}`, `true`)
	requireApply(t, `{"<": [1, 2, 3]}`, `{}`, `true`)
	requireApply(t, `{"<": [1, 3, 2]}`, `{}`, `false`)
	requireApply(t, `{">=": [2, 2]}`, `{}`, `true`)
}

func TestApplyArithmeticOperators(t *testing.T) {
	requireApply(t, `{"+": []}`, `{}`, `0`)
	requireApply(t, `{"+": [1,2,3]}`, `{}`, `6`)
	requireApply(t, `{"-": [5]}`, `{}`, `-5`)
	requireApply(t, `{"-": [5, 2]}`, `{}`, `3`)
	requireApply(t, `{"*": [2,3,4]}`, `{}`, `24`)
	requireApply(t, `{"/": [6, 2]}`, `{}`, `3`)
	requireApply(t, `{"%": [7, 3]}`, `{}`, `1`)
	requireApply(t, `{"min": [3,1,2]}`, `{}`, `1`)
	requireApply(t, `{"max": [3,1,2]}`, `{}`, `3`)
}

func TestApplyStringOperators(t *testing.T) {
	requireApply(t, `{"cat": ["a", 1, true]}`, `{}`, `"a1true"`)
	requireApply(t, `{"substr": ["abc", 5]}`, `{}`, `""`)
	requireApply(t, `{"substr": ["abc", -10]}`, `{}`, `"abc"`)
	requireApply(t, `{"substr": ["abc", 0, -10]}`, `{}`, `""`)
	requireApply(t, `{"substr": ["hello", 1, 3]}`, `{}`, `"ell"`)
}

func TestApplyArrayOperators(t *testing.T) {
	requireApply(t, `{"merge": [[1,2], [3,4]]}`, `{}`, `[1,2,3,4]`)
	requireApply(t, `{"merge": [1, [2,3]]}`, `{}`, `[1,2,3]`)
	requireApply(t, `{"in": [1, [1,2,3]]}`, `{}`, `true`)
	requireApply(t, `{"in": ["complicated", "this is a complicated test"]}`, `{}`, `true`)
	requireApply(t, `{"map": [[1,2,3], {"+": [{"var":""}, 1]}]}`, `{}`, `[2,3,4]`)
	requireApply(t, `{"filter": [[1,2,3,4], {">": [{"var":""}, 2]}]}`, `{}`, `[3,4]`)
	requireApply(t, `{"reduce": [{"var":"xs"}, {"+": [{"var":"current"}, {"var":"accumulator"}]}, 0]}`,
		`{"xs":[1,2,3,4,5]}`, `15`)
	requireApply(t, `{"all": [[1,2,3], {">": [{"var":""}, 0]}]}`, `{}`, `true`)
	requireApply(t, `{"all": [[], {">": [{"var":""}, 0]}]}`, `{}`, `false`)
	requireApply(t, `{"some": [[1,2,3], {"==": [{"var":""}, 2]}]}`, `{}`, `true`)
	requireApply(t, `{"none": [[], {"==": [{"var":""}, 2]}]}`, `{}`, `true`)
}

func TestApplyLogicOperators(t *testing.T) {
	requireApply(t, `{"if": [true, "yes", "no"]}`, `{}`, `"yes"`)
	requireApply(t, `{"if": [false, "yes", "no"]}`, `{}`, `"no"`)
	requireApply(t, `{"if": []}`, `{}`, `null`)
	requireApply(t, `{"if": [42]}`, `{}`, `42`)
	requireApply(t,
		`{"if": [{"<": [{"var":"x"}, 0]}, "neg", {"==": [{"var":"x"}, 0]}, "zero", "pos"]}`,
		`{"x": -3}`, `"neg"`)
	requireApply(t, `{"or": [false, 0, "a", "b"]}`, `{}`, `"a"`)
	requireApply(t, `{"or": [false, 0]}`, `{}`, `0`)
	requireApply(t, `{"and": [1, 2, 3]}`, `{}`, `3`)
	requireApply(t, `{"and": [1, 0, 3]}`, `{}`, `0`)
}

func TestApplyShortCircuitPurity(t *testing.T) {
	// The second branch of "or" would error if evaluated (substr on a
	// number); short-circuiting on the truthy first branch must avoid
	// that entirely.
	result, err := applyJSON(t, `{"or": [true, {"substr": [5, 0]}]}`, `{}`)
	require.NoError(t, err)
	require.Equal(t, mustParseJSON(t, `true`), result)
}

func TestApplyDataOperators(t *testing.T) {
	requireApply(t, `{"var": "a.1"}`, `{"a": ["x","y","z"]}`, `"y"`)

	data := mustParseJSON(t, `{"a": 1}`)
	result, err := Apply(mustParseJSON(t, `{"var": ""}`), data)
	require.NoError(t, err)
	require.Equal(t, data, result)
	result, err = Apply(mustParseJSON(t, `{"var": null}`), data)
	require.NoError(t, err)
	require.Equal(t, data, result)

	requireApply(t, `{"var": ["b", "fallback"]}`, `{"a": 1}`, `"fallback"`)
	requireApply(t, `{"missing_some": [2, ["a","b","c"]]}`, `{"a": 1}`, `["b","c"]`)
	requireApply(t, `{"missing": ["a","b"]}`, `{"a": 1}`, `["b"]`)
	requireApply(t, `{"missing": [["a","b"]]}`, `{"a": 1}`, `["b"]`)

	// missing(["a","b"], "c") still unwraps args[0] into the key list
	// and ignores "c", matching the original implementation's
	// args[0]-only check rather than a unary-only one.
	requireApply(t, `{"missing": [["a","b"], "c"]}`, `{"a": 1}`, `["b"]`)
}

func TestApplyVarDefaultIsLazy(t *testing.T) {
	// "a" is present, so the erroring default branch must never be
	// evaluated at all.
	requireApply(t, `{"var": ["a", {"substr": [5, 0]}]}`, `{"a": 5}`, `5`)
}

func TestApplyLogOperatorReturnsArgUnchanged(t *testing.T) {
	requireApply(t, `{"log": [42]}`, `{}`, `42`)
}

func TestApplyUnrecognisedOperatorIsRaw(t *testing.T) {
	requireApply(t, `{"frobnicate": [1,2,3]}`, `{}`, `{"frobnicate": [1,2,3]}`)
}

func TestApplyErrorsPropagate(t *testing.T) {
	_, err := applyJSON(t, `{"substr": [1, 0]}`, `{}`)
	require.Error(t, err)
	var wantErr *InvalidArgumentError
	require.ErrorAs(t, err, &wantErr)
}

func TestParseOnceEvaluateMany(t *testing.T) {
	rule := mustParseJSON(t, `{"+": [{"var": "a"}, 1]}`)
	parsed, err := Parse(rule)
	require.NoError(t, err)

	r1, err := Evaluate(parsed, mustParseJSON(t, `{"a": 1}`))
	require.NoError(t, err)
	require.Equal(t, mustParseJSON(t, `2`), r1)

	r2, err := Evaluate(parsed, mustParseJSON(t, `{"a": 10}`))
	require.NoError(t, err)
	require.Equal(t, mustParseJSON(t, `11`), r2)
}
