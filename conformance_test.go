package jsonlogic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonlogic-go/jsonlogic/internal/value"
)

// Exercises spec.md §8's quantified invariants and round-trip laws
// directly, plus its six worked end-to-end scenarios, rather than a
// literal corpus fixture (the reference test corpus lives outside
// this repository's inputs).

func TestRawRoundTrip(t *testing.T) {
	samples := []string{`1`, `"hello"`, `null`, `true`, `false`, `[1,"a",null]`, `{"x":1,"y":[1,2]}`}
	for _, s := range samples {
		t.Run(s, func(t *testing.T) {
			v := mustParseJSON(t, s)
			result, err := Apply(v, value.Null())
			require.NoError(t, err)
			require.Equal(t, v, result)
		})
	}
}

func TestDeterminism(t *testing.T) {
	rule := mustParseJSON(t, `{"if": [{"<": [{"var":"x"}, 10]}, "small", "big"]}`)
	data := mustParseJSON(t, `{"x": 3}`)
	r1, err := Apply(rule, data)
	require.NoError(t, err)
	r2, err := Apply(rule, data)
	require.NoError(t, err)
	require.Equal(t, r1, r2)
}

func TestOperatorShapeLocality(t *testing.T) {
	requireApply(t, `{"unregistered_symbol": [1,2]}`, `{}`, `{"unregistered_symbol": [1,2]}`)
}

func TestTruthyStability(t *testing.T) {
	samples := []string{`0`, `1`, `""`, `"x"`, `null`, `true`, `false`, `[]`, `[1]`, `{}`}
	for _, s := range samples {
		t.Run(s, func(t *testing.T) {
			double, err := applyJSON(t, `{"!!": [`+s+`]}`, `{}`)
			require.NoError(t, err)
			negNeg, err := applyJSON(t, `{"!": [{"!": [`+s+`]}]}`, `{}`)
			require.NoError(t, err)
			require.Equal(t, double, negNeg)
		})
	}
}

func TestChainedOrdering(t *testing.T) {
	samples := []string{
		`{"a":1,"b":2,"c":3}`,
		`{"a":3,"b":2,"c":1}`,
		`{"a":1,"b":1,"c":1}`,
		`{"a":5,"b":10,"c":2}`,
	}
	for _, s := range samples {
		t.Run(s, func(t *testing.T) {
			data := mustParseJSON(t, s)

			chained, err := Apply(mustParseJSON(t, `{"<": [{"var":"a"}, {"var":"b"}, {"var":"c"}]}`), data)
			require.NoError(t, err)
			anded, err := Apply(mustParseJSON(t,
				`{"and": [{"<": [{"var":"a"}, {"var":"b"}]}, {"<": [{"var":"b"}, {"var":"c"}]}]}`), data)
			require.NoError(t, err)
			require.Equal(t, chained, anded)
		})
	}
}

func TestShortCircuitPurityOr(t *testing.T) {
	result, err := applyJSON(t, `{"or": [true, {"var": ["x", {"substr": ["not-a-number", 0]}]}]}`, `{}`)
	require.NoError(t, err)
	require.Equal(t, mustParseJSON(t, `true`), result)
}

func TestRoundTripLaws(t *testing.T) {
	t.Run("n-ary plus of one is the number", func(t *testing.T) {
		requireApply(t, `{"+": [5]}`, `{}`, `5`)
	})
	t.Run("merge of one array is the array", func(t *testing.T) {
		requireApply(t, `{"merge": [[1,2,3]]}`, `{}`, `[1,2,3]`)
	})
	t.Run("cat of one string is the string", func(t *testing.T) {
		requireApply(t, `{"cat": ["hello"]}`, `{}`, `"hello"`)
	})
}

func TestBoundaryBehaviour(t *testing.T) {
	requireApply(t, `{"substr": ["abc", 5]}`, `{}`, `""`)
	requireApply(t, `{"substr": ["abc", -10]}`, `{}`, `"abc"`)
	requireApply(t, `{"substr": ["abc", 0, -10]}`, `{}`, `""`)
	requireApply(t, `{"all": [[], true]}`, `{}`, `false`)
	requireApply(t, `{"some": [[], true]}`, `{}`, `false`)
	requireApply(t, `{"none": [[], true]}`, `{}`, `true`)
	requireApply(t, `{"+": []}`, `{}`, `0`)

	_, err := applyJSON(t, `{"max": []}`, `{}`)
	require.Error(t, err)
	var wrongCount *WrongArgumentCountError
	require.ErrorAs(t, err, &wrongCount)

	_, err = applyJSON(t, `{"*": []}`, `{}`)
	require.Error(t, err)
	require.ErrorAs(t, err, &wrongCount)
}

func TestEndToEndScenarios(t *testing.T) {
	requireApply(t, `{"==": [1, "1"]}`, `{}`, `true`)
	requireApply(t, `{"===": [1, "1"]}`, `{}`, `false`)
	requireApply(t, `{"var": "a.1"}`, `{"a": ["x","y","z"]}`, `"y"`)
	requireApply(t, `{"missing_some": [2, ["a","b","c"]]}`, `{"a": 1}`, `["b","c"]`)
	requireApply(t,
		`{"if": [{"<": [{"var":"x"}, 0]}, "neg", {"==": [{"var":"x"}, 0]}, "zero", "pos"]}`,
		`{"x": -3}`, `"neg"`)
	requireApply(t,
		`{"reduce": [{"var":"xs"}, {"+": [{"var":"current"}, {"var":"accumulator"}]}, 0]}`,
		`{"xs":[1,2,3,4,5]}`, `15`)
}

func TestNegativeArrayAndStringIndexing(t *testing.T) {
	requireApply(t, `{"var": "-1"}`, `[10,20,30]`, `30`)
	requireApply(t, `{"substr": ["hello", -3]}`, `{}`, `"llo"`)
}
