package jsonlogic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsonlogic-go/jsonlogic/internal/value"
)

func mustParseJSON(t *testing.T, s string) JsValue {
	t.Helper()
	v, err := ParseJSONValue(s)
	require.NoError(t, err)
	return v
}

func TestParseRaw(t *testing.T) {
	tests := []string{`42`, `"hello"`, `null`, `true`, `[1,2,3]`, `{"a":1,"b":2}`}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			v := mustParseJSON(t, s)
			parsed, err := Parse(v)
			require.NoError(t, err)
			raw, ok := parsed.(Raw)
			require.True(t, ok, "expected Raw, got %T", parsed)
			require.Equal(t, v, raw.Value)
		})
	}
}

func TestParseClassifiesByTable(t *testing.T) {
	t.Run("eager operator becomes Operation", func(t *testing.T) {
		v := mustParseJSON(t, `{"==": [1, 1]}`)
		parsed, err := Parse(v)
		require.NoError(t, err)
		op, ok := parsed.(Operation)
		require.True(t, ok)
		require.Equal(t, "==", op.Op)
		require.Len(t, op.Args, 2)
	})

	t.Run("lazy operator becomes LazyOperation", func(t *testing.T) {
		v := mustParseJSON(t, `{"if": [true, 1, 2]}`)
		parsed, err := Parse(v)
		require.NoError(t, err)
		op, ok := parsed.(LazyOperation)
		require.True(t, ok)
		require.Equal(t, "if", op.Op)
	})

	t.Run("data operator becomes DataOperation", func(t *testing.T) {
		v := mustParseJSON(t, `{"var": "a"}`)
		parsed, err := Parse(v)
		require.NoError(t, err)
		op, ok := parsed.(DataOperation)
		require.True(t, ok)
		require.Equal(t, "var", op.Op)
	})

	t.Run("multi-key object is always Raw", func(t *testing.T) {
		v := mustParseJSON(t, `{"==": [1,1], "extra": true}`)
		parsed, err := Parse(v)
		require.NoError(t, err)
		_, ok := parsed.(Raw)
		require.True(t, ok)
	})

	t.Run("empty object is Raw", func(t *testing.T) {
		v := mustParseJSON(t, `{}`)
		parsed, err := Parse(v)
		require.NoError(t, err)
		_, ok := parsed.(Raw)
		require.True(t, ok)
	})

	t.Run("unrecognised key is Raw", func(t *testing.T) {
		v := mustParseJSON(t, `{"not_an_operator": 1}`)
		parsed, err := Parse(v)
		require.NoError(t, err)
		_, ok := parsed.(Raw)
		require.True(t, ok)
	})
}

func TestParseUnaryScalarWrapping(t *testing.T) {
	v := mustParseJSON(t, `{"!": true}`)
	parsed, err := Parse(v)
	require.NoError(t, err)
	op, ok := parsed.(Operation)
	require.True(t, ok)
	require.Len(t, op.Args, 1)
}

func TestParseArityErrors(t *testing.T) {
	t.Run("wrong argument count", func(t *testing.T) {
		v := mustParseJSON(t, `{"==": [1]}`)
		_, err := Parse(v)
		require.Error(t, err)
		var wantErr *WrongArgumentCountError
		require.ErrorAs(t, err, &wantErr)
	})

	t.Run("non-array argument for non-unary operator", func(t *testing.T) {
		v := mustParseJSON(t, `{"==": 1}`)
		_, err := Parse(v)
		require.Error(t, err)
		var wantErr *InvalidOperationError
		require.ErrorAs(t, err, &wantErr)
	})
}

func TestParseRecursesIntoEagerArgs(t *testing.T) {
	v := mustParseJSON(t, `{"+": [{"var": "a"}, 1]}`)
	parsed, err := Parse(v)
	require.NoError(t, err)
	op := parsed.(Operation)
	require.Len(t, op.Args, 2)
	_, ok := op.Args[0].(DataOperation)
	require.True(t, ok)
	_, ok = op.Args[1].(Raw)
	require.True(t, ok)
}

func TestObjValuePreservesKeyOrderThroughJSONDecode(t *testing.T) {
	v := mustParseJSON(t, `{"z": 1, "a": 2, "m": 3}`)
	obj, ok := v.(value.ObjValue)
	require.True(t, ok)
	require.Equal(t, []string{"z", "a", "m"}, obj.Keys())
}
