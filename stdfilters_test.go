package stache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderExpr(t *testing.T, expr Expr, values map[string]Value) string {
	t.Helper()
	engine := NewEngine()
	ctx := NewContext().WithRegistry(StandardRegistry()).WithValues(values)
	out, err := engine.Render([]Node{VariableNode{Expr: expr}}, ctx)
	require.NoError(t, err)
	return out
}

func Test_StandardFilters(t *testing.T) {
	t.Run("should transform case", func(t *testing.T) {
		values := map[string]Value{"s": "hello World"}
		assert.Equal(t, "HELLO WORLD", renderExpr(t, call("uppercase", Ident{Name: "s"}), values))
		assert.Equal(t, "hello world", renderExpr(t, call("lowercase", Ident{Name: "s"}), values))
		assert.Equal(t, "Hello World", renderExpr(t, call("capitalized", Ident{Name: "s"}), values))
	})

	t.Run("should apply string filters to non-string renderings", func(t *testing.T) {
		out := renderExpr(t, call("lowercase", Ident{Name: "n"}), map[string]Value{"n": 1.5e3})
		assert.Equal(t, "1500", out)
	})

	t.Run("should detect blank and empty values", func(t *testing.T) {
		values := map[string]Value{
			"spaces": "   ",
			"word":   "x",
			"none":   []Value{},
			"some":   []Value{1},
		}
		assert.Equal(t, "true", renderExpr(t, call("isBlank", Ident{Name: "spaces"}), values))
		assert.Equal(t, "false", renderExpr(t, call("isBlank", Ident{Name: "word"}), values))
		assert.Equal(t, "true", renderExpr(t, call("isEmpty", Ident{Name: "none"}), values))
		assert.Equal(t, "false", renderExpr(t, call("isEmpty", Ident{Name: "some"}), values))
	})

	t.Run("should count, pick and join sequences", func(t *testing.T) {
		values := map[string]Value{
			"names": []string{"ann", "bob", "cid"},
			"sep":   ", ",
		}
		assert.Equal(t, "3", renderExpr(t, call("count", Ident{Name: "names"}), values))
		assert.Equal(t, "ann", renderExpr(t, call("first", Ident{Name: "names"}), values))
		assert.Equal(t, "cid", renderExpr(t, call("last", Ident{Name: "names"}), values))
		assert.Equal(t, "ann, bob, cid", renderExpr(t, call("join", Ident{Name: "names"}, Ident{Name: "sep"}), values))
		assert.Equal(t, "annbobcid", renderExpr(t, call("join", Ident{Name: "names"}), values))
	})

	t.Run("should count strings and maps", func(t *testing.T) {
		values := map[string]Value{
			"word": "four",
			"m":    map[string]Value{"a": 1, "b": 2},
		}
		assert.Equal(t, "4", renderExpr(t, call("count", Ident{Name: "word"}), values))
		assert.Equal(t, "2", renderExpr(t, call("count", Ident{Name: "m"}), values))
	})

	t.Run("should fail with FilterInvocationError on uncountable values", func(t *testing.T) {
		engine := NewEngine()
		ctx := NewContext().WithRegistry(StandardRegistry()).WithValue("n", 42)
		_, err := engine.Render([]Node{VariableNode{Expr: call("count", Ident{Name: "n"})}}, ctx)
		var fe *FilterInvocationError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "count", fe.FilterName)
	})

	t.Run("should reject bad join arguments inside the closure", func(t *testing.T) {
		engine := NewEngine()
		ctx := NewContext().WithRegistry(StandardRegistry()).WithValues(map[string]Value{
			"names": []string{"a"},
			"n":     7,
		})
		_, err := engine.Render([]Node{
			VariableNode{Expr: call("join", Ident{Name: "names"}, Ident{Name: "n"})},
		}, ctx)
		var fe *FilterInvocationError
		require.ErrorAs(t, err, &fe)
		assert.Contains(t, fe.Error(), "separator must be a string")
	})
}
