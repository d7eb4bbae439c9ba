package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsHole(t *testing.T) {
	require.True(t, ContainsHole(&Hole{}))
	require.True(t, ContainsHole(&Paren{Inner: &Hole{}}))
	require.True(t, ContainsHole(&TupleExpr{Items: []Expr{&Lit{Kind: LitInt, Value: 1}, &Hole{}}}))
	require.False(t, ContainsHole(&Lit{Kind: LitInt, Value: 1}))
	require.False(t, ContainsHole(&TupleExpr{Items: []Expr{&Lit{Kind: LitInt, Value: 1}}}))
}

func TestUnparen(t *testing.T) {
	inner := &Lit{Kind: LitInt, Value: 3}
	wrapped := &Paren{Inner: &Paren{Inner: inner}}
	require.Same(t, Expr(inner), Unparen(wrapped))
}
