package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/cser/schema"
)

func TestParse(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"u8", "u8"},
		{" string ", "string"},
		{"[32]byte", "[32]byte"},
		{"[0x10]byte", "[16]byte"},
		{"[]u64", "[]u64"},
		{"[][]bytes", "[][]bytes"},
		{"?u256", "?u256"},
		{"{}", "{}"},
		{"{ a : u8 , b : []?bytes }", "{a:u8,b:[]?bytes}"},
		{"{p:{x:u32,y:u32},tags:[]string}", "{p:{x:u32,y:u32},tags:[]string}"},
		{"[]?u8", "[]?u8"},
		{"?[]?u8", "?[]?u8"},
		{"[]{a:{},b:u8}", "[]{a:{},b:u8}"},
		{"[]?{}", "[]?{}"},
		{"{a:[0]byte}", "{a:[0]byte}"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.expr, func(t *testing.T) {
			typ, err := schema.Parse(tc.expr)
			require.NoError(t, err)
			require.Equal(t, tc.want, typ.String())

			again, err := schema.Parse(typ.String())
			require.NoError(t, err)
			require.Equal(t, typ, again)
		})
	}
}

func TestParseStructure(t *testing.T) {
	req := require.New(t)

	typ, err := schema.Parse("{id:[4]byte,items:[]?i64}")
	req.NoError(err)
	req.Equal(&schema.Type{
		Kind: schema.Record,
		Fields: []schema.Field{
			{Name: "id", Type: &schema.Type{Kind: schema.Array, Size: 4}},
			{Name: "items", Type: &schema.Type{
				Kind: schema.Slice,
				Elem: &schema.Type{Kind: schema.Option, Elem: &schema.Type{Kind: schema.I64}},
			}},
		},
	}, typ)
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"u9",
		"[4]int",
		"[x]byte",
		"[4]",
		"[",
		"?",
		"{a u8}",
		"{a:u8,a:u8}",
		"{a:u8,}",
		"{a:u8",
		"u8 u8",
		"[99999999999]byte",
		"??u8",
		"{a:??bool}",
		"[][0]byte",
		"[]{}",
		"[]{a:{},b:[0]byte}",
	}

	for _, expr := range tests {
		expr := expr
		t.Run(expr, func(t *testing.T) {
			_, err := schema.Parse(expr)
			var syntaxErr *schema.SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	require.Panics(t, func() { schema.MustParse("{") })
	require.NotPanics(t, func() { schema.MustParse("u8") })
}
