package bencoding

import (
	"bytes"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		want    Value
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "positive number",
			raw:     []byte("i234e"),
			want:    NewInt(234),
			wantErr: assert.NoError,
		},
		{
			name:    "negative number",
			raw:     []byte("i-10e"),
			want:    NewInt(-10),
			wantErr: assert.NoError,
		},
		{
			name:    "zero",
			raw:     []byte("i0e"),
			want:    NewInt(0),
			wantErr: assert.NoError,
		},
		{
			name:    "string",
			raw:     []byte("22:hello, world! 123 i1el"),
			want:    ValueOf("hello, world! 123 i1el"),
			wantErr: assert.NoError,
		},
		{
			name:    "empty string",
			raw:     []byte("0:"),
			want:    ValueOf(""),
			wantErr: assert.NoError,
		},
		{
			name:    "binary string",
			raw:     []byte("3:\x00\xff\x10"),
			want:    ValueOf([]byte{0x00, 0xff, 0x10}),
			wantErr: assert.NoError,
		},
		{
			name:    "[]int",
			raw:     []byte("li1ei2ei-10ee"),
			want:    ValueOf([]int{1, 2, -10}),
			wantErr: assert.NoError,
		},
		{
			name:    "[]string",
			raw:     []byte("l7:hello, 6:world!e"),
			want:    ValueOf([]string{"hello, ", "world!"}),
			wantErr: assert.NoError,
		},
		{
			name:    "empty list",
			raw:     []byte("le"),
			want:    NewList(),
			wantErr: assert.NoError,
		},
		{
			name: "dict",
			raw:  []byte("d3:cow3:moo4:spaml1:a1:bee"),
			want: ValueOf(map[string]any{
				"cow":  "moo",
				"spam": []string{"a", "b"},
			}),
			wantErr: assert.NoError,
		},
		{
			name: "dict with keys out of order",
			raw:  []byte("d1:bi2e1:ai1ee"),
			want: ValueOf(map[string]int{
				"a": 1,
				"b": 2,
			}),
			wantErr: assert.NoError,
		},
		{
			name: "nested",
			raw:  []byte("d4:infod5:filesld6:lengthi5e4:pathl1:aeeeee"),
			want: ValueOf(map[string]any{
				"info": map[string]any{
					"files": []any{
						map[string]any{"length": 5, "path": []string{"a"}},
					},
				},
			}),
			wantErr: assert.NoError,
		},
		{
			name:    "trailing bytes are ignored",
			raw:     []byte("i1egarbage"),
			want:    NewInt(1),
			wantErr: assert.NoError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal(tt.raw)
			if !tt.wantErr(t, err, fmt.Sprintf("Unmarshal(%q)", tt.raw)) {
				return
			}
			assert.Truef(t, tt.want.Equal(got), "Unmarshal(%q) = %v, want %v", tt.raw, got, tt.want)
		})
	}
}

func TestUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name       string
		raw        []byte
		wantErr    error
		wantOffset int64
	}{
		{"invalid number contents", []byte("i3f23e"), ErrMalformedInteger, 0},
		{"empty number", []byte("ie"), ErrMalformedInteger, 0},
		{"negative zero", []byte("i-0e"), ErrMalformedInteger, 0},
		{"zero padding", []byte("i010e"), ErrMalformedInteger, 0},
		{"lone minus", []byte("i-e"), ErrMalformedInteger, 0},
		{"missing e", []byte("i33"), ErrMalformedInteger, 0},
		{"out of range", []byte("i99999999999999999999e"), ErrMalformedInteger, 0},
		{"truncated string", []byte("5:ab"), ErrTruncatedString, 0},
		{"string length mismatch", []byte("18:hello"), ErrTruncatedString, 0},
		{"huge string length", []byte("99999999999999999999:a"), ErrTruncatedString, 0},
		{"string length without colon", []byte("3x"), ErrMalformedString, 0},
		{"unterminated list", []byte("li1ei2e"), ErrUnterminatedList, 0},
		{"unterminated nested list", []byte("lli1ee"), ErrUnterminatedList, 0},
		{"unterminated dict", []byte("d1:ai1e"), ErrUnterminatedDict, 0},
		{"dict key without value", []byte("d1:a"), ErrUnterminatedDict, 0},
		{"int key", []byte("di1ei2ee"), ErrNonStringKey, 1},
		{"stray byte in nested dict", []byte("d1:ad le1:bee"), ErrUnknownTag, 5},
		{"list as key", []byte("dlei1ee"), ErrNonStringKey, 1},
		{"unknown tag", []byte("x"), ErrUnknownTag, 0},
		{"unknown tag in list", []byte("li1exe"), ErrUnknownTag, 4},
		{"empty input", []byte(""), ErrUnexpectedEnd, 0},
		{"nesting too deep", bytes.Repeat([]byte("l"), 1<<20), ErrNestingTooDeep, maxDepth},
		{"dict nesting too deep", bytes.Repeat([]byte("d1:a"), maxDepth+1), ErrNestingTooDeep, 4 * maxDepth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(tt.raw)
			require.ErrorIs(t, err, tt.wantErr)
			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.wantOffset, syntaxErr.Offset)
		})
	}
}

func TestUnmarshal_MaxDepth(t *testing.T) {
	raw := append(bytes.Repeat([]byte("l"), maxDepth), bytes.Repeat([]byte("e"), maxDepth)...)
	v, err := Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(Marshal(v)))
}

func TestUnmarshalPrefix(t *testing.T) {
	v, n, err := UnmarshalPrefix([]byte("l1:ae\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.True(t, ValueOf([]string{"a"}).Equal(v))
}

func TestValue_Accessors(t *testing.T) {
	v := ValueOf(map[string]any{"n": 7, "s": "x"})

	n, ok := v.Get("n")
	require.True(t, ok)
	i, ok := n.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)

	_, ok = n.Bytes()
	assert.False(t, ok, "int must not read as a string")
	_, ok = n.Get("n")
	assert.False(t, ok, "Get on a non-dict")
	_, ok = v.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, Dict, v.Kind())
	assert.Equal(t, []string{"n", "s"}, v.Keys())
	assert.Equal(t, Invalid, Value{}.Kind())
}
