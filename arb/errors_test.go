package arb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineColumn(t *testing.T) {
	src := "!!ARBfp1.0\nMOV r, s;\nEND"
	tests := []struct {
		offset     int
		line, col int
	}{
		{0, 1, 1},
		{10, 1, 11},
		{11, 2, 1},
		{15, 2, 5},
		{21, 3, 1},
		{len(src), 3, 4},
		{len(src) + 10, 3, 4},
	}
	for _, tt := range tests {
		line, col := LineColumn(src, tt.offset)
		assert.Equal(t, tt.line, line, "line at %d", tt.offset)
		assert.Equal(t, tt.col, col, "column at %d", tt.offset)
	}
}

func TestFormatContext(t *testing.T) {
	src := "!!ARBfp1.0\nMOV r, s;\r\nEND"
	got := FormatContext(src, 15, "r is not readable")
	want := "error: r is not readable\n" +
		"  --> line 2:5\n" +
		"   |\n" +
		"  2| MOV r, s;\n" +
		"   |     ^\n"
	assert.Equal(t, want, got)
}

func TestFormatContextOutOfRange(t *testing.T) {
	assert.Equal(t, "error: boom", FormatContext("", 0, "boom"))
	assert.Equal(t, "error: boom", FormatContext("abc", -1, "boom"))
	assert.Equal(t, "error: boom", FormatContext("abc", 4, "boom"))
}

func TestSourceError(t *testing.T) {
	err := newError(KindSemantic, 7, "%s is not writable", "fragment.color")
	err.Source = "!!ARBfp1.0"
	assert.Equal(t, "offset 7: fragment.color is not writable", err.Error())
	assert.Contains(t, err.FormatWithContext(), "line 1:8")
	assert.Equal(t, "semantic", err.Kind.String())
	assert.Equal(t, "unknown", ErrorKind(42).String())
}
