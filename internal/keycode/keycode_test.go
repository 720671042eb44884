package keycode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLiteralName(t *testing.T) {
	assert.True(t, IsLiteralName("space"))
	assert.True(t, IsLiteralName("SPACE"))
	assert.False(t, IsLiteralName("nonexistent"))
}

func TestLiteralIndexRanges(t *testing.T) {
	assert.Equal(t, 0, LiteralIndex("return"))
	assert.Equal(t, -1, LiteralIndex("nonexistent"))
}

func TestImpliesFnBoundaries(t *testing.T) {
	assert.False(t, ImpliesFn(FnRangeStart-1))
	assert.True(t, ImpliesFn(FnRangeStart))
	assert.True(t, ImpliesFn(FnRangeEnd))
	assert.False(t, ImpliesFn(FnRangeEnd+1))
}

func TestImpliesNXBoundaries(t *testing.T) {
	assert.False(t, ImpliesNX(NXRangeStart-1))
	assert.True(t, ImpliesNX(NXRangeStart))
	assert.True(t, ImpliesNX(NXRangeEnd))
	assert.False(t, ImpliesNX(NXRangeEnd+1))
}

func TestFnAndNXRangesAreDisjoint(t *testing.T) {
	for i := FnRangeStart; i <= FnRangeEnd; i++ {
		assert.False(t, ImpliesNX(i))
	}
	for i := NXRangeStart; i <= NXRangeEnd; i++ {
		assert.False(t, ImpliesFn(i))
	}
}

func TestCodeOfLiteralAndHex(t *testing.T) {
	code, err := CodeOf("space")
	require := assert.New(t)
	require.NoError(err)
	require.Equal(Code(0x31), code)

	code, err = CodeOf("0x1f")
	require.NoError(err)
	require.Equal(Code(0x1f), code)

	code, err = CodeOf("1f")
	require.NoError(err)
	require.Equal(Code(0x1f), code)
}

func TestCodeOfUnknownName(t *testing.T) {
	_, err := CodeOf("nonexistent")
	assert.Error(t, err)
}

func TestCodeOfSingleCharWithoutInitFails(t *testing.T) {
	_, err := CodeOf("a")
	assert.Error(t, err, "layout table is only populated by Init")
}

func TestNameOfRoundTripsLiteralTable(t *testing.T) {
	code, err := CodeOf("return")
	assert.NoError(t, err)
	assert.Equal(t, "return", NameOf(code))
}

func TestNameOfFallsBackToHex(t *testing.T) {
	assert.Equal(t, "0xdead", NameOf(Code(0xdead)))
}
