package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalMapSliceKeepsOrder(t *testing.T) {
	got, err := Marshal(MapSlice{
		{Key: "b", Value: 1},
		{Key: "a", Value: "x"},
		{Key: "c", Value: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "b: 1\na: x\nc: true\n", string(got))
}

func TestMarshalQuotesAmbiguousScalars(t *testing.T) {
	got, err := Marshal(MapSlice{{Key: "on", Value: "on"}})
	require.NoError(t, err)
	assert.Equal(t, "'on': 'on'\n", string(got))

	got, err = Marshal(MapSlice{
		{Key: "a", Value: "yes"},
		{Key: "b", Value: "true"},
		{Key: "c", Value: "~"},
	})
	require.NoError(t, err)
	assert.Equal(t, "a: 'yes'\nb: 'true'\nc: '~'\n", string(got))
}

func TestMarshalQuotesNumericStrings(t *testing.T) {
	got, err := Marshal(MapSlice{
		{Key: "version", Value: "1.20"},
		{Key: "hex", Value: "0x1A"},
		{Key: "plain", Value: "v1.20"},
	})
	require.NoError(t, err)
	assert.Equal(t, "version: '1.20'\nhex: '0x1A'\nplain: v1.20\n", string(got))
}

func TestMarshalQuotesEdgeStrings(t *testing.T) {
	got, err := Marshal(MapSlice{
		{Key: "empty", Value: ""},
		{Key: "padded", Value: " x"},
	})
	require.NoError(t, err)
	assert.Equal(t, "empty: ''\npadded: ' x'\n", string(got))
}

func TestMarshalMultilineUsesLiteralBlock(t *testing.T) {
	got, err := Marshal(MapSlice{{Key: "run", Value: "echo a\necho b"}})
	require.NoError(t, err)
	assert.Equal(t, "run: |-\n  echo a\n  echo b\n", string(got))
}

func TestMarshalTrimsTrailingWhitespaceInBlocks(t *testing.T) {
	got, err := Marshal(MapSlice{{Key: "run", Value: "echo a  \necho b\n\n\n"}})
	require.NoError(t, err)
	assert.Equal(t, "run: |\n  echo a\n  echo b\n", string(got))
}

func TestMarshalStructFieldOrderAndOmitEmpty(t *testing.T) {
	type rec struct {
		Name     string `yaml:"name"`
		Optional string `yaml:"optional,omitempty"`
		Count    int    `yaml:"count"`
		Hidden   string `yaml:"-"`
		Plain    string
	}
	got, err := Marshal(rec{Name: "x", Count: 3, Hidden: "gone", Plain: "p"})
	require.NoError(t, err)
	assert.Equal(t, "name: x\ncount: 3\nplain: p\n", string(got))
}

func TestMarshalSortsGoMaps(t *testing.T) {
	got, err := Marshal(map[string]int{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nb: 2\nc: 3\n", string(got))
}

func TestMarshalSequences(t *testing.T) {
	got, err := Marshal(MapSlice{{Key: "s", Value: []string{"a", "on"}}})
	require.NoError(t, err)
	assert.Equal(t, "s:\n  - a\n  - 'on'\n", string(got))
}

func TestMarshalScalars(t *testing.T) {
	got, err := Marshal(MapSlice{
		{Key: "f", Value: 1.5},
		{Key: "g", Value: 2.0},
		{Key: "n", Value: nil},
		{Key: "b", Value: false},
	})
	require.NoError(t, err)
	assert.Equal(t, "f: 1.5\ng: 2.0\nn: null\nb: false\n", string(got))
}

type upper string

func (u upper) MarshalYAML() (any, error) {
	return MapSlice{{Key: "value", Value: string(u)}}, nil
}

func TestMarshalHonorsMarshaler(t *testing.T) {
	got, err := Marshal(MapSlice{{Key: "m", Value: upper("x")}})
	require.NoError(t, err)
	assert.Equal(t, "m:\n  value: x\n", string(got))
}

func TestMarshalRejectsUnsupportedTypes(t *testing.T) {
	_, err := Marshal(MapSlice{{Key: "ch", Value: make(chan int)}})
	assert.Error(t, err)
}

func TestMarshalIndentOption(t *testing.T) {
	got, err := Marshal(MapSlice{{Key: "a", Value: MapSlice{{Key: "b", Value: 1}}}}, Indent(4))
	require.NoError(t, err)
	assert.Equal(t, "a:\n    b: 1\n", string(got))
}

func TestNeedsQuote(t *testing.T) {
	quoted := []string{"", "on", "Off", "YES", "~", "null", "123", "1.5", "-7", " x", "x "}
	for _, s := range quoted {
		assert.True(t, needsQuote(s), "%q should be quoted", s)
	}
	plain := []string{"push", "ubuntu-latest", "v1.2.3", "a b", "onward", "true-ish"}
	for _, s := range plain {
		assert.False(t, needsQuote(s), "%q should stay plain", s)
	}
}
