package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Bag_WithWithout(t *testing.T) {
	t.Parallel()

	empty := New()
	one := empty.With("Path", "a.txt")
	two := one.With("Recurse", true)

	// originals are untouched
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 1, one.Len())
	require.Equal(t, 2, two.Len())

	v, ok := two.Get("Path")
	require.True(t, ok)
	assert.Equal(t, "a.txt", v)

	rv, ok := two.Bool("Recurse")
	require.True(t, ok)
	assert.True(t, rv)

	removed := two.Without("Path")
	assert.False(t, removed.Has("Path"))
	assert.True(t, two.Has("Path"))
	assert.Equal(t, removed, removed.Without("Path"))
}

func Test_Bag_InsertionOrder(t *testing.T) {
	t.Parallel()

	b := New().
		With("C", 3).
		With("A", 1).
		With("B", 2).
		With("A", 10) // overwrite keeps position

	assert.Equal(t, []string{"C", "A", "B"}, b.Names())

	v, ok := b.Int("A")
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func Test_Bag_AbsentVsDefault(t *testing.T) {
	t.Parallel()

	b := New().With("TopMost", false)

	// explicitly supplied false is not the same as absent
	v, ok := b.Bool("TopMost")
	require.True(t, ok)
	assert.False(t, v)

	_, ok = b.Bool("NotTopMost")
	assert.False(t, ok)
}

func Test_Bag_Strings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  any
		want   []string
		wantOK bool
	}{
		{name: "slice", value: []string{"a", "b"}, want: []string{"a", "b"}, wantOK: true},
		{name: "scalar promoted", value: "a", want: []string{"a"}, wantOK: true},
		{name: "wrong type", value: 42, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := New().With("Path", tt.value)
			got, ok := b.Strings("Path")
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Bag_EqualAndMap(t *testing.T) {
	t.Parallel()

	a := New().With("X", 1).With("Y", []string{"p"})
	b := New().With("Y", []string{"p"}).With("X", 1)
	c := b.With("Z", true)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	m := a.ToMap()
	assert.Equal(t, map[string]any{"X": 1, "Y": []string{"p"}}, m)

	// mutating the copy must not affect the bag
	m["X"] = 99
	v, _ := a.Int("X")
	assert.Equal(t, 1, v)

	assert.True(t, FromMap(m).Has("X"))
}
