package nairaland

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupBoardID(t *testing.T) {
	id, err := LookupBoardID("Technology")
	require.NoError(t, err)
	require.Equal(t, 8, id)

	id, err = LookupBoardID("Programming")
	require.NoError(t, err)
	require.Equal(t, 34, id)

	for _, name := range []string{"not_a_board", "technology", ""} {
		_, err = LookupBoardID(name)
		var unknown *UnknownBoardError
		require.ErrorAs(t, err, &unknown, name)
		require.Equal(t, name, unknown.Name)
	}
}

func TestDirectory(t *testing.T) {
	require.Equal(t, 58, DefaultDirectory().Len())

	names := DefaultDirectory().Names()
	require.Len(t, names, 58)
	require.True(t, slices.IsSorted(names))

	source := map[string]int{"Golang": 1000}
	dir := NewDirectory(source)
	source["Golang"] = 1
	id, err := dir.Lookup("Golang")
	require.NoError(t, err)
	require.Equal(t, 1000, id)

	extended := DefaultDirectory().With(map[string]int{"Golang": 1000, "Technology": 9})
	id, err = extended.Lookup("Technology")
	require.NoError(t, err)
	require.Equal(t, 9, id)
	require.Equal(t, 59, extended.Len())

	_, err = DefaultDirectory().Lookup("Golang")
	require.Error(t, err)
	id, err = DefaultDirectory().Lookup("Technology")
	require.NoError(t, err)
	require.Equal(t, 8, id)

	var empty Directory
	require.Equal(t, 1, empty.With(map[string]int{"a": 1}).Len())
}

func TestDefaultDirectoryIsReadOnly(t *testing.T) {
	names := DefaultDirectory().Names()
	names[0] = "Hijacked"

	extended := DefaultDirectory().With(map[string]int{"Technology": 999})
	id, err := extended.Lookup("Technology")
	require.NoError(t, err)
	require.Equal(t, 999, id)

	require.NotContains(t, DefaultDirectory().Names(), "Hijacked")
	id, err = LookupBoardID("Technology")
	require.NoError(t, err)
	require.Equal(t, 8, id)
	require.Equal(t, DefaultDirectory().Len(), defaultDirectory.Len())
}
