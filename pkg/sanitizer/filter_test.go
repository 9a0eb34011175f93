package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/sanitizer"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	t.Run("resolves names case insensitively", func(t *testing.T) {
		t.Parallel()
		fn, err := sanitizer.Filter(" Snake ")
		require.NoError(t, err)
		assert.Equal(t, "first_name", fn("First Name"))
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		t.Parallel()
		_, err := sanitizer.Filter("rot13")
		require.Error(t, err)
		assert.ErrorIs(t, err, sanitizer.ErrUnknownFilter)
	})
}

func TestFilters(t *testing.T) {
	t.Parallel()

	t.Run("keeps order", func(t *testing.T) {
		t.Parallel()
		fns, err := sanitizer.Filters("strip_html", "collapse_whitespace", "upper")
		require.NoError(t, err)
		require.Len(t, fns, 3)
		assert.Equal(t, "HELLO WORLD", sanitizer.Apply(" <p>hello</p>   world ", fns...))
	})

	t.Run("no names", func(t *testing.T) {
		t.Parallel()
		fns, err := sanitizer.Filters()
		require.NoError(t, err)
		assert.Empty(t, fns)
	})

	t.Run("fails on first unknown name", func(t *testing.T) {
		t.Parallel()
		fns, err := sanitizer.Filters("trim", "nope")
		assert.ErrorIs(t, err, sanitizer.ErrUnknownFilter)
		assert.Nil(t, fns)
	})
}

func TestFilterNames(t *testing.T) {
	t.Parallel()

	names := sanitizer.FilterNames()
	assert.IsIncreasing(t, names)
	for _, name := range names {
		_, err := sanitizer.Filter(name)
		assert.NoError(t, err, name)
	}
	assert.Contains(t, names, "single_line")
	assert.Contains(t, names, "invisible")
}
