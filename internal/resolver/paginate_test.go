package resolver

import (
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-gateway/internal/models"
)

func catalogOf(n int) []*models.Launch {
	launches := make([]*models.Launch, n)
	for i := range launches {
		launches[i] = launch(i+1, strconv.Itoa((i+1)*1000))
	}
	return launches
}

func TestPaginate_Scenario(t *testing.T) {
	all := catalogOf(2)

	first, err := Paginate(all, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "1000", first.Cursor)
	assert.True(t, first.HasMore)
	require.Len(t, first.Launches, 1)
	assert.Equal(t, 1, first.Launches[0].ID)

	second, err := Paginate(all, 1, first.Cursor)
	require.NoError(t, err)
	assert.Equal(t, "2000", second.Cursor)
	assert.False(t, second.HasMore)
	require.Len(t, second.Launches, 1)
	assert.Equal(t, 2, second.Launches[0].ID)
}

func TestPaginate_EnumeratesEverythingOnce(t *testing.T) {
	for _, n := range []int{0, 1, 7, 20, 41} {
		for _, p := range []int{1, 2, 3, 20, 50} {
			all := catalogOf(n)
			seen := map[int]int{}
			var order []int

			after := ""
			for calls := 0; ; calls++ {
				require.Less(t, calls, n+2, "pagination did not terminate")
				conn, err := Paginate(all, p, after)
				require.NoError(t, err)
				for _, l := range conn.Launches {
					seen[l.ID]++
					order = append(order, l.ID)
				}
				if !conn.HasMore {
					break
				}
				after = conn.Cursor
			}

			assert.Len(t, seen, n, "n=%d p=%d", n, p)
			for id, count := range seen {
				assert.Equal(t, 1, count, "launch %d repeated", id)
			}
			for i, id := range order {
				assert.Equal(t, i+1, id)
			}
		}
	}
}

func TestPaginate_DefaultPageSize(t *testing.T) {
	all := catalogOf(DefaultPageSize + 5)

	for _, size := range []int{0, -3} {
		conn, err := Paginate(all, size, "")
		require.NoError(t, err)
		assert.Len(t, conn.Launches, DefaultPageSize)
		assert.True(t, conn.HasMore)
	}
}

func TestPaginate_UnknownCursor(t *testing.T) {
	conn, err := Paginate(catalogOf(3), 2, "999")
	assert.Nil(t, conn)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestPaginate_AfterLastEntry(t *testing.T) {
	conn, err := Paginate(catalogOf(3), 2, "3000")
	require.NoError(t, err)
	assert.Empty(t, conn.Launches)
	assert.Equal(t, "", conn.Cursor)
	assert.False(t, conn.HasMore)
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	all := catalogOf(3)
	conn, err := Paginate(all, 2, "")
	require.NoError(t, err)

	conn.Launches[0] = nil
	assert.NotNil(t, all[0])
}

func TestPaginate_IrregularCursorsStillChain(t *testing.T) {
	tests := []struct {
		name    string
		cursors []string
	}{
		{"missing timestamp", []string{"1000", "", "3000"}},
		{"repeated timestamp", []string{"1000", "1000", "3000"}},
		{"all missing", []string{"", "", ""}},
		{"suffix collides with real cursor", []string{"1000", "1000", "1000-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			all := make([]*models.Launch, len(tt.cursors))
			for i, c := range tt.cursors {
				all[i] = launch(i+1, c)
			}

			var order []int
			cursors := map[string]bool{}
			after := ""
			for calls := 0; ; calls++ {
				require.Less(t, calls, len(all)+1, "pagination did not terminate")
				conn, err := Paginate(all, 1, after)
				require.NoError(t, err)
				for _, l := range conn.Launches {
					order = append(order, l.ID)
				}
				if !conn.HasMore {
					break
				}
				require.NotEmpty(t, conn.Cursor)
				require.False(t, cursors[conn.Cursor], "cursor %q handed out twice", conn.Cursor)
				cursors[conn.Cursor] = true
				after = conn.Cursor
			}
			assert.Equal(t, []int{1, 2, 3}, order)
		})
	}
}

func TestPaginate_MissingTimestampCursor(t *testing.T) {
	all := []*models.Launch{launch(1, "1000"), launch(2, ""), launch(3, "1000")}

	conn, err := Paginate(all, 2, "")
	require.NoError(t, err)
	assert.Equal(t, "flight-2", conn.Cursor)

	conn, err = Paginate(all, 2, conn.Cursor)
	require.NoError(t, err)
	assert.Equal(t, "1000-3", conn.Cursor)
	assert.False(t, conn.HasMore)
}
