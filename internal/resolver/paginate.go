package resolver

import (
	"strconv"

	"github.com/pkg/errors"

	"trip-gateway/internal/models"
)

// DefaultPageSize applies when the caller sends no page size or a
// non-positive one.
const DefaultPageSize = 20

// Paginate returns the page of launches that follows the entry whose cursor is
// after, or the first page when after is empty. Order is taken as given.
//
// Cursors handed out are unique within the sequence and never empty: a launch
// without a timestamp gets "flight-<id>", and a repeated timestamp is suffixed
// with the flight number. See pageCursors.
func Paginate(launches []*models.Launch, pageSize int, after string) (*models.LaunchConnection, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	cursors := pageCursors(launches)

	start := 0
	if after != "" {
		idx := indexOf(cursors, after)
		if idx < 0 {
			return nil, errors.Wrapf(models.ErrInvalidInput, "unknown cursor %q", after)
		}
		start = idx + 1
	}
	end := min(start+pageSize, len(launches))

	page := make([]*models.Launch, end-start)
	copy(page, launches[start:end])

	conn := &models.LaunchConnection{
		HasMore:  end < len(launches),
		Launches: page,
	}
	if len(page) > 0 {
		conn.Cursor = cursors[end-1]
	}
	return conn, nil
}

// pageCursors derives one resumable cursor per position. The launch's own
// cursor is used as is when it is non-empty and not already taken.
func pageCursors(launches []*models.Launch) []string {
	cursors := make([]string, len(launches))
	taken := make(map[string]bool, len(launches))
	for i, l := range launches {
		var base string
		id := 0
		if l != nil {
			base, id = l.Cursor, l.ID
		}
		c := base
		if c == "" {
			c = "flight-" + strconv.Itoa(id)
		} else if taken[c] {
			c = base + "-" + strconv.Itoa(id)
		}
		for n := 1; taken[c]; n++ {
			c = base + "-" + strconv.Itoa(id) + "." + strconv.Itoa(n)
		}
		taken[c] = true
		cursors[i] = c
	}
	return cursors
}

func indexOf(cursors []string, cursor string) int {
	for i, c := range cursors {
		if c == cursor {
			return i
		}
	}
	return -1
}
