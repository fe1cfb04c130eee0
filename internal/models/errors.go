package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// MissingLaunchesError reports the ids of a batch lookup the catalog did not know.
type MissingLaunchesError struct {
	IDs []int
}

func (e *MissingLaunchesError) Error() string {
	return fmt.Sprintf("launches not found: %s", JoinIDs(e.IDs))
}

func (e *MissingLaunchesError) Is(target error) bool {
	return target == ErrNotFound
}

// JoinIDs renders ids as a comma separated list.
func JoinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
