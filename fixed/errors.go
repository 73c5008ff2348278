package fixed

import "github.com/runepool/librunepool-go/progerr"

var (
	// ErrFull is returned when an insert would exceed the container capacity.
	ErrFull = progerr.New(500, "fixed: container is full")

	// ErrDuplicate is returned by Set.Insert when the key is already present.
	ErrDuplicate = progerr.New(501, "fixed: duplicate entry")
)
