package footprint

import "errors"

var (
	// ErrNoPinsPerSide is returned when a family is asked to place pads for
	// a package without a side layout.
	ErrNoPinsPerSide = errors.New("package has no pins-per-side count")

	// ErrUnsupportedFamily is returned for package types without a
	// footprint family.
	ErrUnsupportedFamily = errors.New("unsupported package family")
)
