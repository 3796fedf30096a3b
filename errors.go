package posthist

import "errors"

// ErrPath is returned when the input file does not exist.
var ErrPath = errors.New("path error")

// ErrFormat is returned when the input cannot be opened or read, or when
// its rows are malformed or inconsistent.
var ErrFormat = errors.New("format error")

// ErrColumnNotFound is returned when a panel references a column the
// table does not have.
var ErrColumnNotFound = errors.New("column not found")

// ErrEmptyData is returned when a column has no plottable values.
var ErrEmptyData = errors.New("empty data")

// ErrGeometry is returned for an invalid grid shape or panel extent.
var ErrGeometry = errors.New("geometry error")

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrPath, "PathError"},
	{ErrFormat, "FormatError"},
	{ErrColumnNotFound, "ColumnNotFoundError"},
	{ErrEmptyData, "EmptyDataError"},
	{ErrGeometry, "GeometryError"},
}

// ErrorKind names the kind of err as reported to users: one of
// PathError, FormatError, ColumnNotFoundError, EmptyDataError,
// GeometryError, or Error for anything else. A nil err has no kind.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, ek := range errorKinds {
		if errors.Is(err, ek.err) {
			return ek.kind
		}
	}
	return "Error"
}
