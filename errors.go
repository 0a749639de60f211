package qoi

import "errors"

// The closed set of error kinds the codec can surface. Each is a sentinel
// value; callers match with errors.Is, call sites wrap it with context via
// fmt.Errorf("%w: ...", ErrX, ...).
var (
	ErrBadMagic        = errors.New("qoi: bad magic bytes")
	ErrBadHeaderField  = errors.New("qoi: bad header field")
	ErrTruncatedStream = errors.New("qoi: truncated chunk stream")
	ErrBadEndMarker    = errors.New("qoi: bad end marker")
	ErrTruncatedRaster = errors.New("qoi: truncated raster")
	ErrOverrunRaster   = errors.New("qoi: run overruns raster")
	ErrMalformedRaster = errors.New("qoi: malformed raster")
)
