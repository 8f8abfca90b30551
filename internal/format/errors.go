package format

import "errors"

// ErrTruncated indicates the region lacked the bytes required for a marker.
var ErrTruncated = errors.New("format: truncated region")
