// Package str provides terminator-delimited strings on top of the buffers in
// mem/buffer.
//
// A string's length always equals the position of its terminator: imports
// stop at the first zero byte of the source. Fixed strings truncate at their
// capacity, growable strings grow.
//
//	s := str.NewFixed(5)
//	s.Import("hello, world") // types.Truncated, s.String() == "hello"
//
// ImportTransform runs the source through a golang.org/x/text transformer
// first, which is how legacy single-byte encodings are brought in:
//
//	var g str.Growable
//	defer g.Release()
//	g.ImportTransform(latin1, charmap.Windows1252.NewDecoder())
package str
