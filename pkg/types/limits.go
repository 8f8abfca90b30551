package types

const (
	// SizeMax is the largest size any engine operation accepts. Larger sizes,
	// and negative ones, are rejected with SizeTooLarge.
	SizeMax = 0x7FFFFFFF

	// VersionMajor and VersionMinor identify the engine contract version.
	VersionMajor = 1
	VersionMinor = 0

	// Version is VersionMajor*100 + VersionMinor.
	Version = 100*VersionMajor + VersionMinor
)

// ValidSize reports whether n is in [0, SizeMax].
func ValidSize(n int) bool {
	return n >= 0 && uint64(n) <= SizeMax
}
