package alloc

import "github.com/joshuapare/safemem/internal/buf"

const (
	// MinAllocation is the smallest storage size handed out by DefaultPolicy.
	MinAllocation = 8

	// ShrinkThresholdPercent is the DefaultPolicy shrink threshold. A smaller
	// request keeps the current region while it is above this share of it.
	ShrinkThresholdPercent = 20
)

// Policy decides storage sizes for growable buffers. Zero fields select the
// DefaultPolicy values.
type Policy struct {
	MinAllocation          int // Smallest storage size (typically 8)
	ShrinkThresholdPercent int // Keep the region while requested > pct% of it (0-100)
}

// DefaultPolicy is the policy used when none is configured.
var DefaultPolicy = Policy{
	MinAllocation:          MinAllocation,
	ShrinkThresholdPercent: ShrinkThresholdPercent,
}

// Decide applies DefaultPolicy.
func Decide(old, requested int) int {
	return DefaultPolicy.Decide(old, requested)
}

// Decide returns the storage size to allocate when a region of old bytes must
// hold requested bytes. The result is never below requested.
func (p Policy) Decide(old, requested int) int {
	p = p.normalized()
	if old < 0 {
		old = 0
	}
	if requested < 0 {
		requested = 0
	}

	if requested == old || (requested < old && requested > p.shrinkFloor(old)) {
		return old
	}
	if requested <= p.MinAllocation {
		return p.MinAllocation
	}
	if requested > old {
		if doubled, ok := buf.MulOverflowSafe(old, 2); ok && requested < doubled {
			return doubled
		}
	}
	return requested
}

// Valid reports whether the fields are in range. Zero fields are valid.
func (p Policy) Valid() bool {
	return p.MinAllocation >= 0 && p.ShrinkThresholdPercent >= 0 && p.ShrinkThresholdPercent <= 100
}

func (p Policy) normalized() Policy {
	if p.MinAllocation <= 0 {
		p.MinAllocation = MinAllocation
	}
	if p.ShrinkThresholdPercent <= 0 || p.ShrinkThresholdPercent > 100 {
		p.ShrinkThresholdPercent = ShrinkThresholdPercent
	}
	return p
}

// shrinkFloor returns floor(old * pct / 100) without overflowing, so that
// 100*requested > pct*old holds exactly when requested > shrinkFloor(old).
func (p Policy) shrinkFloor(old int) int {
	pct := p.ShrinkThresholdPercent
	return (old/100)*pct + (old%100)*pct/100
}
