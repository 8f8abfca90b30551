// Package alloc provides the allocation policy and the pluggable allocators
// behind growable buffers.
//
// # Overview
//
// Growable buffers never ask for exactly the storage they need. Every request
// goes through a Policy, which amortizes growth and avoids churn on small
// shrinks, and the decided size is then obtained from an Allocator.
//
// # Allocation Policy
//
// Policy.Decide(old, requested) returns the storage size to use:
//
//	requested == old                         -> old
//	requested < old, above the threshold     -> old (keep the region)
//	requested <= MinAllocation               -> MinAllocation
//	old < requested < 2*old                  -> 2*old
//	otherwise                                -> requested
//
// With DefaultPolicy the minimum is 8 bytes and a region is kept while the
// request is above 20% of it.
//
// # Allocators
//
// Allocator is a two-method interface. Allocate returns nil on failure and
// Deallocate receives exactly the slice Allocate returned.
//
//   - Heap: Go runtime allocation (default)
//   - Pages: anonymous page mappings, outside the Go heap
//   - None: always fails; for fail-closed configurations and tests
//   - Funcs: adapts a plain function pair
//   - Counting: wraps another allocator and tracks live allocations
//
// # Process Allocator
//
// Install, Reset and Installed manage the process-wide allocator used by
// buffers created without an explicit environment:
//
//	counting := alloc.NewCounting(alloc.Heap{})
//	prev := alloc.Install(counting)
//	defer alloc.Install(prev)
//
// The cell is an atomic pointer; the last Install wins. Memory must be
// released to the allocator that produced it, so swap allocators only while
// no growable buffer holds memory from the previous one.
//
// # Related Packages
//
//   - github.com/joshuapare/safemem/mem/buffer: growable buffers using this package
//   - github.com/joshuapare/safemem/mem/config: selects the allocator from YAML
package alloc
