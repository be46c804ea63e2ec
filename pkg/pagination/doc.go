// Package pagination holds the page state of a fixed-size paged view over an
// in-memory sequence.
//
// Example usage:
//
//	p := pagination.New(ds.Len(), pagination.PageSize)
//	lo, hi := p.Bounds(ds.Len())
//	rows := ds.Slice(lo, hi)
//	p.Next()
//
// The pager:
//   - Starts at page 1
//   - Derives total pages as ceil(n / size)
//   - Clamps navigation: Next on the last page and Previous on the first
//     page leave the state unchanged
//   - Keeps 1 <= current <= max(total, 1)
package pagination
