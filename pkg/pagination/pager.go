package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PageSize is the number of records shown per page.
const PageSize = 5

// Direction of a navigation action.
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

var pageNavigationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "kicktable_page_navigations_total",
	Help: "Page navigation actions by direction and result",
}, []string{"direction", "result"})

// Pager tracks the current page of a view over n items.
// The zero value is not usable; use New.
type Pager struct {
	size    int
	total   int
	current int
}

// New creates a pager for n items at page 1. A non-positive size falls back
// to PageSize.
func New(n, size int) *Pager {
	if size <= 0 {
		size = PageSize
	}
	if n < 0 {
		n = 0
	}
	return &Pager{
		size:    size,
		total:   TotalPages(n, size),
		current: 1,
	}
}

// TotalPages returns ceil(n / size).
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Current returns the 1-based current page.
func (p *Pager) Current() int {
	return p.current
}

// Total returns the number of pages.
func (p *Pager) Total() int {
	return p.total
}

// Size returns the page size.
func (p *Pager) Size() int {
	return p.size
}

// HasNext reports whether Next would move.
func (p *Pager) HasNext() bool {
	return p.current < p.total
}

// HasPrevious reports whether Previous would move.
func (p *Pager) HasPrevious() bool {
	return p.current > 1
}

// Next advances one page. It returns false and leaves the state unchanged
// on the last page.
func (p *Pager) Next() bool {
	if !p.HasNext() {
		pageNavigationsTotal.WithLabelValues(string(DirectionNext), "noop").Inc()
		return false
	}
	p.current++
	pageNavigationsTotal.WithLabelValues(string(DirectionNext), "moved").Inc()
	return true
}

// Previous goes back one page. It returns false and leaves the state
// unchanged on the first page.
func (p *Pager) Previous() bool {
	if !p.HasPrevious() {
		pageNavigationsTotal.WithLabelValues(string(DirectionPrevious), "noop").Inc()
		return false
	}
	p.current--
	pageNavigationsTotal.WithLabelValues(string(DirectionPrevious), "moved").Inc()
	return true
}

// Bounds returns the half-open index range of the current page, clipped to n.
func (p *Pager) Bounds(n int) (lo, hi int) {
	lo = (p.current - 1) * p.size
	hi = p.current * p.size
	if hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// Indicator renders "Page X of Y".
func (p *Pager) Indicator() string {
	return fmt.Sprintf("Page %d of %d", p.current, p.total)
}
