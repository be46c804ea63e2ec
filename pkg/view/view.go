package view

import (
	"context"
	"errors"
	"sync"

	"github.com/Sternrassler/kickstarter-table/pkg/dataset"
	"github.com/Sternrassler/kickstarter-table/pkg/pagination"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrAlreadyMounted is returned by a second call to Mount.
	ErrAlreadyMounted = errors.New("view already mounted")

	// ErrClosed is returned by Mount after Close.
	ErrClosed = errors.New("view closed")
)

// fallbackMessage is shown when a load error carries no text.
const fallbackMessage = "Failed to fetch data."

// Source loads the dataset. *dataset.Loader implements it.
type Source interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// Option configures a DataTableView.
type Option func(*DataTableView)

// WithPageSize overrides pagination.PageSize.
func WithPageSize(size int) Option {
	return func(v *DataTableView) {
		v.pageSize = size
	}
}

// WithLogger sets the view logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(v *DataTableView) {
		v.logger = logger
	}
}

// DataTableView is the paginated project table.
//
// It issues exactly one load. Results arriving after Close are discarded.
type DataTableView struct {
	source   Source
	pageSize int
	logger   zerolog.Logger

	mu      sync.Mutex
	state   State
	pager   *pagination.Pager
	mounted bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
	changes chan struct{}
}

// New creates a view in the Loading state.
func New(source Source, opts ...Option) *DataTableView {
	v := &DataTableView{
		source:   source,
		pageSize: pagination.PageSize,
		logger:   log.With().Str("component", "data-table-view").Logger(),
		state:    Loading{},
		pager:    pagination.New(0, pagination.PageSize),
		done:     make(chan struct{}),
		changes:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount starts the dataset load. It returns immediately.
func (v *DataTableView) Mount(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrClosed
	}
	if v.mounted {
		return ErrAlreadyMounted
	}
	v.mounted = true

	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel

	go v.load(ctx)
	return nil
}

func (v *DataTableView) load(ctx context.Context) {
	defer close(v.done)

	ds, err := v.source.Load(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		v.logger.Debug().Msg("Load settled after close - result dropped")
		return
	}

	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = fallbackMessage
		}
		v.state = Failed{Message: msg}
		v.logger.Warn().Err(err).Msg("View entered failed state")
	} else {
		v.state = Ready{Dataset: ds}
		v.pager = pagination.New(ds.Len(), v.pageSize)
		v.logger.Info().
			Int("records", ds.Len()).
			Int("total_pages", v.pager.Total()).
			Msg("View ready")
	}
	v.notify()
}

// notify signals a state change without blocking. Must hold v.mu.
func (v *DataTableView) notify() {
	select {
	case v.changes <- struct{}{}:
	default:
	}
}

// Wait blocks until the load settles or ctx is done. It returns at once if
// the view was never mounted.
func (v *DataTableView) Wait(ctx context.Context) error {
	v.mu.Lock()
	mounted := v.mounted
	v.mu.Unlock()
	if !mounted {
		return nil
	}

	select {
	case <-v.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Changes delivers a signal after every state or page change. Signals
// coalesce, so readers should re-read Snapshot on each one.
func (v *DataTableView) Changes() <-chan struct{} {
	return v.changes
}

// Close unmounts the view and cancels a pending load.
func (v *DataTableView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	if v.cancel != nil {
		v.cancel()
	}
}

// State returns the current state.
func (v *DataTableView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Next moves to the next page. It is a no-op unless the view is Ready and
// not on the last page.
func (v *DataTableView) Next() bool {
	return v.navigate(pagination.DirectionNext)
}

// Previous moves to the previous page. It is a no-op unless the view is
// Ready and not on the first page.
func (v *DataTableView) Previous() bool {
	return v.navigate(pagination.DirectionPrevious)
}

func (v *DataTableView) navigate(dir pagination.Direction) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return false
	}
	if _, ok := v.state.(Ready); !ok {
		return false
	}

	var moved bool
	switch dir {
	case pagination.DirectionNext:
		moved = v.pager.Next()
	case pagination.DirectionPrevious:
		moved = v.pager.Previous()
	}

	if moved {
		v.logger.Debug().
			Str("direction", string(dir)).
			Int("page", v.pager.Current()).
			Msg("Page changed")
		v.notify()
	}
	return moved
}

// VisibleSlice returns the records of the current page. It is empty unless
// the view is Ready.
func (v *DataTableView) VisibleSlice() []dataset.Record {
	v.mu.Lock()
	defer v.mu.Unlock()

	ready, ok := v.state.(Ready)
	if !ok {
		return []dataset.Record{}
	}
	lo, hi := v.pager.Bounds(ready.Dataset.Len())
	return ready.Dataset.Slice(lo, hi)
}
