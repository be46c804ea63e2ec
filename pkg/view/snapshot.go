package view

// Row is one rendered table row.
type Row struct {
	Serial           int
	PercentageFunded string
	AmountPledged    string
}

// Snapshot is an immutable render model of the view.
type Snapshot struct {
	Status  Status
	Message string

	Rows            []Row
	Page            int
	TotalPages      int
	PreviousEnabled bool
	NextEnabled     bool
}

// Snapshot captures the current state for rendering.
func (v *DataTableView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch s := v.state.(type) {
	case Failed:
		return Snapshot{Status: StatusFailed, Message: s.Message}
	case Ready:
		lo, hi := v.pager.Bounds(s.Dataset.Len())
		records := s.Dataset.Slice(lo, hi)

		rows := make([]Row, len(records))
		for i, r := range records {
			rows[i] = Row{
				Serial:           lo + i + 1,
				PercentageFunded: r.PercentageFunded(),
				AmountPledged:    r.AmountPledged(),
			}
		}

		return Snapshot{
			Status:          StatusReady,
			Rows:            rows,
			Page:            v.pager.Current(),
			TotalPages:      v.pager.Total(),
			PreviousEnabled: v.pager.HasPrevious(),
			NextEnabled:     v.pager.HasNext(),
		}
	default:
		return Snapshot{Status: StatusLoading}
	}
}
