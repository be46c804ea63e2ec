// Package view implements the data table view: a single asynchronous
// dataset load driving a Loading, Failed or Ready state, and page navigation
// over the loaded records.
package view

import "github.com/Sternrassler/kickstarter-table/pkg/dataset"

// Status names the variant of a State.
type Status string

const (
	StatusLoading Status = "loading"
	StatusFailed  Status = "failed"
	StatusReady   Status = "ready"
)

// State is one of Loading, Failed or Ready.
type State interface {
	Status() Status
}

// Loading is the state before the load settles.
type Loading struct{}

// Failed is the terminal error state.
type Failed struct {
	Message string
}

// Ready holds the loaded dataset.
type Ready struct {
	Dataset *dataset.Dataset
}

func (Loading) Status() Status { return StatusLoading }
func (Failed) Status() Status  { return StatusFailed }
func (Ready) Status() Status   { return StatusReady }
