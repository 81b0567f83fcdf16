package characters

import "github.com/verte-zerg/disneydash/internal/model"

const defaultFailure = "request failed"

// State is everything the dashboard knows about characters. It has a
// single owner and changes only through Apply.
type State struct {
	SelectedID *int
	Info       *model.PageInfo
	Records    []model.Character
	Params     model.RequestParams
	Fetching   bool
	LastError  string
	Status     model.Status

	defaults model.RequestParams
}

// NewState returns an idle state with default params.
func NewState(pageSize int) State {
	defaults := model.DefaultParams(pageSize)
	return State{
		Params:   defaults,
		Status:   model.StatusIdle,
		defaults: defaults,
	}
}

// Event is a state transition. The set is closed to this package.
type Event interface {
	isEvent()
}

// FetchStarted marks a request as in flight.
type FetchStarted struct{}

// FetchSucceeded applies a successful result.
type FetchSucceeded struct{ Result Result }

// FetchFailed applies a failed result.
type FetchFailed struct{ Result Result }

// SetSelected selects a character by id.
type SetSelected struct{ ID int }

// ClearSelected drops the selection.
type ClearSelected struct{}

// ClearError dismisses the last error. It does not retry.
type ClearError struct{}

func (FetchStarted) isEvent()   {}
func (FetchSucceeded) isEvent() {}
func (FetchFailed) isEvent()    {}
func (SetSelected) isEvent()    {}
func (ClearSelected) isEvent()  {}
func (ClearError) isEvent()     {}

// ResultEvent picks the event matching how r settled.
func ResultEvent(r Result) Event {
	if r.Outcome == OutcomeFailed {
		return FetchFailed{Result: r}
	}
	return FetchSucceeded{Result: r}
}

// Apply returns the state after e. s is not modified.
func Apply(s State, e Event) State {
	switch ev := e.(type) {
	case FetchStarted:
		s.Fetching = true
		s.Status = model.StatusLoading
	case FetchSucceeded:
		s = applyResult(s, ev.Result, false)
		s.Status = model.StatusSucceeded
	case FetchFailed:
		s = applyResult(s, ev.Result, true)
		s.Status = model.StatusFailed
	case SetSelected:
		id := ev.ID
		s.SelectedID = &id
	case ClearSelected:
		s.SelectedID = nil
	case ClearError:
		s.LastError = ""
	}
	return s
}

// applyResult is shared by both settle events so failures surface through
// LastError too. On failure records, page info and params stay as they
// were, whatever the result carries.
func applyResult(s State, r Result, failed bool) State {
	s.Fetching = false
	if failed {
		s.LastError = r.Err
		if s.LastError == "" {
			s.LastError = defaultFailure
		}
		return s
	}
	if r.HasData || r.Data != nil {
		records := make([]model.Character, len(r.Data))
		copy(records, r.Data)
		s.Records = records
	}
	if r.Info != nil {
		info := *r.Info
		s.Info = &info
	}
	s.Params = settledParams(s.defaults, r.Params)
	s.LastError = r.Err
	return s
}

func settledParams(defaults, p model.RequestParams) model.RequestParams {
	if defaults.Page == 0 {
		defaults = model.DefaultParams(0)
	}
	out := model.RequestParams{
		Page:     p.Page,
		PageSize: p.PageSize,
		Name:     p.Name,
		TVShows:  p.TVShows,
	}
	if out.Page <= 0 {
		out.Page = defaults.Page
	}
	if out.PageSize <= 0 {
		out.PageSize = defaults.PageSize
	}
	return out
}

// ApplyResult applies the settle event matching r.
func ApplyResult(s State, r Result) State {
	return Apply(s, ResultEvent(r))
}
