package characters

import "github.com/verte-zerg/disneydash/internal/model"

// UnknownCount is returned by TotalCount when the total cannot be derived.
// Callers must treat it as "more pages may follow", never as a count.
const UnknownCount = -1

// ActiveCharacter returns the selected record, if it is on the current page.
func ActiveCharacter(s State) (model.Character, bool) {
	if s.SelectedID == nil {
		return model.Character{}, false
	}
	for _, rec := range s.Records {
		if rec.ID == *s.SelectedID {
			return rec, true
		}
	}
	return model.Character{}, false
}

// IsFirstRequest reports whether no fetch has been started yet.
func IsFirstRequest(s State) bool {
	return s.Status == model.StatusIdle
}

// TotalPages returns the page count reported by the last response.
func TotalPages(s State) (int, bool) {
	if s.Info == nil {
		return 0, false
	}
	return s.Info.TotalPages, true
}

// TotalCount reconstructs the number of matching characters. The API only
// reports it implicitly: on the last page every earlier page was full.
func TotalCount(s State) int {
	if s.Info == nil || !s.Info.IsLastPage() || s.Info.TotalPages == 0 {
		return UnknownCount
	}
	return (s.Info.TotalPages-1)*s.Params.PageSize + len(s.Records)
}

// Records returns the current page of characters.
func Records(s State) []model.Character {
	return s.Records
}

// IsFetching reports whether a request is in flight.
func IsFetching(s State) bool {
	return s.Fetching
}

// Params returns the params of the last settled request.
func Params(s State) model.RequestParams {
	return s.Params
}

// Error returns the message of the last failure, or "".
func Error(s State) string {
	return s.LastError
}

// CanGoBack reports whether earlier pages exist.
func CanGoBack(s State) bool {
	return s.Params.Page > model.DefaultPage
}

// CanGoForward reports whether a next page may exist. With an unknown
// total, forward navigation stays enabled.
func CanGoForward(s State) bool {
	return TotalCount(s) == UnknownCount
}

// LastPage returns the page to jump to, if the jump is allowed.
func LastPage(s State) (int, bool) {
	if !CanGoForward(s) {
		return 0, false
	}
	pages, ok := TotalPages(s)
	if !ok || pages <= 0 {
		return 0, false
	}
	return pages, true
}
