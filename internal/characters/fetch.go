// Package characters holds the dashboard's character state: the fetch
// orchestrator, the event-driven store and the selectors derived from it.
package characters

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/disneydash/internal/api"
	"github.com/verte-zerg/disneydash/internal/logging"
	"github.com/verte-zerg/disneydash/internal/model"
	"github.com/verte-zerg/disneydash/internal/query"
)

// Outcome tells how a fetch settled.
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeFailed
)

func (o Outcome) String() string {
	if o == OutcomeFailed {
		return "failed"
	}
	return "succeeded"
}

// Result is the settled value of one fetch. It always carries the
// request parameters it was issued with. Data is nil when the response
// had no data; Info is nil when it had no page info.
type Result struct {
	RequestID string
	Params    model.RequestParams
	Outcome   Outcome
	Data      []model.Character
	HasData   bool
	Info      *model.PageInfo
	Err       string
	StartedAt time.Time
	Duration  time.Duration
}

// Fetch requests params through f and folds success and failure into a
// Result. It does not touch any State.
func Fetch(ctx context.Context, f api.Fetcher, params model.RequestParams) Result {
	res := Result{
		RequestID: uuid.NewString(),
		Params:    params,
		StartedAt: time.Now(),
	}
	resp, err := f.GetCharacters(ctx, query.Normalize(params.Values()))
	res.Duration = time.Since(res.StartedAt)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err.Error()
		logging.Warn().Str("request_id", res.RequestID).Int("page", params.Page).Err(err).Msg("characters fetch failed")
		return res
	}
	res.Outcome = OutcomeSucceeded
	res.Data = resp.Data.Items
	res.HasData = resp.Data.Present
	res.Info = resp.Info
	res.Err = resp.Error
	logging.Debug().
		Str("request_id", res.RequestID).
		Int("page", params.Page).
		Int("page_size", params.PageSize).
		Int("records", len(res.Data)).
		Dur("duration", res.Duration).
		Msg("characters fetch settled")
	return res
}
