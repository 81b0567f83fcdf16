package characters

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/verte-zerg/disneydash/internal/model"
)

type fakeFetcher struct {
	got  map[string]any
	resp model.CharactersResponse
	err  error
}

func (f *fakeFetcher) GetCharacters(_ context.Context, params map[string]any) (model.CharactersResponse, error) {
	f.got = params
	return f.resp, f.err
}

func TestFetchNormalizesParams(t *testing.T) {
	f := &fakeFetcher{}
	params := model.DefaultParams(20).WithFilter(model.FilterTVShows, "Gargoyles")
	Fetch(context.Background(), f, params)
	want := map[string]any{"page": 1, "pageSize": 20, "tvShows": "Gargoyles"}
	if !reflect.DeepEqual(f.got, want) {
		t.Fatalf("unexpected params sent: %#v", f.got)
	}
}

func TestFetchSuccessCarriesParamsAndPayload(t *testing.T) {
	info := &model.PageInfo{TotalPages: 2, Count: 1}
	f := &fakeFetcher{resp: model.CharactersResponse{
		Info: info,
		Data: model.CharacterList{Items: records(9), Present: true},
	}}
	params := model.DefaultParams(50).WithPage(2)
	res := Fetch(context.Background(), f, params)
	if res.Outcome != OutcomeSucceeded || res.Err != "" {
		t.Fatalf("unexpected outcome: %+v", res)
	}
	if res.Params != params {
		t.Fatalf("expected params carried, got %+v", res.Params)
	}
	if !res.HasData || len(res.Data) != 1 || res.Info != info {
		t.Fatalf("unexpected payload: %+v", res)
	}
	if res.RequestID == "" {
		t.Fatalf("expected request id")
	}
}

func TestFetchFailureCarriesMessageOnly(t *testing.T) {
	f := &fakeFetcher{err: errors.New("dial tcp: refused")}
	params := model.DefaultParams(50)
	res := Fetch(context.Background(), f, params)
	if res.Outcome != OutcomeFailed || res.Err != "dial tcp: refused" {
		t.Fatalf("unexpected failure result: %+v", res)
	}
	if res.Data != nil || res.Info != nil || res.HasData {
		t.Fatalf("failure must not carry data: %+v", res)
	}
	if res.Params != params {
		t.Fatalf("expected params carried")
	}
}
