package characters

import (
	"testing"

	"github.com/verte-zerg/disneydash/internal/model"
)

func names(recs []model.Character) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}

func TestSortByName(t *testing.T) {
	recs := []model.Character{{Name: "minnie"}, {Name: "Mickey"}, {Name: "Éclair"}, {Name: "abu"}}
	asc := names(SortByName(recs, model.SortAsc))
	want := []string{"abu", "Éclair", "Mickey", "minnie"}
	for i := range want {
		if asc[i] != want[i] {
			t.Fatalf("unexpected ascending order: %v", asc)
		}
	}
	desc := names(SortByName(recs, model.SortDesc))
	for i := range want {
		if desc[i] != want[len(want)-1-i] {
			t.Fatalf("unexpected descending order: %v", desc)
		}
	}
	if recs[0].Name != "minnie" {
		t.Fatalf("input must not be reordered")
	}
}
