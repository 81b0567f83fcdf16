package characters

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/verte-zerg/disneydash/internal/model"
)

// SortByName returns a copy of records ordered by name using English
// collation. Equal names keep their relative order.
func SortByName(records []model.Character, order model.SortOrder) []model.Character {
	out := make([]model.Character, len(records))
	copy(out, records)
	col := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		cmp := col.CompareString(out[i].Name, out[j].Name)
		if order == model.SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}
