package model

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"
)

// Character is a record returned by the characters endpoint.
type Character struct {
	ID              int       `json:"_id"`
	Name            string    `json:"name"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	SourceURL       string    `json:"sourceUrl"`
	URL             string    `json:"url"`
	Films           []string  `json:"films"`
	ShortFilms      []string  `json:"shortFilms"`
	TVShows         []string  `json:"tvShows"`
	VideoGames      []string  `json:"videoGames"`
	ParkAttractions []string  `json:"parkAttractions"`
	Allies          []string  `json:"allies"`
	Enemies         []string  `json:"enemies"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PageInfo describes the page the response belongs to.
// Count is the number of records on this page, not the total.
type PageInfo struct {
	TotalPages   int     `json:"totalPages"`
	Count        int     `json:"count"`
	PreviousPage *string `json:"previousPage"`
	NextPage     *string `json:"nextPage"`
}

// IsLastPage reports whether the API signalled that no next page exists.
func (p PageInfo) IsLastPage() bool {
	return p.NextPage == nil || *p.NextPage == ""
}

// CharacterList holds the response data field, which the API sends either
// as an array or as a single object.
type CharacterList struct {
	Items   []Character
	Present bool
}

// UnmarshalJSON accepts an array, a single object or null.
func (l *CharacterList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = CharacterList{}
		return nil
	}
	if trimmed[0] == '[' {
		var items []Character
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = CharacterList{Items: items, Present: true}
		return nil
	}
	var single Character
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	*l = CharacterList{Items: []Character{single}, Present: true}
	return nil
}

// CharactersResponse is the body of GET /character.
type CharactersResponse struct {
	Error string        `json:"error"`
	Info  *PageInfo     `json:"info"`
	Data  CharacterList `json:"data"`
}
