package model

const (
	// DefaultPage is the first page of the characters endpoint.
	DefaultPage = 1
	// DefaultPageSize is the page size used when none is configured.
	DefaultPageSize = 50
)

// PageSizes are the page sizes offered by the dashboard.
var PageSizes = []int{10, 20, 50, 100}

// FilterField is an attribute the character list can be narrowed by.
type FilterField int

const (
	FilterName FilterField = iota
	FilterTVShows
)

// FilterFields lists the fields in menu order.
var FilterFields = []FilterField{FilterName, FilterTVShows}

// Label is the human readable name of the field.
func (f FilterField) Label() string {
	switch f {
	case FilterTVShows:
		return "TV Shows"
	default:
		return "Name"
	}
}

// Key is the server-side query parameter name.
func (f FilterField) Key() string {
	switch f {
	case FilterTVShows:
		return "tvShows"
	default:
		return "name"
	}
}

// Next returns the following field in menu order, wrapping around.
func (f FilterField) Next() FilterField {
	for i, field := range FilterFields {
		if field == f {
			return FilterFields[(i+1)%len(FilterFields)]
		}
	}
	return FilterFields[0]
}

// ParseFilterField maps a server-side key to a field.
func ParseFilterField(key string) (FilterField, bool) {
	for _, field := range FilterFields {
		if field.Key() == key {
			return field, true
		}
	}
	return FilterName, false
}

// RequestParams are the query parameters of a characters request.
// At most one filter field is set.
type RequestParams struct {
	Page     int
	PageSize int
	Name     string
	TVShows  string
}

// DefaultParams returns page 1 with the given page size, falling back to
// DefaultPageSize for non-positive sizes.
func DefaultParams(pageSize int) RequestParams {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return RequestParams{Page: DefaultPage, PageSize: pageSize}
}

// Values returns the candidate parameter object keyed by server-side names.
// Empty values are kept; the query normalizer strips them.
func (p RequestParams) Values() map[string]any {
	return map[string]any{
		"page":              p.Page,
		"pageSize":          p.PageSize,
		FilterName.Key():    p.Name,
		FilterTVShows.Key(): p.TVShows,
	}
}

// Filter returns the active filter field and value, if any.
func (p RequestParams) Filter() (FilterField, string, bool) {
	switch {
	case p.Name != "":
		return FilterName, p.Name, true
	case p.TVShows != "":
		return FilterTVShows, p.TVShows, true
	default:
		return FilterName, "", false
	}
}

// WithPage moves to another page keeping size and filter.
func (p RequestParams) WithPage(page int) RequestParams {
	p.Page = page
	return p
}

// WithPageSize changes the page size and goes back to the first page.
func (p RequestParams) WithPageSize(size int) RequestParams {
	p.PageSize = size
	p.Page = DefaultPage
	return p
}

// WithFilter replaces any filter with the given one and goes back to the
// first page. An empty value clears filtering.
func (p RequestParams) WithFilter(field FilterField, value string) RequestParams {
	p.Name = ""
	p.TVShows = ""
	switch field {
	case FilterTVShows:
		p.TVShows = value
	default:
		p.Name = value
	}
	p.Page = DefaultPage
	return p
}

// WithoutFilter clears filtering and goes back to the first page.
func (p RequestParams) WithoutFilter() RequestParams {
	p.Name = ""
	p.TVShows = ""
	p.Page = DefaultPage
	return p
}
