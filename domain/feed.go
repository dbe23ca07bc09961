package domain

// PageSize is the number of posts per feed page.
const PageSize = 10

// Feed is one page of an ordered post listing, together with the metadata
// the templates need to render pagination controls. Page is 1-indexed and
// always within [1, TotalPages]; out-of-range requests are clamped by the
// post service before a Feed is built.
type Feed struct {
	Posts      []Post `json:"posts"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
}

func (f *Feed) HasPrev() bool {
	return f.Page > 1
}

func (f *Feed) HasNext() bool {
	return f.Page < f.TotalPages
}

func (f *Feed) PrevPage() int {
	return f.Page - 1
}

func (f *Feed) NextPage() int {
	return f.Page + 1
}
