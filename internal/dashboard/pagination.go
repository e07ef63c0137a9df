package dashboard

import "github.com/EO-DataHub/eodhp-users-dashboard/models"

// DefaultPageSize is the number of users shown per page when none is configured.
const DefaultPageSize = 5

// Pagination holds the current page (1-indexed) and the fixed page size.
// CurrentPage is stored as given; boundaries are enforced by Controls.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// NewPagination starts on page 1.
func NewPagination(pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Pagination{CurrentPage: 1, PageSize: pageSize}
}

// FirstIndex is the inclusive start of the visible slice.
func (p Pagination) FirstIndex() int {
	return p.LastIndex() - p.PageSize
}

// LastIndex is the exclusive end of the visible slice.
func (p Pagination) LastIndex() int {
	return p.CurrentPage * p.PageSize
}

// Slice returns the users visible on the current page, bounded by the
// collection. Pages outside the collection yield an empty slice.
func (p Pagination) Slice(users []models.User) []models.User {
	first, last := p.FirstIndex(), p.LastIndex()
	if first < 0 {
		first = 0
	}
	if last > len(users) {
		last = len(users)
	}
	if first >= last {
		return []models.User{}
	}

	page := make([]models.User, last-first)
	copy(page, users[first:last])
	return page
}

// PageCount is ceil(total/pageSize).
func (p Pagination) PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// Controls describes the Previous/Next navigation controls for a page.
type Controls struct {
	PreviousPage     int  `json:"previousPage"`
	NextPage         int  `json:"nextPage"`
	PreviousDisabled bool `json:"previousDisabled"`
	NextDisabled     bool `json:"nextDisabled"`
	PageCount        int  `json:"pageCount"`
}

// Controls derives the navigation controls for a collection of total users.
func (p Pagination) Controls(total int) Controls {
	return Controls{
		PreviousPage:     p.CurrentPage - 1,
		NextPage:         p.CurrentPage + 1,
		PreviousDisabled: p.CurrentPage == 1,
		NextDisabled:     p.CurrentPage*p.PageSize >= total,
		PageCount:        p.PageCount(total),
	}
}

// CanNavigate reports whether a control could ever lead to page.
func (p Pagination) CanNavigate(page, total int) bool {
	return page >= 1 && page <= p.PageCount(total)
}
