package student

import (
	"net/url"
	"strconv"
	"time"

	"github.com/kampushq/kampus/core"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

type Student struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	GroupID   int       `json:"group_id"`
	GroupName string    `json:"group_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// QueryFilter mirrors the students list endpoint's query params; fields are
// ANDed server side. Search matches name or document, case-insensitive.
type QueryFilter struct {
	Search   string `query:"search"`
	GroupID  int    `query:"group"`
	IsActive *bool  `query:"is_active"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	if qf.Page < 1 {
		qf.Page = 1
	}
	if qf.PageSize < 1 {
		qf.PageSize = DefaultPageSize
	}
	if qf.PageSize > MaxPageSize {
		qf.PageSize = MaxPageSize
	}
}

// Values renders the filter as URL query params, omitting zero values.
func (qf QueryFilter) Values() url.Values {
	vals := url.Values{}
	if qf.Search != "" {
		vals.Set("search", qf.Search)
	}
	if qf.GroupID > 0 {
		vals.Set("group", strconv.Itoa(qf.GroupID))
	}
	if qf.IsActive != nil {
		vals.Set("is_active", strconv.FormatBool(*qf.IsActive))
	}
	if qf.Page > 0 {
		vals.Set("page", strconv.Itoa(qf.Page))
	}
	if qf.PageSize > 0 {
		vals.Set("page_size", strconv.Itoa(qf.PageSize))
	}
	return vals
}

// Page is one page of a students listing plus the paging info needed to
// keep the client's list state in sync with the server.
type Page struct {
	Items    []Student `json:"items"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

func (p Page) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

func (p Page) HasNext() bool {
	return p.Page < p.TotalPages()
}
