package student

import (
	"net/url"
	"reflect"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func TestQueryFilter_Clean(t *testing.T) {
	tests := []struct {
		name   string
		filter QueryFilter
		want   QueryFilter
	}{
		{
			name:   "defaults applied",
			filter: QueryFilter{},
			want:   QueryFilter{Page: 1, PageSize: DefaultPageSize},
		},
		{
			name:   "search trimmed",
			filter: QueryFilter{Search: "  ana maria  ", Page: 3, PageSize: 10},
			want:   QueryFilter{Search: "ana maria", Page: 3, PageSize: 10},
		},
		{
			name:   "page size capped",
			filter: QueryFilter{Page: 1, PageSize: 5000},
			want:   QueryFilter{Page: 1, PageSize: MaxPageSize},
		},
		{
			name:   "negative page reset",
			filter: QueryFilter{Page: -2, PageSize: 10},
			want:   QueryFilter{Page: 1, PageSize: 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Clean()
			if !reflect.DeepEqual(tt.filter, tt.want) {
				t.Errorf("Clean() = %+v; want %+v", tt.filter, tt.want)
			}
		})
	}
}

func TestQueryFilter_Values(t *testing.T) {
	tests := []struct {
		name   string
		filter QueryFilter
		want   url.Values
	}{
		{
			name:   "zero filter renders nothing",
			filter: QueryFilter{},
			want:   url.Values{},
		},
		{
			name:   "all fields",
			filter: QueryFilter{Search: "perez", GroupID: 4, IsActive: boolPtr(true), Page: 2, PageSize: 50},
			want: url.Values{
				"search":    {"perez"},
				"group":     {"4"},
				"is_active": {"true"},
				"page":      {"2"},
				"page_size": {"50"},
			},
		},
		{
			name:   "explicit inactive",
			filter: QueryFilter{IsActive: boolPtr(false)},
			want:   url.Values{"is_active": {"false"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Values(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Values() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestPage_paging(t *testing.T) {
	tests := []struct {
		name       string
		page       Page
		wantPages  int
		wantHasNxt bool
	}{
		{name: "exact fit", page: Page{Total: 50, Page: 2, PageSize: 25}, wantPages: 2, wantHasNxt: false},
		{name: "remainder adds a page", page: Page{Total: 51, Page: 2, PageSize: 25}, wantPages: 3, wantHasNxt: true},
		{name: "empty result", page: Page{Total: 0, Page: 1, PageSize: 25}, wantPages: 0, wantHasNxt: false},
		{name: "zero page size", page: Page{Total: 10}, wantPages: 0, wantHasNxt: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.TotalPages(); got != tt.wantPages {
				t.Errorf("TotalPages() = %d; want %d", got, tt.wantPages)
			}
			if got := tt.page.HasNext(); got != tt.wantHasNxt {
				t.Errorf("HasNext() = %v; want %v", got, tt.wantHasNxt)
			}
		})
	}
}
