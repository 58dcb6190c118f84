package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	testCases := []struct {
		name          string
		items         []int
		pageSize      int
		page          int
		expectedItems []int
		expectedPages int
	}{
		{name: "First page", items: items, pageSize: 3, page: 1, expectedItems: []int{1, 2, 3}, expectedPages: 3},
		{name: "Last partial page", items: items, pageSize: 3, page: 3, expectedItems: []int{7}, expectedPages: 3},
		{name: "Exact fit", items: items[:6], pageSize: 3, page: 2, expectedItems: []int{4, 5, 6}, expectedPages: 2},
		{name: "Page zero", items: items, pageSize: 3, page: 0, expectedItems: []int{}, expectedPages: 3},
		{name: "Negative page", items: items, pageSize: 3, page: -1, expectedItems: []int{}, expectedPages: 3},
		{name: "Beyond last page", items: items, pageSize: 3, page: 4, expectedItems: []int{}, expectedPages: 3},
		{name: "Empty input", items: nil, pageSize: 10, page: 1, expectedItems: []int{}, expectedPages: 0},
		{name: "Zero page size", items: items, pageSize: 0, page: 1, expectedItems: []int{}, expectedPages: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Paginate(tc.items, tc.pageSize, tc.page)
			assert.Equal(t, tc.expectedItems, p.Items)
			assert.Equal(t, tc.expectedPages, p.TotalPages)
			assert.Equal(t, len(tc.items), p.TotalItems)
			assert.Equal(t, tc.page, p.Page)
		})
	}
}
