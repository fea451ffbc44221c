package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/outfitly/outfitly/pkg/pagination"
	"github.com/outfitly/outfitly/pkg/query"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg pagination.Config
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
			t.Errorf("cfg = %+v, want defaults 20/100", cfg)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_DEFAULT_PAGE_SIZE", "10")
		t.Setenv("TEST_MAX_PAGE_SIZE", "50")

		var cfg pagination.Config
		env := &pagination.ConfigEnv{
			DefaultPageSize: "TEST_DEFAULT_PAGE_SIZE",
			MaxPageSize:     "TEST_MAX_PAGE_SIZE",
		}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if cfg.DefaultPageSize != 10 || cfg.MaxPageSize != 50 {
			t.Errorf("cfg = %+v, want 10/50", cfg)
		}
	})

	t.Run("default exceeding max rejected", func(t *testing.T) {
		cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize() = nil, want error when default exceeds max")
		}
	})
}

func TestConfigMerge(t *testing.T) {
	base := testConfig()
	overlay := pagination.Config{MaxPageSize: 200}

	base.Merge(&overlay)

	if base.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, zero overlay must not overwrite", base.DefaultPageSize)
	}
	if base.MaxPageSize != 200 {
		t.Errorf("MaxPageSize = %d, want 200", base.MaxPageSize)
	}
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 20},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size clamped", pagination.PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid untouched", pagination.PageRequest{Page: 3, PageSize: 25}, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(testConfig())
			if tt.req.Page != tt.wantPage || tt.req.PageSize != tt.wantPageSize {
				t.Errorf("Normalize() = page %d size %d, want page %d size %d",
					tt.req.Page, tt.req.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	tests := []struct {
		name string
		req  pagination.PageRequest
		want int
	}{
		{"first page", pagination.PageRequest{Page: 1, PageSize: 20}, 0},
		{"second page", pagination.PageRequest{Page: 2, PageSize: 20}, 20},
		{"later page", pagination.PageRequest{Page: 5, PageSize: 15}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	t.Run("full query", func(t *testing.T) {
		values := url.Values{}
		values.Set("page", "2")
		values.Set("page_size", "10")
		values.Set("search", "jeans")
		values.Set("sort", "name,-createdAt")

		req := pagination.PageRequestFromQuery(values, testConfig())

		if req.Page != 2 || req.PageSize != 10 {
			t.Errorf("page = %d size = %d, want 2/10", req.Page, req.PageSize)
		}
		if req.Search == nil || *req.Search != "jeans" {
			t.Errorf("search = %v, want jeans", req.Search)
		}
		if len(req.Sort) != 2 || req.Sort[0].Field != "name" || !req.Sort[1].Descending {
			t.Errorf("sort = %v", req.Sort)
		}
	})

	t.Run("empty query normalized", func(t *testing.T) {
		req := pagination.PageRequestFromQuery(url.Values{}, testConfig())

		if req.Page != 1 || req.PageSize != 20 {
			t.Errorf("page = %d size = %d, want 1/20", req.Page, req.PageSize)
		}
		if req.Search != nil {
			t.Errorf("search = %v, want nil", req.Search)
		}
	})
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		data           []string
		total          int
		page           int
		pageSize       int
		wantTotalPages int
	}{
		{"exact pages", []string{"a", "b"}, 40, 1, 20, 2},
		{"partial last page", []string{"a"}, 41, 3, 20, 3},
		{"empty result", nil, 0, 1, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult(tt.data, tt.total, tt.page, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
			if result.Data == nil {
				t.Error("Data = nil, want non-nil slice")
			}
			if result.Total != tt.total || result.Page != tt.page || result.PageSize != tt.pageSize {
				t.Errorf("result = %+v", result)
			}
		})
	}
}

func TestSortFieldsUnmarshal(t *testing.T) {
	t.Run("string form", func(t *testing.T) {
		var s pagination.SortFields
		if err := json.Unmarshal([]byte(`"name,-createdAt"`), &s); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		want := pagination.SortFields{
			{Field: "name", Descending: false},
			{Field: "createdAt", Descending: true},
		}
		if len(s) != len(want) || s[0] != want[0] || s[1] != want[1] {
			t.Errorf("SortFields = %v, want %v", s, want)
		}
	})

	t.Run("array form", func(t *testing.T) {
		var s pagination.SortFields
		data := `[{"field": "name", "descending": true}]`
		if err := json.Unmarshal([]byte(data), &s); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if len(s) != 1 || s[0] != (query.SortField{Field: "name", Descending: true}) {
			t.Errorf("SortFields = %v", s)
		}
	})

	t.Run("invalid form", func(t *testing.T) {
		var s pagination.SortFields
		if err := json.Unmarshal([]byte(`42`), &s); err == nil {
			t.Error("Unmarshal(42) = nil, want error")
		}
	})
}
