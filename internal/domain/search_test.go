package domain_test

import (
	"testing"

	"hotel_booking/internal/domain"
)

func TestBuildFilter_Empty(t *testing.T) {
	f := domain.BuildFilter(domain.Criteria{})
	if f.Destination != "" || f.MinAdultCount != nil || f.MinChildCount != nil ||
		f.Facilities != nil || f.Types != nil || f.StarRating != nil || f.MaxPrice != nil {
		t.Fatalf("empty criteria must produce an empty filter, got %+v", f)
	}
}

func TestBuildFilter_AllCriteria(t *testing.T) {
	f := domain.BuildFilter(domain.Criteria{
		Destination: " London ",
		AdultCount:  "2",
		ChildCount:  "1",
		Facilities:  []string{"Free WiFi", "Parking"},
		Types:       []string{"Budget"},
		StarRating:  "4",
		MaxPrice:    "250",
	})
	if f.Destination != "London" {
		t.Fatalf("destination: %q", f.Destination)
	}
	if f.MinAdultCount == nil || *f.MinAdultCount != 2 {
		t.Fatalf("adult count: %+v", f.MinAdultCount)
	}
	if f.MinChildCount == nil || *f.MinChildCount != 1 {
		t.Fatalf("child count: %+v", f.MinChildCount)
	}
	if len(f.Facilities) != 2 || f.Facilities[0] != "Free WiFi" {
		t.Fatalf("facilities: %+v", f.Facilities)
	}
	if len(f.Types) != 1 || f.Types[0] != "Budget" {
		t.Fatalf("types: %+v", f.Types)
	}
	if f.StarRating == nil || *f.StarRating != 4 {
		t.Fatalf("star rating: %+v", f.StarRating)
	}
	if f.MaxPrice == nil || *f.MaxPrice != 250 {
		t.Fatalf("max price: %+v", f.MaxPrice)
	}
}

func TestBuildFilter_UnparsableNumbersIgnored(t *testing.T) {
	f := domain.BuildFilter(domain.Criteria{
		AdultCount: "two",
		ChildCount: "-1",
		StarRating: "4.5",
		MaxPrice:   "",
	})
	if f.MinAdultCount != nil || f.MinChildCount != nil || f.StarRating != nil || f.MaxPrice != nil {
		t.Fatalf("unparsable numeric criteria must be dropped, got %+v", f)
	}
}

func TestBuildFilter_BlankListEntriesDropped(t *testing.T) {
	f := domain.BuildFilter(domain.Criteria{Facilities: []string{" ", "Spa", ""}})
	if len(f.Facilities) != 1 || f.Facilities[0] != "Spa" {
		t.Fatalf("facilities: %+v", f.Facilities)
	}
}

func TestParseSort(t *testing.T) {
	cases := map[string]domain.SortOption{
		"starRating":        domain.SortStarRatingDesc,
		"pricePerNightAsc":  domain.SortPriceAsc,
		"pricePerNightDesc": domain.SortPriceDesc,
		"":                  domain.SortDefault,
		"bogus":             domain.SortDefault,
	}
	for in, want := range cases {
		if got := domain.ParseSort(in); got != want {
			t.Errorf("ParseSort(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewPageQuery(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"1":   1,
		"3":   3,
		"0":   1,
		"-2":  1,
		"abc": 1,
	}
	for in, want := range cases {
		pg := domain.NewPageQuery(in)
		if pg.Page != want {
			t.Errorf("NewPageQuery(%q).Page = %d, want %d", in, pg.Page, want)
		}
		if pg.Skip() != int64(want-1)*int64(domain.PageSize) {
			t.Errorf("NewPageQuery(%q).Skip() = %d", in, pg.Skip())
		}
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		total int64
		want  int
	}{
		{0, 0}, {1, 1}, {5, 1}, {6, 2}, {12, 3}, {15, 3}, {16, 4},
	}
	for _, c := range cases {
		if got := domain.PageCount(c.total, domain.PageSize); got != c.want {
			t.Errorf("PageCount(%d, 5) = %d, want %d", c.total, got, c.want)
		}
	}
}
