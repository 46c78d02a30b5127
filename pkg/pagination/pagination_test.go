package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	if NormalizeLimit(0) != DefaultLimit {
		t.Fatalf("expected default limit for zero, got %d", NormalizeLimit(0))
	}
	if NormalizeLimit(-5) != DefaultLimit {
		t.Fatalf("expected default limit for negative, got %d", NormalizeLimit(-5))
	}
	if NormalizeLimit(MaxLimit+1) != MaxLimit {
		t.Fatalf("expected max cap, got %d", NormalizeLimit(MaxLimit+1))
	}
	if NormalizeLimit(25) != 25 {
		t.Fatalf("expected passthrough, got %d", NormalizeLimit(25))
	}
}

func TestOffset(t *testing.T) {
	cases := []struct {
		page, limit, want int
	}{
		{0, 0, 0},
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
	}
	for _, tc := range cases {
		got := Params{Page: tc.page, Limit: tc.limit}.Offset()
		if got != tc.want {
			t.Fatalf("page=%d limit=%d: expected offset %d got %d", tc.page, tc.limit, tc.want, got)
		}
	}
}
