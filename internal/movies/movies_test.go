package movies

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"trending", Trending, true},
		{"Top_Rated", TopRated, true},
		{" upcoming ", Upcoming, true},
		{"classics", Trending, false},
		{"", Trending, false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseCategory(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := map[Category]string{
		Trending:   "Trending",
		TopRated:   "Top Rated",
		NowPlaying: "Now Playing",
	}
	for c, want := range tests {
		if got := c.Label(); got != want {
			t.Errorf("%q.Label() = %q, want %q", c, got, want)
		}
	}
}

func TestCategoryCycle(t *testing.T) {
	if Upcoming.Next() != Trending {
		t.Error("Next should wrap to the first option")
	}
	if Trending.Prev() != Upcoming {
		t.Error("Prev should wrap to the last option")
	}

	c := Trending
	for range Categories {
		c = c.Next()
	}
	if c != Trending {
		t.Errorf("a full cycle should return to start, got %q", c)
	}
}

func TestParseID(t *testing.T) {
	if id, ok := ParseID(" 550 "); !ok || id != 550 {
		t.Errorf("got %v,%v", id, ok)
	}
	if _, ok := ParseID("abc"); ok {
		t.Error("non numeric id must fail")
	}
	if ID(603).String() != "603" {
		t.Error("String should be decimal")
	}
}

func TestCleanText(t *testing.T) {
	tests := map[string]string{
		"":                       "",
		"Tom & Jerry":            "Tom & Jerry",
		"<b>Heat</b> &amp; more": "Heat & more",
		"  spaced  ":             "spaced",
		"<script>x()</script>Up": "Up",
	}
	for in, want := range tests {
		if got := cleanText(in); got != want {
			t.Errorf("cleanText(%q) = %q, want %q", in, got, want)
		}
	}
}
