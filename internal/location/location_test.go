package location

import "testing"

func TestValidateLocations(t *testing.T) {
	cases := []struct {
		name     string
		location Location
		wantErr  bool
	}{
		{"home", NewHome(), false},
		{"section", NewSection("nb", "section-1"), false},
		{"page", NewPage("nb", "section-1", "page-1"), false},
		{"inbox", NewInbox("page-1"), false},
		{"all pages", NewAllPages("page-1"), false},
		{"section without notebook", NewSection("", "section-1"), true},
		{"page without page id", NewPage("nb", "section-1", " "), true},
		{"inbox without page id", NewInbox(""), true},
		{"unknown kind", Location{Kind: "elsewhere"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.location)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		location Location
		want     string
	}{
		{NewHome(), "/app"},
		{NewSection("nb", "section-1"), "/app/notebook/nb/section/section-1"},
		{NewPage("nb", "section-1", "page-1"), "/app/notebook/nb/section/section-1/page/page-1"},
		{NewInbox("page-1"), "/app/inbox/page/page-1"},
		{NewAllPages("page-1"), "/app/pages/page/page-1"},
	}
	for _, tc := range cases {
		if got := Format(tc.location); got != tc.want {
			t.Fatalf("Format(%+v) = %q, want %q", tc.location, got, tc.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, l := range []Location{
		NewHome(),
		NewSection("nb", "section-1"),
		NewPage("nb", "section-1", "page-1"),
		NewInbox("page-1"),
		NewAllPages("page-1"),
	} {
		got, err := Parse(Format(l))
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", Format(l), err)
		}
		if got != l {
			t.Fatalf("expected %+v, got %+v", l, got)
		}
	}
}

func TestParseRelativeLinks(t *testing.T) {
	got, err := Parse("notebook/nb/section/section-1/page/page-1")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got != NewPage("nb", "section-1", "page-1") {
		t.Fatalf("unexpected location %+v", got)
	}

	got, err = Parse("inbox/page/page-9/")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got != NewInbox("page-9") {
		t.Fatalf("unexpected location %+v", got)
	}
}

func TestParseRejectsUnknownPaths(t *testing.T) {
	for _, path := range []string{
		"/app/notebook/nb",
		"/app/inbox/page",
		"/app/settings",
		"/app/notebook/nb/folder/x",
	} {
		if _, err := Parse(path); err == nil {
			t.Fatalf("expected Parse(%q) to fail", path)
		}
	}
}

func TestForPage(t *testing.T) {
	if got := ForPage("nb", "section-1", "page-1"); got.Kind != KindPage {
		t.Fatalf("expected page route, got %+v", got)
	}
	if got := ForPage("", "section-1", "page-1"); got != NewAllPages("page-1") {
		t.Fatalf("expected all-pages route, got %+v", got)
	}
}
