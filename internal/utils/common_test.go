package utils

import (
	"reflect"
	"testing"
)

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/", ""},
		{"#/foo/bar/0/baz", "foo.bar[0].baz"},
		{"/2/title", "[2].title"},
		{"/0", "[0]"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := JSONPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("JSONPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := SplitAndTrim(" a, ,b ,c,", ",")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitAndTrim: got %v, want %v", got, want)
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  Pending\n"); got != "pending" {
		t.Errorf("NormalizeName: got %q, want pending", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
		{"açúcar demais", 8, "açúca..."},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
