package strings

import (
	"testing"

	kit "cwdbridge/internal/platform/testkit"
)

func TestPtrAndDeref(t *testing.T) {
	t.Parallel()

	if Ptr("") != nil {
		t.Fatal("Ptr(\"\") should be nil")
	}
	p := Ptr("x")
	if p == nil || *p != "x" {
		t.Fatalf("Ptr(\"x\") = %v", p)
	}
	if Deref(p) != "x" {
		t.Fatalf("Deref = %q", Deref(p))
	}
	if Deref(nil) != "" {
		t.Fatal("Deref(nil) should be empty")
	}
}

func TestEmptyToNil(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"", ""},
		{"   ", ""},
		{"\t\n", ""},
		{" x ", " x "}, // content survives untouched
	}
	for _, c := range cases {
		if got := EmptyToNil(c.in); got != c.want {
			t.Errorf("EmptyToNil(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMustString(t *testing.T) {
	kit.MustNotPanic(t, func() {
		if got := MustString("ok", "name"); got != "ok" {
			t.Fatalf("want ok got %q", got)
		}
	})
	kit.MustPanic(t, func() { _ = MustString("   ", "name") })
	kit.MustPanic(t, func() { _ = MustString("", "name") })
}
