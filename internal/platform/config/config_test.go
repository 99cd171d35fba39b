package config

import (
	"path/filepath"
	"testing"

	kit "cwdbridge/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	b := root.Prefix("BRIDGE_")
	if got := b.key("DATA_DIR"); got != "BRIDGE_DATA_DIR" {
		t.Fatalf("key() = %q, want %q", got, "BRIDGE_DATA_DIR")
	}
	// nested prefix
	bLog := b.Prefix("LOG_")
	if got := bLog.key("LEVEL"); got != "BRIDGE_LOG_LEVEL" {
		t.Fatalf("nested key() = %q, want %q", got, "BRIDGE_LOG_LEVEL")
	}
}

// Must* panics

func TestMustString(t *testing.T) {
	c := New().Prefix("BRIDGE_")
	t.Setenv("BRIDGE_MODEL_NAME", "  estimator ")
	if got := c.MustString("MODEL_NAME"); got != "estimator" {
		t.Fatalf("MustString = %q, want %q", got, "estimator")
	}

	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustDir(t *testing.T) {
	c := New().Prefix("BRIDGE_")
	dir := t.TempDir()
	t.Setenv("BRIDGE_DATA_DIR", dir)
	if got := c.MustDir("DATA_DIR"); got != dir {
		t.Fatalf("MustDir = %q, want %q", got, dir)
	}

	// a plain file is not a directory
	file := filepath.Join(dir, "f")
	kit.MustWriteFile(t, file, "x")
	t.Setenv("BRIDGE_FILE", file)
	kit.MustPanic(t, func() { _ = c.MustDir("FILE") })

	t.Setenv("BRIDGE_GONE", filepath.Join(dir, "nope"))
	kit.MustPanic(t, func() { _ = c.MustDir("GONE") })
}

// May* defaults

func TestMayString(t *testing.T) {
	c := New().Prefix("M_")
	if got := c.MayString("NAME", "fallback"); got != "fallback" {
		t.Fatalf("MayString default = %q", got)
	}
	t.Setenv("M_NAME", " set ")
	if got := c.MayString("NAME", "fallback"); got != "set" {
		t.Fatalf("MayString = %q, want %q", got, "set")
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("M_")
	if got := c.MayInt("N", 7); got != 7 {
		t.Fatalf("MayInt default = %d", got)
	}
	t.Setenv("M_N", " 42 ")
	if got := c.MayInt("N", 7); got != 42 {
		t.Fatalf("MayInt = %d, want 42", got)
	}
	t.Setenv("M_N", "nope")
	if got := c.MayInt("N", 7); got != 7 {
		t.Fatalf("MayInt invalid = %d, want default 7", got)
	}
}

func TestMayFloat64(t *testing.T) {
	c := New().Prefix("M_")
	if got := c.MayFloat64("F", 0.5); got != 0.5 {
		t.Fatalf("MayFloat64 default = %v", got)
	}
	t.Setenv("M_F", "0.05")
	if got := c.MayFloat64("F", 0.5); got != 0.05 {
		t.Fatalf("MayFloat64 = %v, want 0.05", got)
	}
	t.Setenv("M_F", "x")
	if got := c.MayFloat64("F", 0.5); got != 0.5 {
		t.Fatalf("MayFloat64 invalid = %v, want default", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("M_")
	if got := c.MayBool("ON", true); !got {
		t.Fatal("MayBool default = false, want true")
	}
	t.Setenv("M_ON", "false")
	if got := c.MayBool("ON", true); got {
		t.Fatal("MayBool = true, want false")
	}
	t.Setenv("M_ON", "notabool")
	if got := c.MayBool("ON", true); !got {
		t.Fatal("MayBool invalid should fall back to default")
	}
}
