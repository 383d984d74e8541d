package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
	if got := Truncate("こんにちは世界", 5); got != "こんにちは..." {
		t.Errorf("multibyte: got %s", got)
	}
}

func TestHashString(t *testing.T) {
	if HashString("kotae") != HashString("kotae") {
		t.Error("hash must be deterministic")
	}
	if HashString("a") == HashString("b") {
		t.Error("different strings should hash differently")
	}
	if HashString("") != 0 {
		t.Error("empty string hashes to 0")
	}
}
