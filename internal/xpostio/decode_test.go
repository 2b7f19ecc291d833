package xpostio

import (
	"testing"
)

func TestDecodeBytesPlainUTF8(t *testing.T) {
	got, err := DecodeBytes([]byte("1 2 add"))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if got != "1 2 add" {
		t.Fatalf("got %q, want %q", got, "1 2 add")
	}
}

func TestDecodeBytesUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("/x 1 def")...)
	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if got != "/x 1 def" {
		t.Fatalf("got %q, want %q (BOM should be stripped)", got, "/x 1 def")
	}
}

func TestDecodeBytesUTF16LE(t *testing.T) {
	// "ab" as UTF-16LE with a BOM.
	data := []byte{0xFF, 0xFE, 'a', 0x00, 'b', 0x00}
	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
}

func TestDecodeBytesUTF16BE(t *testing.T) {
	data := []byte{0xFE, 0xFF, 0x00, 'a', 0x00, 'b'}
	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
}
