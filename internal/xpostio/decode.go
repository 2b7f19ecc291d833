// Package xpostio handles the byte-level side of reading a PostScript
// program from disk: BOM-aware decoding to UTF-8 text before it reaches
// internal/scanner, grounded directly on the teacher's
// internal/interp/encoding.go (detectAndDecodeFile / decodeUTF16).
package xpostio

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeFile reads path and detects its encoding from a BOM: UTF-8, UTF-16
// LE, or UTF-16 BE. Files without a BOM are assumed UTF-8, falling back to a
// byte-for-rune promotion (Latin-1 style) if they aren't valid UTF-8 — a
// PostScript program's token grammar is 7-bit-clean, so this never loses
// anything a `run`/scan pass cares about.
func DecodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("xpostio: read %s: %w", path, err)
	}
	return DecodeBytes(data)
}

// DecodeBytes applies DecodeFile's BOM detection to an in-memory buffer;
// DecodeFile calls it on the bytes it reads. The embedding API's STRING
// input kind takes text and does not go through it.
func DecodeBytes(data []byte) (string, error) {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return string(data[3:]), nil
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return decodeUTF16(data, unicode.LittleEndian)
	}
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return decodeUTF16(data, unicode.BigEndian)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	utf8Data, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("xpostio: decode UTF-16: %w", err)
	}
	if len(utf8Data) >= 3 && utf8Data[0] == 0xEF && utf8Data[1] == 0xBB && utf8Data[2] == 0xBF {
		utf8Data = utf8Data[3:]
	}
	return string(bytes.TrimPrefix(utf8Data, []byte("﻿"))), nil
}
