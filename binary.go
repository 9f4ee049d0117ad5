package main

import (
	"io"
	"os"
	"unicode/utf8"
)

// sniffLength bounds how much of a file is read for binary detection.
const sniffLength = 8000

// looksBinary reports whether the data appears to be binary: a NUL byte or
// invalid UTF-8 in the sniffed prefix.
func looksBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, b := range data {
		if b == 0 {
			return true
		}
	}
	return false
}

// isBinaryFile sniffs a bounded prefix of the file at path. A file that
// cannot be opened or read is treated as text: inclusion is the default,
// and a single unreadable file should not truncate the listing.
func isBinaryFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, sniffLength)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false
	}
	data := buf[:n]
	if n == sniffLength {
		// A full buffer may have cut a multi-byte rune at the boundary;
		// drop the partial sequence so the file is not misread as binary.
		data = trimPartialRune(data)
	}
	return looksBinary(data)
}

// trimPartialRune removes a truncated multi-byte UTF-8 sequence from the
// end of data. Bytes that do not form the start of a longer rune are left
// in place so genuinely invalid input still fails validation.
func trimPartialRune(data []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(data); i++ {
		b := data[len(data)-i]
		if b < utf8.RuneSelf {
			return data
		}
		if utf8.RuneStart(b) {
			if r, size := utf8.DecodeRune(data[len(data)-i:]); r != utf8.RuneError && size == i {
				return data
			}
			return data[:len(data)-i]
		}
	}
	return data
}

// shouldInclude applies the binary and size filters to a regular file.
// Known image extensions skip the binary sniff so the renderers can place
// them as figures.
func (r *run) shouldInclude(path string, size int64) (ok bool, note string) {
	if !isImagePath(path) && isBinaryFile(path) {
		return false, "skipped, binary"
	}
	if size > r.maxBytes {
		return false, "skipped, too large"
	}
	return true, ""
}
