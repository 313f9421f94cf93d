// File: pkg/combine/binary.go
package combine

import "bytes"

// sniffLen is how much of a file's head is inspected for binary content.
const sniffLen = 512

// isBinaryContent reports whether content looks binary: a NUL byte or more
// than 30% non-printable characters in its first sniffLen bytes.
func isBinaryContent(content []byte) bool {
	head := content
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if len(head) == 0 {
		return false // Empty files are considered text
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range head {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(head)) > 0.3
}

// isPrintable checks if a byte is printable ASCII, whitespace, or part of a
// UTF-8 sequence.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80
}
