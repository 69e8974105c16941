package server

import (
	"bytes"
)

// lineIndex stores byte offsets for each line of a mapped file and
// serves 1-based line lookups.
type lineIndex struct {
	offsets []int64 // byte offset of each line start
	file    *mappedFile
}

// buildLineIndex scans the file and records every line start.
func buildLineIndex(file *mappedFile) (*lineIndex, error) {
	size := file.Size()
	if size == 0 {
		return &lineIndex{offsets: nil, file: file}, nil
	}

	// Estimate initial capacity (assume ~100 bytes per line)
	estimatedLines := int(size/100) + 1
	offsets := make([]int64, 0, estimatedLines)
	offsets = append(offsets, 0) // First line starts at 0

	// Read in chunks to find newlines
	const chunkSize = 64 * 1024
	buf := make([]byte, chunkSize)

	var pos int64
	for pos < size {
		readSize := chunkSize
		if pos+int64(readSize) > size {
			readSize = int(size - pos)
		}

		n, err := file.ReadAt(buf[:readSize], pos)
		if err != nil {
			return nil, err
		}

		chunk := buf[:n]
		offset := 0
		for {
			idx := bytes.IndexByte(chunk[offset:], '\n')
			if idx == -1 {
				break
			}
			lineStart := pos + int64(offset) + int64(idx) + 1
			if lineStart < size {
				offsets = append(offsets, lineStart)
			}
			offset += idx + 1
		}

		pos += int64(n)
	}

	return &lineIndex{offsets: offsets, file: file}, nil
}

// Count returns the total number of lines.
func (idx *lineIndex) Count() int {
	return len(idx.offsets)
}

// Line returns the content of the 1-based line number, without its
// trailing newline. Out-of-range numbers return ok=false.
func (idx *lineIndex) Line(num int) (string, bool) {
	if num < 1 || num > len(idx.offsets) {
		return "", false
	}

	start := idx.offsets[num-1]
	var end int64
	if num < len(idx.offsets) {
		end = idx.offsets[num]
	} else {
		end = idx.file.Size()
	}

	content, err := idx.file.ReadRange(start, end)
	if err != nil {
		return "", false
	}

	return string(bytes.TrimRight(content, "\r\n")), true
}

// Lines returns the contents of lines start..end inclusive, clamped to
// the file. An empty result means the range lies entirely outside.
func (idx *lineIndex) Lines(start, end int) []string {
	if start < 1 {
		start = 1
	}
	if end > len(idx.offsets) {
		end = len(idx.offsets)
	}
	if start > end {
		return nil
	}

	lines := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		content, ok := idx.Line(n)
		if !ok {
			break
		}
		lines = append(lines, content)
	}
	return lines
}
