package docmodel

import "sort"

// LineOf returns the 1-based line and column (in bytes) of offset in the
// full document. Offsets past the end map to the last position.
func (d *ParsedDoc) LineOf(offset int) (line, col int) {
	d.lineOnce.Do(func() {
		d.lineStarts = []int{0}
		for i, b := range d.original {
			if b == '\n' {
				d.lineStarts = append(d.lineStarts, i+1)
			}
		}
	})

	offset = max(0, min(offset, len(d.original)))
	// index of the last line start <= offset
	i := sort.Search(len(d.lineStarts), func(i int) bool { return d.lineStarts[i] > offset }) - 1
	return i + 1, offset - d.lineStarts[i] + 1
}
