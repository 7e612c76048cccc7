package logger

// lineRing is a fixed-capacity circular buffer of log lines.
type lineRing struct {
	lines    []string
	head     int // next write position
	size     int
	received int // lines written since the last compaction
}

func newLineRing(capacity int) *lineRing {
	return &lineRing{lines: make([]string, max(capacity, 1))}
}

func (r *lineRing) push(line string) {
	r.lines[r.head] = line
	r.head = (r.head + 1) % len(r.lines)
	if r.size < len(r.lines) {
		r.size++
	}
	r.received++
}

// snapshot returns the buffered lines oldest first.
func (r *lineRing) snapshot() []string {
	if r.size == 0 {
		return nil
	}

	out := make([]string, r.size)
	start := (r.head - r.size + len(r.lines)) % len(r.lines)
	for i := range r.size {
		out[i] = r.lines[(start+i)%len(r.lines)]
	}
	return out
}
