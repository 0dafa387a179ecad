package cursor

// lineCache memoizes line-boundary lookups keyed by the queried offset.
// Entries are only valid for one document revision; the owner clears the
// whole cache on any revision change rather than patching it incrementally.
type lineCache struct {
	starts map[int]int
	ends   map[int]int
}

func newLineCache() *lineCache {
	return &lineCache{
		starts: make(map[int]int),
		ends:   make(map[int]int),
	}
}

func (c *lineCache) lineStart(offset int) (int, bool) {
	v, ok := c.starts[offset]
	return v, ok
}

func (c *lineCache) lineEnd(offset int) (int, bool) {
	v, ok := c.ends[offset]
	return v, ok
}

func (c *lineCache) putLineStart(offset, start int) {
	c.starts[offset] = start
}

func (c *lineCache) putLineEnd(offset, end int) {
	c.ends[offset] = end
}

func (c *lineCache) clear() {
	clear(c.starts)
	clear(c.ends)
}

func (c *lineCache) size() int {
	return len(c.starts) + len(c.ends)
}
