package study

// cursor is the navigator shared by quiz and flashcard sessions.
// It never wraps and treats moves past either end as no-ops.
type cursor struct {
	position int
	size     int
}

func newCursor(size int) cursor {
	return cursor{size: size}
}

// advance moves forward one item and reports whether the position changed.
func (c *cursor) advance() bool {
	if c.position >= c.size-1 {
		return false
	}
	c.position++
	return true
}

// retreat moves back one item and reports whether the position changed.
func (c *cursor) retreat() bool {
	if c.position <= 0 {
		return false
	}
	c.position--
	return true
}

func (c *cursor) reset() {
	c.position = 0
}

func (c cursor) isFirst() bool {
	return c.position == 0
}

func (c cursor) isLast() bool {
	return c.position == c.size-1
}
