package workspace

import "time"

// idClock mints record identities from wall-clock milliseconds. Successive
// ids are strictly increasing even when the clock stalls or steps back.
type idClock struct {
	now  func() time.Time
	last int64
}

func (c *idClock) next() int64 {
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

// observe raises the floor so freshly minted ids never collide with ids
// already present in loaded data.
func (c *idClock) observe(id int64) {
	if id > c.last {
		c.last = id
	}
}
