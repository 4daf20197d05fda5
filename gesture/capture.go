package gesture

// Capture routes every event of a pointer to the handler that captured it,
// regardless of what is under the pointer.
type Capture struct {
	owners map[int]Handler
}

// NewCapture creates an empty routing table.
func NewCapture() *Capture {
	return &Capture{owners: make(map[int]Handler)}
}

// Capture routes pointerID to h until released.
func (c *Capture) Capture(pointerID int, h Handler) {
	c.owners[pointerID] = h
}

// Release stops routing pointerID.
func (c *Capture) Release(pointerID int) {
	delete(c.owners, pointerID)
}

// Owner returns the handler that captured pointerID.
func (c *Capture) Owner(pointerID int) (Handler, bool) {
	h, ok := c.owners[pointerID]
	return h, ok
}

// Dispatch delivers ev to the capturing handler, if any. A release the
// handler uses ends its gesture and drops the capture; a release it ignores,
// such as another button lifting mid-drag, leaves the capture in place.
// handled reports whether a captured handler received the event.
func (c *Capture) Dispatch(ev PointerEvent) (handled bool) {
	h, ok := c.owners[ev.PointerID]
	if !ok {
		return false
	}
	if h.HandlePointer(ev) && ev.Kind == Release {
		c.Release(ev.PointerID)
	}
	return true
}
