package crop

// Store owns the rectangle collection. The engine is the single writer: it
// reads the current value, computes the next one and submits it through
// Propose. Hosts that manage the collection themselves plug in a
// ControlledStore; otherwise the engine keeps an OwnedStore.
type Store interface {
	Rects() []Rect
	Propose(next []Rect)
}

// OwnedStore keeps the collection in memory. UI-thread confined, no
// synchronization needed.
type OwnedStore struct {
	rects []Rect
}

func NewOwnedStore() *OwnedStore { return &OwnedStore{} }

func (s *OwnedStore) Rects() []Rect {
	if s == nil {
		return nil
	}
	return s.rects
}

func (s *OwnedStore) Propose(next []Rect) {
	if s == nil {
		return
	}
	s.rects = next
}

// ControlledStore forwards reads and proposed values to a host-supplied
// owner. The engine never mutates the host's slice; every Propose carries a
// freshly built value.
type ControlledStore struct {
	Get    func() []Rect
	Submit func(next []Rect)
}

func (s *ControlledStore) Rects() []Rect {
	if s == nil || s.Get == nil {
		return nil
	}
	return s.Get()
}

func (s *ControlledStore) Propose(next []Rect) {
	if s == nil || s.Submit == nil {
		return
	}
	s.Submit(next)
}
