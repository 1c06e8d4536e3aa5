package crop

import "testing"

func TestOwnedStore_RoundTrip(t *testing.T) {
	s := NewOwnedStore()
	if got := s.Rects(); len(got) != 0 {
		t.Fatalf("fresh store not empty: %v", got)
	}
	next := []Rect{{ID: "a", Rect: rect(1, 2, 30, 40)}}
	s.Propose(next)
	got := s.Rects()
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("round trip failed: %v", got)
	}
}

func TestControlledStore_Delegates(t *testing.T) {
	backing := []Rect{{ID: "x", Rect: rect(0, 0, 10, 10)}}
	var submitted []Rect
	s := &ControlledStore{
		Get:    func() []Rect { return backing },
		Submit: func(next []Rect) { submitted = next },
	}
	if got := s.Rects(); len(got) != 1 || got[0].ID != "x" {
		t.Fatalf("Get not delegated: %v", got)
	}
	s.Propose(nil)
	if submitted != nil {
		t.Fatalf("Submit should receive the proposed value unchanged")
	}
	s.Propose([]Rect{{ID: "y"}})
	if len(submitted) != 1 || submitted[0].ID != "y" {
		t.Fatalf("Submit not delegated: %v", submitted)
	}
	// Nil funcs are tolerated.
	empty := &ControlledStore{}
	empty.Propose([]Rect{{ID: "z"}})
	if got := empty.Rects(); got != nil {
		t.Fatalf("nil-backed store must return nil, got %v", got)
	}
}
