package crop

import "testing"

func TestResolver_IdentityWhileStale(t *testing.T) {
	r := NewResolver()
	if r.Ready() {
		t.Fatalf("fresh resolver must not be ready")
	}
	if f := r.Factor(); f.X != 1 || f.Y != 1 {
		t.Fatalf("stale resolver must report identity, got %+v", f)
	}
	r.SetNaturalSize(2000, 1000)
	// Displayed size still unknown (image not laid out).
	if f := r.Factor(); f.X != 1 || f.Y != 1 {
		t.Fatalf("resolver without displayed size must report identity, got %+v", f)
	}
}

func TestResolver_FactorAndToNatural(t *testing.T) {
	r := NewResolver()
	r.SetNaturalSize(2000, 1000)
	r.SetDisplayedSize(1000, 500)
	if !r.Ready() {
		t.Fatalf("resolver should be ready")
	}
	f := r.Factor()
	if f.X != 2 || f.Y != 2 {
		t.Fatalf("factor = %+v, want {2 2}", f)
	}
	got := r.ToNatural(rect(100, 50, 200, 100))
	if got.X != 200 || got.Y != 100 || got.Width != 400 || got.Height != 200 {
		t.Fatalf("ToNatural = %+v", got)
	}
}

func TestResolver_ResetReturnsToStale(t *testing.T) {
	r := NewResolver()
	r.SetNaturalSize(800, 600)
	r.SetDisplayedSize(400, 300)
	r.Reset()
	if r.Ready() {
		t.Fatalf("reset resolver must be stale")
	}
	if _, ok := r.DisplayedSize(); ok {
		t.Fatalf("reset resolver must report no displayed size")
	}
}
