package geometry

import "testing"

func TestNormalize_CornerOrderIrrelevant(t *testing.T) {
	cases := []struct {
		name   string
		p0, p1 Point
		want   Rect
	}{
		{"down-right", Point{10, 10}, Point{110, 160}, Rect{10, 10, 100, 150}},
		{"up-left", Point{110, 160}, Point{10, 10}, Rect{10, 10, 100, 150}},
		{"down-left", Point{110, 10}, Point{10, 160}, Rect{10, 10, 100, 150}},
		{"zero delta", Point{42, 7}, Point{42, 7}, Rect{42, 7, 0, 0}},
	}
	for _, tc := range cases {
		got := Normalize(tc.p0, tc.p1)
		if got != tc.want {
			t.Fatalf("%s: Normalize(%v,%v) = %+v, want %+v", tc.name, tc.p0, tc.p1, got, tc.want)
		}
		if sym := Normalize(tc.p1, tc.p0); sym != got {
			t.Fatalf("%s: Normalize not symmetric: %+v vs %+v", tc.name, got, sym)
		}
	}
}

func TestClampToBounds_KeepsSize(t *testing.T) {
	b := Size{Width: 500, Height: 300}
	cases := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"inside untouched", Rect{50, 60, 100, 80}, Rect{50, 60, 100, 80}},
		{"negative origin", Rect{-20, -5, 100, 80}, Rect{0, 0, 100, 80}},
		{"past right edge", Rect{450, 10, 100, 80}, Rect{400, 10, 100, 80}},
		{"past bottom edge", Rect{10, 280, 100, 80}, Rect{10, 220, 100, 80}},
		{"both corners out", Rect{480, 290, 100, 80}, Rect{400, 220, 100, 80}},
	}
	for _, tc := range cases {
		got := ClampToBounds(tc.in, b)
		if got != tc.want {
			t.Fatalf("%s: ClampToBounds(%+v) = %+v, want %+v", tc.name, tc.in, got, tc.want)
		}
		if got.Width != tc.in.Width || got.Height != tc.in.Height {
			t.Fatalf("%s: clamp changed size: %+v", tc.name, got)
		}
		if got.X < 0 || got.Y < 0 || got.X+got.Width > b.Width || got.Y+got.Height > b.Height {
			t.Fatalf("%s: clamped rect escapes bounds: %+v", tc.name, got)
		}
	}
}

func TestMeetsMinimumSize(t *testing.T) {
	if MeetsMinimumSize(Rect{0, 0, 5, 5}, 10) {
		t.Fatalf("5x5 should fail a minimum of 10")
	}
	if MeetsMinimumSize(Rect{0, 0, 100, 5}, 10) {
		t.Fatalf("one short dimension should fail")
	}
	if !MeetsMinimumSize(Rect{0, 0, 10, 10}, 10) {
		t.Fatalf("exactly minimum should pass")
	}
}

func TestScale_Apply(t *testing.T) {
	// Natural 2000x1000 displayed at 1000x500.
	s := Scale{X: 2, Y: 2}
	got := s.Apply(Rect{X: 100, Y: 50, Width: 200, Height: 100})
	want := Rect{X: 200, Y: 100, Width: 400, Height: 200}
	if got != want {
		t.Fatalf("Apply = %+v, want %+v", got, want)
	}
}

func TestScale_ApplyRoundsPerAxis(t *testing.T) {
	s := Scale{X: 1.5, Y: 0.5}
	got := s.Apply(Rect{X: 3, Y: 3, Width: 5, Height: 5})
	// 4.5 rounds away from zero to 5, 1.5 to 2, 7.5 to 8, 2.5 to 3.
	want := Rect{X: 5, Y: 2, Width: 8, Height: 3}
	if got != want {
		t.Fatalf("Apply = %+v, want %+v", got, want)
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{10, 10, 100, 50}
	if !r.Contains(Point{10, 10}) {
		t.Fatalf("origin should be inside")
	}
	if r.Contains(Point{110, 30}) {
		t.Fatalf("far edge should be outside")
	}
	if r.Contains(Point{9.9, 30}) {
		t.Fatalf("left of origin should be outside")
	}
}
