package view

import "testing"

func TestScrollIntoView(t *testing.T) {
	r := NewScrollableRegion(10)
	r.ScrollIntoView(25)
	if r.LineOffset() != 16 {
		t.Fatalf("offset = %d, want 16", r.LineOffset())
	}
	r.ScrollIntoView(20)
	if r.LineOffset() != 16 {
		t.Errorf("visible line moved the region to %d", r.LineOffset())
	}
	r.ScrollIntoView(3)
	if r.LineOffset() != 3 {
		t.Errorf("offset = %d, want 3", r.LineOffset())
	}
	if !r.Visible(12) || r.Visible(13) {
		t.Error("visibility bounds are wrong")
	}
}

func TestScrollToCenter(t *testing.T) {
	r := NewScrollableRegion(10)
	r.ScrollToCenter(50)
	if r.LineOffset() != 45 {
		t.Errorf("offset = %d, want 45", r.LineOffset())
	}
	r.ScrollToCenter(2)
	if r.LineOffset() != 0 {
		t.Errorf("offset = %d, want 0", r.LineOffset())
	}
}

func TestScrollBounds(t *testing.T) {
	const lineCount = 30
	for _, amount := range []int{1, 5, 24, 25, 26, 100, 1000} {
		r := NewScrollableRegion(10)
		r.ScrollDown(amount, lineCount)
		if limit := lineCount - 10/2; r.LineOffset() > limit {
			t.Errorf("scroll down %d: offset %d exceeds %d", amount, r.LineOffset(), limit)
		}
		r.ScrollDown(amount, lineCount)
		if limit := lineCount - 10/2; r.LineOffset() > limit {
			t.Errorf("second scroll down %d: offset %d exceeds %d", amount, r.LineOffset(), limit)
		}
		r.ScrollUp(amount * 3)
		if r.LineOffset() < 0 {
			t.Errorf("scroll up %d went negative", amount)
		}
	}

	r := NewScrollableRegion(10)
	r.ScrollDown(7, lineCount)
	if r.LineOffset() != 7 {
		t.Errorf("offset = %d, want 7", r.LineOffset())
	}
	r.ScrollUp(3)
	if r.LineOffset() != 4 {
		t.Errorf("offset = %d, want 4", r.LineOffset())
	}
	r.ScrollUp(10)
	if r.LineOffset() != 0 {
		t.Errorf("offset = %d, want 0", r.LineOffset())
	}
}
