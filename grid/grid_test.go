package grid

import "testing"

func TestNewIsEmpty(t *testing.T) {
	g := New(4, 3)
	if g.W != 4 || g.H != 3 {
		t.Fatalf("expected 4x3, got %dx%d", g.W, g.H)
	}
	if len(g.Cells()) != 12 {
		t.Fatalf("expected 12 cells, got %d", len(g.Cells()))
	}
	if g.Occupied() != 0 {
		t.Errorf("new grid should be empty, got %d occupied", g.Occupied())
	}
}

func TestNewDoesNotAlias(t *testing.T) {
	a := New(3, 3)
	b := New(3, 3)
	a.Set(1, 1, 5)
	if b.At(1, 1) != Empty {
		t.Error("grids share storage")
	}

	c := a.Clone()
	c.Set(0, 0, 7)
	if a.At(0, 0) != Empty {
		t.Error("clone shares storage with original")
	}
	if c.At(1, 1) != 5 {
		t.Error("clone lost cell value")
	}
}

func TestNewClampsDimensions(t *testing.T) {
	g := New(0, -3)
	if g.W != 1 || g.H != 1 {
		t.Errorf("expected 1x1, got %dx%d", g.W, g.H)
	}
}

func TestExists(t *testing.T) {
	g := New(3, 2)
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{2, 1, true},
		{3, 0, false},
		{0, 2, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, tt := range tests {
		if got := g.Exists(tt.x, tt.y); got != tt.want {
			t.Errorf("Exists(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestColumnMajorLayout(t *testing.T) {
	g := New(2, 3)
	g.Set(1, 2, 9)
	if g.Cells()[1*3+2] != 9 {
		t.Error("expected cell (1,2) at index 5")
	}
}

func TestColumnHeight(t *testing.T) {
	g := New(2, 5)
	if h := g.ColumnHeight(0); h != 0 {
		t.Errorf("empty column height = %d, want 0", h)
	}
	g.Set(0, 4, 1)
	g.Set(0, 2, 1)
	if h := g.ColumnHeight(0); h != 3 {
		t.Errorf("column height = %d, want 3", h)
	}
}

func TestClear(t *testing.T) {
	g := New(3, 3)
	g.Set(0, 0, 1)
	g.Set(2, 2, 2)
	g.Clear()
	if g.Occupied() != 0 {
		t.Errorf("expected empty grid after Clear, got %d", g.Occupied())
	}
}
