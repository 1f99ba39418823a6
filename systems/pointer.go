package systems

// Pointer turns held-button state into pour events. It fires on the press
// and on every later update where the pointer has moved while held, so a
// button held still pours only once.
type Pointer struct {
	down bool
	x, y float64
}

// Update records the button state at (x, y) and reports whether to pour.
func (p *Pointer) Update(down bool, x, y float64) bool {
	pour := down && (!p.down || x != p.x || y != p.y)
	p.down = down
	p.x, p.y = x, y
	return pour
}

// Release forgets the held state, e.g. when the pointer leaves the canvas.
func (p *Pointer) Release() {
	p.down = false
}
