package nav

// lineIterator rasterizes the segment between two cells with integer
// arithmetic. The i-th cell along the major axis is computed from the
// canonical endpoint (lower X, then lower Y), so (a,b) and (b,a) visit the
// same cells; only the visiting order differs. Both endpoints are included.
type lineIterator struct {
	originX, originY int
	deltaX, deltaY   int // absolute deltas from origin
	stepX, stepY     int
	steps            int // cells after the origin
	xMajor           bool

	i, dir  int
	started bool
	x, y    int
}

func newLineIterator(a, b Coord) *lineIterator {
	from, to := a, b
	reversed := b.X < a.X || (b.X == a.X && b.Y < a.Y)
	if reversed {
		from, to = b, a
	}

	it := &lineIterator{
		originX: from.X,
		originY: from.Y,
		deltaX:  absInt(to.X - from.X),
		deltaY:  absInt(to.Y - from.Y),
		stepX:   sign(to.X - from.X),
		stepY:   sign(to.Y - from.Y),
	}
	it.xMajor = it.deltaX >= it.deltaY
	it.steps = max(it.deltaX, it.deltaY)

	it.dir = 1
	if reversed {
		it.i = it.steps
		it.dir = -1
	}
	return it
}

// Next advances to the next cell. Returns false once past the far endpoint.
func (it *lineIterator) Next() bool {
	if !it.started {
		it.started = true
	} else {
		it.i += it.dir
		if it.i < 0 || it.i > it.steps {
			return false
		}
	}
	it.x, it.y = it.cell(it.i)
	return true
}

// X returns the current cell's X.
func (it *lineIterator) X() int { return it.x }

// Y returns the current cell's Y.
func (it *lineIterator) Y() int { return it.y }

// Len returns the number of cells the iterator visits.
func (it *lineIterator) Len() int { return it.steps + 1 }

// cell returns the i-th cell from the origin: the minor axis offset is
// i*minor/major rounded half up, computed without division by zero.
func (it *lineIterator) cell(i int) (int, int) {
	if it.steps == 0 {
		return it.originX, it.originY
	}
	if it.xMajor {
		minor := (2*i*it.deltaY + it.deltaX) / (2 * it.deltaX)
		return it.originX + it.stepX*i, it.originY + it.stepY*minor
	}
	minor := (2*i*it.deltaX + it.deltaY) / (2 * it.deltaY)
	return it.originX + it.stepX*minor, it.originY + it.stepY*i
}
