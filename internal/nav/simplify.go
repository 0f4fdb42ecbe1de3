package nav

// Simplify removes interior waypoints that lie on the straight line between
// their neighbours: b is dropped when the sign-clamped steps a→b and b→c are
// equal. Endpoints are always kept and the input is not modified.
// Simplify(Simplify(p)) == Simplify(p).
func Simplify(path []*Node) []*Node {
	if len(path) < 3 {
		return append([]*Node(nil), path...)
	}

	out := make([]*Node, 0, len(path))
	out = append(out, path[0])
	for i := 1; i < len(path)-1; i++ {
		a, b, c := out[len(out)-1], path[i], path[i+1]
		if b.Coord.Sub(a.Coord).Sign() == c.Coord.Sub(b.Coord).Sign() {
			continue
		}
		out = append(out, b)
	}
	return append(out, path[len(path)-1])
}
