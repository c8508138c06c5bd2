package board

// A Symmetry is one of the 8 transforms of the square, stored as a
// permutation of cell indices.
type Symmetry struct {
	Name string
	perm [NumCells]int
}

// Symmetries lists the symmetry group of the grid. The order is fixed and
// Identity is first; pattern matching depends on it.
var Symmetries [8]Symmetry

// Identity is Symmetries[0].
var Identity *Symmetry

const last = Dim - 1

func init() {
	transforms := []struct {
		name string
		fn   func(r, c int) (int, int)
	}{
		{"identity", func(r, c int) (int, int) { return r, c }},
		{"rot90", func(r, c int) (int, int) { return c, last - r }},
		{"rot180", func(r, c int) (int, int) { return last - r, last - c }},
		{"rot270", func(r, c int) (int, int) { return last - c, r }},
		{"flip-horizontal", func(r, c int) (int, int) { return r, last - c }},
		{"flip-vertical", func(r, c int) (int, int) { return last - r, c }},
		// Transpose around the 0-6-12-18-24 diagonal.
		{"transpose", func(r, c int) (int, int) { return c, r }},
		// Transpose around the 4-8-12-16-20 diagonal.
		{"anti-transpose", func(r, c int) (int, int) { return last - c, last - r }},
	}
	for i, t := range transforms {
		s := Symmetry{Name: t.name}
		for idx := 0; idx < NumCells; idx++ {
			r, c := t.fn(Row(idx), Col(idx))
			s.perm[idx] = Index(r, c)
		}
		Symmetries[i] = s
	}
	Identity = &Symmetries[0]
}

// Cell maps a cell index through the symmetry.
func (s *Symmetry) Cell(cell int) int {
	return s.perm[cell]
}

// Board maps every selected cell through the symmetry.
func (s *Symmetry) Board(b Board) Board {
	var out Board
	for m := b & Full; m != 0; m &= m - 1 {
		out = out.Add(s.perm[trailingCell(m)])
	}
	return out
}

// inverse returns the symmetry that undoes s.
func (s *Symmetry) inverse() *Symmetry {
	for i := range Symmetries {
		o := &Symmetries[i]
		ok := true
		for c := 0; c < NumCells; c++ {
			if o.perm[s.perm[c]] != c {
				ok = false
				break
			}
		}
		if ok {
			return o
		}
	}
	// The group is closed under inversion.
	panic("no inverse for symmetry " + s.Name)
}
