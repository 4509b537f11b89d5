package spin

import "fmt"

// EnsembleField holds one vector per (atom, ensemble member) pair in a
// single flat backing array, ensemble-major so that one ensemble member's
// atoms are contiguous.
type EnsembleField struct {
	atoms     int
	ensembles int
	data      []Vector
}

func NewEnsembleField(atoms, ensembles int) *EnsembleField {
	if atoms <= 0 || ensembles <= 0 {
		panic(fmt.Sprintf("spin: invalid ensemble field size %dx%d", atoms, ensembles))
	}
	return &EnsembleField{
		atoms:     atoms,
		ensembles: ensembles,
		data:      make([]Vector, atoms*ensembles),
	}
}

func (f *EnsembleField) Atoms() int     { return f.atoms }
func (f *EnsembleField) Ensembles() int { return f.ensembles }

func (f *EnsembleField) At(atom, ensemble int) Vector {
	return f.data[ensemble*f.atoms+atom]
}

func (f *EnsembleField) Set(atom, ensemble int, v Vector) {
	f.data[ensemble*f.atoms+atom] = v
}

func (f *EnsembleField) Zero() {
	for i := range f.data {
		f.data[i] = Vector{}
	}
}

func (f *EnsembleField) Clone() *EnsembleField {
	c := NewEnsembleField(f.atoms, f.ensembles)
	copy(c.data, f.data)
	return c
}

// Scalars holds one float64 per (atom, ensemble member) pair, same layout
// as EnsembleField. Used for moment magnitudes.
type Scalars struct {
	atoms     int
	ensembles int
	data      []float64
}

func NewScalars(atoms, ensembles int) *Scalars {
	if atoms <= 0 || ensembles <= 0 {
		panic(fmt.Sprintf("spin: invalid scalar field size %dx%d", atoms, ensembles))
	}
	return &Scalars{
		atoms:     atoms,
		ensembles: ensembles,
		data:      make([]float64, atoms*ensembles),
	}
}

func (s *Scalars) Atoms() int     { return s.atoms }
func (s *Scalars) Ensembles() int { return s.ensembles }

func (s *Scalars) At(atom, ensemble int) float64 {
	return s.data[ensemble*s.atoms+atom]
}

func (s *Scalars) Set(atom, ensemble int, v float64) {
	s.data[ensemble*s.atoms+atom] = v
}

func (s *Scalars) Fill(v float64) {
	for i := range s.data {
		s.data[i] = v
	}
}
