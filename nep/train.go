//Package nep merges deepmd systems into the single, globally frame-indexed
//collection the NEP potential-fitting program trains on, and writes it in
//the train.in text format.
package nep

import (
	"fmt"

	deepmd "github.com/nep-tools/deep2nep"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Frame is one globally indexed training frame. Virial is the six-component
// symmetric reduction of the 3x3 tensor, all-zero when HasVirial is false.
// Cell is the 3x3 lattice flattened row-major; Volume is its scalar triple
// product, negative for left-handed cells.
type Frame struct {
	System    string //the directory the frame came from
	NAtoms    int
	Types     []int //zero-based, shared with the source system
	HasVirial bool
	Energy    float64
	Virial    [6]float64
	Cell      [9]float64
	Volume    float64
	Coords    *mat.Dense
	Forces    *mat.Dense
}

// TrainSet is the merged collection: every frame of every system, in system
// order and, within a system, local frame order.
type TrainSet struct {
	Frames []*Frame
}

// NFrames returns the global frame count.
func (T *TrainSet) NFrames() int {
	return len(T.Frames)
}

// FromSystems merges systems into a TrainSet by append-only construction;
// the systems are not modified. Every frame of every system must carry an
// energy and forces, since train.in has no representation for their absence.
// Merging zero systems, or a system with zero frames, is an error.
func FromSystems(systems []*deepmd.System) (*TrainSet, error) {
	if len(systems) == 0 {
		return nil, Error{NoFrames, []string{"FromSystems"}}
	}
	T := new(TrainSet)
	for _, S := range systems {
		n := S.NFrames()
		if n == 0 {
			return nil, Error{fmt.Sprintf("%s: system %s", NoFrames, S.Name), []string{"FromSystems"}}
		}
		if len(S.Energies) != n {
			return nil, Error{fmt.Sprintf("%s: system %s has %d for %d frames", NoEnergies, S.Name, len(S.Energies), n), []string{"FromSystems"}}
		}
		if len(S.Forces) != n {
			return nil, Error{fmt.Sprintf("%s: system %s has %d for %d frames", NoForces, S.Name, len(S.Forces), n), []string{"FromSystems"}}
		}
		for j := 0; j < n; j++ {
			fr := &Frame{
				System:    S.Name,
				NAtoms:    S.NAtoms(),
				Types:     S.AtomTypes,
				HasVirial: len(S.HasVirial) == n && S.HasVirial[j],
				Energy:    S.Energies[j],
				Coords:    S.Coords[j],
				Forces:    S.Forces[j],
			}
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					fr.Cell[3*r+c] = S.Cells[j].At(r, c)
				}
			}
			fr.Volume = CellVolume(fr.Cell[:])
			if fr.HasVirial {
				fr.Virial = Voigt(S.Virials[j])
			}
			T.Frames = append(T.Frames, fr)
		}
	}
	return T, nil
}

// Voigt reduces a 3x3 virial tensor to its six independent symmetric
// components, ordered xx, yy, zz, xy, yz, zx, with the off-diagonal
// components taken from the upper triangle.
func Voigt(m *mat.Dense) [6]float64 {
	return [6]float64{
		m.At(0, 0), m.At(1, 1), m.At(2, 2),
		m.At(0, 1), m.At(1, 2), m.At(0, 2),
	}
}

// CellVolume returns a.(b x c) for a flattened 3x3 cell, rows a, b, c.
func CellVolume(cell []float64) float64 {
	a, b, c := cell[0:3], cell[3:6], cell[6:9]
	cross := []float64{
		b[1]*c[2] - b[2]*c[1],
		b[2]*c[0] - b[0]*c[2],
		b[0]*c[1] - b[1]*c[0],
	}
	return floats.Dot(a, cross)
}

//Errors

// Error is the error type for merge and serialization problems.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

// Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	//Not a pointer receiver, but deco is a slice, hence a pointer itself,
	//so the append is visible through the copy.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

const (
	NoFrames    = "nep: nothing to merge"
	NoEnergies  = "nep: missing energies"
	NoForces    = "nep: missing forces"
	WriteFailed = "nep: writing train.in failed"
)
