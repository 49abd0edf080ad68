/*
 * deepmd.go, part of deep2nep.
 *
 * Copyright 2024 The deep2nep developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package deepmd

import "gonum.org/v1/gonum/mat"

// Topology contains the information about a system which does not change
// across its frames: the per-atom type assignment and the type vocabulary.
type Topology struct {
	AtomTypes []int    //zero-based type index, one per atom
	AtomNumbs []int    //number of atoms of each type index, possibly zero
	AtomNames []string //one name per type index
}

// NAtoms returns the number of atoms in the system.
func (T *Topology) NAtoms() int {
	return len(T.AtomTypes)
}

// NTypes returns the number of type slots, i.e. max(AtomTypes)+1. A type
// index with no atoms still reserves its slot.
func (T *Topology) NTypes() int {
	return len(T.AtomNumbs)
}

// FrameSet is one contiguous block of frames as stored in a set.* directory.
// All present sequences are indexed by local frame number and share the same
// length. Energies, Forces and Virials are nil when the backing file is
// absent or empty.
type FrameSet struct {
	Cells    []*mat.Dense //3x3 lattice vectors, rows a, b, c
	Coords   []*mat.Dense //Nx3 positions
	Energies []float64
	Forces   []*mat.Dense //Nx3
	Virials  []*mat.Dense //3x3
}

// NFrames returns the number of frames in the set.
func (F *FrameSet) NFrames() int {
	return len(F.Cells)
}

// System is a whole system directory: its topology plus the concatenation of
// all its frame sets, in lexicographic set order. HasVirial marks, per frame,
// whether virial data is available; it is all-true when every frame carries a
// virial and all-false otherwise (partial coverage is not representable).
type System struct {
	*Topology
	Name      string //the directory the system was read from
	Cells     []*mat.Dense
	Coords    []*mat.Dense
	Energies  []float64
	Forces    []*mat.Dense
	Virials   []*mat.Dense
	HasVirial []bool
	NoPBC     bool //a "nopbc" marker file was present
}

// NFrames returns the number of frames in the system.
func (S *System) NFrames() int {
	return len(S.Cells)
}
