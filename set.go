/*
 * set.go, part of deep2nep.
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

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nep-tools/deep2nep/npy"
	"gonum.org/v1/gonum/mat"
)

// LoadSet reads one set.* directory as a FrameSet. box.npy and coord.npy are
// mandatory; energy.npy, force.npy and virial.npy are loaded only when
// present and non-empty. natoms is the atom count from the system topology.
// The frame count is the number of 3x3 blocks in box; every other array must
// match it exactly, which is checked before any matrix is built. Any array
// may be stored gzip-compressed under a .gz suffix instead.
func LoadSet(dir string, natoms int) (*FrameSet, error) {
	box, err := condLoad(dir, "box")
	if err != nil {
		return nil, errDecorate(err, "LoadSet")
	}
	if box == nil {
		return nil, cerror(MissingFile, filepath.Join(dir, "box.npy"), "LoadSet")
	}
	coord, err := condLoad(dir, "coord")
	if err != nil {
		return nil, errDecorate(err, "LoadSet")
	}
	if coord == nil {
		return nil, cerror(MissingFile, filepath.Join(dir, "coord.npy"), "LoadSet")
	}
	ener, err := condLoad(dir, "energy")
	if err != nil {
		return nil, errDecorate(err, "LoadSet")
	}
	force, err := condLoad(dir, "force")
	if err != nil {
		return nil, errDecorate(err, "LoadSet")
	}
	vir, err := condLoad(dir, "virial")
	if err != nil {
		return nil, errDecorate(err, "LoadSet")
	}
	F, err := assembleSet(dir, natoms, box.Data, coord.Data, data(ener), data(force), data(vir))
	if err != nil {
		return nil, errDecorate(err, "LoadSet")
	}
	return F, nil
}

// condLoad loads dir/name.npy, or dir/name.npy.gz when only the compressed
// file exists. It returns nil without error when neither file is there.
func condLoad(dir, name string) (*npy.Array, error) {
	p := filepath.Join(dir, name+".npy")
	if _, err := os.Stat(p); err != nil {
		if _, err := os.Stat(p + ".gz"); err != nil {
			return nil, nil
		}
		p += ".gz"
	}
	return npy.Read(p)
}

// data unwraps a conditionally loaded array, nil stays nil.
func data(a *npy.Array) []float64 {
	if a == nil {
		return nil
	}
	return a.Data
}

// assembleSet builds a FrameSet from flat arrays, checking every element
// count before reshaping. Optional arrays are nil or empty when absent; name
// is only used in error messages.
func assembleSet(name string, natoms int, box, coord, ener, force, vir []float64) (*FrameSet, error) {
	if len(box) == 0 || len(box)%9 != 0 {
		return nil, cerror(WrongShape, fmt.Sprintf("box in %s has %d elements, want a multiple of 9", name, len(box)), "assembleSet")
	}
	nframes := len(box) / 9
	percoord := natoms * 3
	if len(coord) != nframes*percoord {
		return nil, cerror(WrongShape, fmt.Sprintf("coord in %s has %d elements, want %d frames x %d atoms x 3", name, len(coord), nframes, natoms), "assembleSet")
	}
	F := new(FrameSet)
	F.Cells = frames3x3(box)
	F.Coords = framesNx3(coord, nframes, natoms)
	if len(ener) > 0 {
		if len(ener) != nframes {
			return nil, cerror(WrongShape, fmt.Sprintf("energy in %s has %d elements, want %d", name, len(ener), nframes), "assembleSet")
		}
		F.Energies = ener
	}
	if len(force) > 0 {
		if len(force) != nframes*percoord {
			return nil, cerror(WrongShape, fmt.Sprintf("force in %s has %d elements, want %d frames x %d atoms x 3", name, len(force), nframes, natoms), "assembleSet")
		}
		F.Forces = framesNx3(force, nframes, natoms)
	}
	if len(vir) > 0 {
		if len(vir) != nframes*9 {
			return nil, cerror(WrongShape, fmt.Sprintf("virial in %s has %d elements, want %d frames x 9", name, len(vir), nframes), "assembleSet")
		}
		F.Virials = frames3x3(vir)
	}
	return F, nil
}

// frames3x3 cuts a flat array into consecutive 3x3 matrices. The matrices
// alias the input slice.
func frames3x3(data []float64) []*mat.Dense {
	out := make([]*mat.Dense, 0, len(data)/9)
	for i := 0; i < len(data); i += 9 {
		out = append(out, mat.NewDense(3, 3, data[i:i+9]))
	}
	return out
}

// framesNx3 cuts a flat array into nframes consecutive natoms-by-3 matrices.
func framesNx3(data []float64, nframes, natoms int) []*mat.Dense {
	out := make([]*mat.Dense, 0, nframes)
	per := natoms * 3
	for i := 0; i < nframes; i++ {
		out = append(out, mat.NewDense(natoms, 3, data[i*per:(i+1)*per]))
	}
	return out
}

// loadRawSet reads a system stored in the deepmd raw text layout, where
// box.raw, coord.raw and the optional energy.raw, force.raw and virial.raw
// sit at the system level as whitespace-separated text, one frame per line.
// The whole system becomes a single FrameSet.
func loadRawSet(dir string, natoms int) (*FrameSet, error) {
	box, err := readRaw(filepath.Join(dir, "box.raw"))
	if err != nil {
		return nil, errDecorate(err, "loadRawSet")
	}
	coord, err := readRaw(filepath.Join(dir, "coord.raw"))
	if err != nil {
		return nil, errDecorate(err, "loadRawSet")
	}
	if coord == nil {
		return nil, cerror(MissingFile, filepath.Join(dir, "coord.raw"), "loadRawSet")
	}
	ener, err := readRaw(filepath.Join(dir, "energy.raw"))
	if err != nil {
		return nil, errDecorate(err, "loadRawSet")
	}
	force, err := readRaw(filepath.Join(dir, "force.raw"))
	if err != nil {
		return nil, errDecorate(err, "loadRawSet")
	}
	vir, err := readRaw(filepath.Join(dir, "virial.raw"))
	if err != nil {
		return nil, errDecorate(err, "loadRawSet")
	}
	F, err := assembleSet(dir, natoms, box, coord, ener, force, vir)
	if err != nil {
		return nil, errDecorate(err, "loadRawSet")
	}
	return F, nil
}

// readRaw reads a whitespace-separated text array. A missing file returns
// nil without error, like condLoad.
func readRaw(name string) ([]float64, error) {
	raw, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, cerror(MissingFile, name+": "+err.Error(), "readRaw")
	}
	fields := strings.Fields(string(raw))
	out := make([]float64, len(fields))
	for i, v := range fields {
		out[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, cerror(WrongShape, fmt.Sprintf("token %q in %s is not a number", v, name), "readRaw")
		}
	}
	return out, nil
}
