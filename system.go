/*
 * system.go, part of deep2nep.
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
	"os"
	"path/filepath"
	"strings"
)

// ReadSystem reads one system directory: its topology and all its set.*
// frame blocks, concatenated in lexicographic set order. A system with no
// set.* subdirectories falls back to the raw text layout, and is an error
// when that is missing too. The optional names list is handed to LoadType
// for systems without a type_map.raw.
//
// HasVirial comes out all-true when the concatenated virial sequence covers
// every frame and all-false otherwise; in the latter case any partial virial
// data is discarded, since per-frame coverage is not representable.
func ReadSystem(dir string, names ...string) (*System, error) {
	top, err := LoadType(dir, names...)
	if err != nil {
		return nil, errDecorate(err, "ReadSystem")
	}
	S := new(System)
	S.Topology = top
	S.Name = dir
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, cerror(MissingFile, dir+": "+err.Error(), "ReadSystem")
	}
	var sets []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "set.") {
			sets = append(sets, filepath.Join(dir, e.Name()))
		}
	}
	//os.ReadDir already sorts by name, which fixes the frame order.
	if len(sets) == 0 {
		if _, err := os.Stat(filepath.Join(dir, "box.raw")); err != nil {
			return nil, cerror(NoSets, dir, "ReadSystem")
		}
		F, err := loadRawSet(dir, top.NAtoms())
		if err != nil {
			return nil, errDecorate(err, "ReadSystem")
		}
		S.appendSet(F)
	}
	for _, set := range sets {
		F, err := LoadSet(set, top.NAtoms())
		if err != nil {
			return nil, errDecorate(err, "ReadSystem")
		}
		S.appendSet(F)
	}
	n := S.NFrames()
	S.HasVirial = make([]bool, n)
	if len(S.Virials) == n {
		for i := range S.HasVirial {
			S.HasVirial[i] = true
		}
	} else {
		S.Virials = nil
	}
	if _, err := os.Stat(filepath.Join(dir, "nopbc")); err == nil {
		S.NoPBC = true
	}
	return S, nil
}

// appendSet concatenates one frame block onto the system, skipping the
// optional sequences the block does not carry.
func (S *System) appendSet(F *FrameSet) {
	S.Cells = append(S.Cells, F.Cells...)
	S.Coords = append(S.Coords, F.Coords...)
	S.Energies = append(S.Energies, F.Energies...)
	S.Forces = append(S.Forces, F.Forces...)
	S.Virials = append(S.Virials, F.Virials...)
}

// ReadMulti reads every system directory under dir, in lexicographic order.
// Non-directories are skipped. A dir with no system subdirectories at all is
// an error, there would be nothing to convert.
func ReadMulti(dir string) ([]*System, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, cerror(MissingFile, dir+": "+err.Error(), "ReadMulti")
	}
	var systems []*System
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		S, err := ReadSystem(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, errDecorate(err, "ReadMulti")
		}
		systems = append(systems, S)
	}
	if len(systems) == 0 {
		return nil, cerror(NoSystems, dir, "ReadMulti")
	}
	return systems, nil
}
