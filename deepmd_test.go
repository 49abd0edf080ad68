/*
 * deepmd_test.go, part of deep2nep.
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
	"testing"
)

//The fixtures under test/ mirror the two-system layout this tool is fed in
//practice: init.000 has two set.* blocks with virials, init.001 one block
//without, stored as float32, plus a nopbc marker and no type_map.raw.

func TestLoadType(Te *testing.T) {
	top, err := LoadType("test/deepmd/init.000")
	if err != nil {
		Te.Fatal(err)
	}
	if top.NAtoms() != 3 || top.NTypes() != 2 {
		Te.Error("wrong counts", top.NAtoms(), top.NTypes())
	}
	for i, want := range []int{0, 1, 1} {
		if top.AtomTypes[i] != want {
			Te.Error("wrong type for atom", i)
		}
	}
	if top.AtomNumbs[0] != 1 || top.AtomNumbs[1] != 2 {
		Te.Error("wrong per-type counts", top.AtomNumbs)
	}
	if top.AtomNames[0] != "O" || top.AtomNames[1] != "H" {
		Te.Error("type_map.raw not honored", top.AtomNames)
	}
	sum := 0
	for _, n := range top.AtomNumbs {
		sum += n
	}
	if sum != len(top.AtomTypes) {
		Te.Error("per-type counts do not add up to the atom count")
	}
}

func TestLoadTypeFallbackNames(Te *testing.T) {
	//init.001 has no type_map.raw
	top, err := LoadType("test/deepmd/init.001")
	if err != nil {
		Te.Fatal(err)
	}
	if len(top.AtomNames) != 1 || top.AtomNames[0] != "Type_0" {
		Te.Error("wrong synthesized names", top.AtomNames)
	}
	top, err = LoadType("test/deepmd/init.001", "Cu")
	if err != nil {
		Te.Fatal(err)
	}
	if top.AtomNames[0] != "Cu" {
		Te.Error("caller-supplied names not honored", top.AtomNames)
	}
}

func TestLoadTypeShortMap(Te *testing.T) {
	dir := Te.TempDir()
	os.WriteFile(filepath.Join(dir, "type.raw"), []byte("0 1 2\n"), 0644)
	os.WriteFile(filepath.Join(dir, "type_map.raw"), []byte("O H\n"), 0644)
	_, err := LoadType(dir)
	if err == nil || !strings.Contains(err.Error(), ShortTypeMap) {
		Te.Error("short type map not caught:", err)
	}
	//a caller-supplied list that is too short must fail the same way
	os.Remove(filepath.Join(dir, "type_map.raw"))
	_, err = LoadType(dir, "O", "H")
	if err == nil || !strings.Contains(err.Error(), ShortTypeMap) {
		Te.Error("short caller name list not caught:", err)
	}
}

func TestLoadSet(Te *testing.T) {
	F, err := LoadSet("test/deepmd/init.000/set.000", 3)
	if err != nil {
		Te.Fatal(err)
	}
	if F.NFrames() != 2 {
		Te.Fatal("wrong frame count", F.NFrames())
	}
	if F.Energies[0] != -10.5 || F.Energies[1] != -10.25 {
		Te.Error("wrong energies", F.Energies)
	}
	if F.Cells[1].At(2, 2) != 12 {
		Te.Error("wrong cell element", F.Cells[1].At(2, 2))
	}
	if F.Coords[1].At(0, 0) != 0.1 || F.Coords[0].At(1, 1) != 0.7 {
		Te.Error("coordinates not cut into frames correctly")
	}
	if r, c := F.Coords[0].Dims(); r != 3 || c != 3 {
		Te.Error("wrong coordinate block size")
	}
	if len(F.Virials) != 2 || F.Virials[1].At(0, 0) != 4 {
		Te.Error("virials not loaded")
	}
	if F.Forces[0].At(0, 1) != 0.01 {
		Te.Error("forces not loaded")
	}
}

func TestLoadSetWrongNAtoms(Te *testing.T) {
	_, err := LoadSet("test/deepmd/init.000/set.000", 4)
	if err == nil || !strings.Contains(err.Error(), WrongShape) {
		Te.Error("coordinate size mismatch not caught:", err)
	}
}

func TestReadSystem(Te *testing.T) {
	S, err := ReadSystem("test/deepmd/init.000")
	if err != nil {
		Te.Fatal(err)
	}
	if S.NFrames() != 3 {
		Te.Fatal("set.000 and set.001 not concatenated, frames:", S.NFrames())
	}
	//set.001 sorts after set.000, so its single frame comes last
	if S.Energies[2] != -9.75 {
		Te.Error("set order wrong", S.Energies)
	}
	for i, hv := range S.HasVirial {
		if !hv {
			Te.Error("frame", i, "should have a virial")
		}
	}
	if S.Virials[2].At(1, 1) != 8 {
		Te.Error("wrong virial in the concatenated sequence")
	}
	if S.NoPBC {
		Te.Error("no nopbc marker in init.000")
	}
}

func TestReadSystemNoVirial(Te *testing.T) {
	S, err := ReadSystem("test/deepmd/init.001")
	if err != nil {
		Te.Fatal(err)
	}
	if S.NFrames() != 2 {
		Te.Fatal("wrong frame count", S.NFrames())
	}
	for _, hv := range S.HasVirial {
		if hv {
			Te.Error("system without virial data marked as having it")
		}
	}
	if S.Virials != nil {
		Te.Error("virials should be nil")
	}
	//the float32 fixtures must widen exactly
	if S.Energies[1] != -3.25 || S.Cells[0].At(1, 1) != 6 {
		Te.Error("float32 arrays not widened correctly")
	}
	if !S.NoPBC {
		Te.Error("nopbc marker not picked up")
	}
}

func TestReadSystemGz(Te *testing.T) {
	S, err := ReadSystem("test/deepmd_gz/mol")
	if err != nil {
		Te.Fatal(err)
	}
	if S.NFrames() != 1 || S.Energies[0] != -1.25 {
		Te.Error("gzipped arrays not read", S.NFrames())
	}
	if S.Forces[0].At(0, 2) != 0.125 {
		Te.Error("wrong force from gzipped file")
	}
}

func TestReadSystemRaw(Te *testing.T) {
	S, err := ReadSystem("test/deepmd_raw/mol")
	if err != nil {
		Te.Fatal(err)
	}
	if S.NFrames() != 2 {
		Te.Fatal("raw text system not read, frames:", S.NFrames())
	}
	if S.AtomNames[0] != "Si" || S.AtomNames[1] != "C" {
		Te.Error("wrong names", S.AtomNames)
	}
	if S.Energies[0] != -7.5 || S.Energies[1] != -7.25 {
		Te.Error("wrong energies", S.Energies)
	}
	if !S.HasVirial[0] || S.Virials[1].At(0, 0) != 2 {
		Te.Error("virial.raw not read")
	}
	if S.Coords[1].At(0, 2) != 0.1 || S.Forces[1].At(1, 0) != -0.2 {
		Te.Error("raw frames not cut correctly")
	}
}

func TestReadSystemEmpty(Te *testing.T) {
	dir := Te.TempDir()
	os.WriteFile(filepath.Join(dir, "type.raw"), []byte("0\n"), 0644)
	_, err := ReadSystem(dir)
	if err == nil || !strings.Contains(err.Error(), NoSets) {
		Te.Error("system without data not caught:", err)
	}
}

func TestReadMulti(Te *testing.T) {
	systems, err := ReadMulti("test/deepmd")
	if err != nil {
		Te.Fatal(err)
	}
	if len(systems) != 2 {
		Te.Fatal("wrong system count", len(systems))
	}
	//lexicographic order at the system level too
	if !strings.HasSuffix(systems[0].Name, "init.000") || !strings.HasSuffix(systems[1].Name, "init.001") {
		Te.Error("systems out of order:", systems[0].Name, systems[1].Name)
	}
	if systems[0].NFrames()+systems[1].NFrames() != 5 {
		Te.Error("wrong total frame count")
	}
}

func TestReadMultiEmpty(Te *testing.T) {
	_, err := ReadMulti(Te.TempDir())
	if err == nil || !strings.Contains(err.Error(), NoSystems) {
		Te.Error("empty input directory not caught:", err)
	}
}
