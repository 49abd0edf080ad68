/*
 * topology.go, part of deep2nep.
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
)

// LoadType reads the topology of the system stored in dir: the per-atom type
// indices from type.raw and the type names from type_map.raw. If type_map.raw
// is absent the optional names argument is used instead, and if that is empty
// too, artificial names Type_0, Type_1... are made up. It is an error for the
// resolved name list to be shorter than the number of type slots.
func LoadType(dir string, names ...string) (*Topology, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "type.raw"))
	if err != nil {
		return nil, cerror(MissingFile, filepath.Join(dir, "type.raw"), "LoadType")
	}
	fields := strings.Fields(string(raw))
	if len(fields) == 0 {
		return nil, cerror(BadTypeRaw, "no atoms in "+dir, "LoadType")
	}
	T := new(Topology)
	T.AtomTypes = make([]int, len(fields))
	ntypes := 0
	for i, v := range fields {
		t, err := strconv.Atoi(v)
		if err != nil || t < 0 {
			return nil, cerror(BadTypeRaw, fmt.Sprintf("token %q in %s", v, dir), "LoadType")
		}
		T.AtomTypes[i] = t
		if t+1 > ntypes {
			ntypes = t + 1
		}
	}
	T.AtomNumbs = make([]int, ntypes)
	for _, t := range T.AtomTypes {
		T.AtomNumbs[t]++
	}
	var tmap []string
	if raw, err := os.ReadFile(filepath.Join(dir, "type_map.raw")); err == nil {
		tmap = strings.Fields(string(raw))
	} else if len(names) > 0 {
		tmap = names
	} else {
		tmap = make([]string, ntypes)
		for i := range tmap {
			tmap[i] = fmt.Sprintf("Type_%d", i)
		}
	}
	if len(tmap) < len(T.AtomNumbs) {
		return nil, cerror(ShortTypeMap, fmt.Sprintf("%d names for %d types in %s", len(tmap), ntypes, dir), "LoadType")
	}
	T.AtomNames = tmap[:len(T.AtomNumbs)]
	return T, nil
}
