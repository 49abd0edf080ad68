/*
 * doc.go, part of deep2nep.
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

/*Package deepmd reads atomistic training data stored in the deepmd directory
layout: one directory per system, each with a type.raw atom-type assignment,
an optional type_map.raw name vocabulary, and one or more set.* subdirectories
holding the per-frame arrays (box, coord, energy, force, virial) as NumPy
.npy files. Systems stored in the older raw text layout (box.raw and friends
at the system level) are read too.


	**Capabilities**

    Reads the atom-type assignment and type-name vocabulary of a system.

    Reads set.* frame blocks, with explicit size checks before any reshape.

    Concatenates all frame blocks of a system, in lexicographic set order,
	into a single frame sequence, and derives the per-frame virial
	availability.

    Reads every system under a parent directory, in lexicographic order.

    Transparently reads gzip-compressed array files (box.npy.gz and so on).

The sibling package nep merges the systems read here into one global frame
collection and writes it in the train.in format of the NEP potential-fitting
program. The command deep2nep glues both together.

All coordinate, force, cell and virial blocks are gonum mat.Dense matrices,
with frames stored as slices of per-frame matrices.*/
package deepmd
