/*
 * errors.go, part of deep2nep.
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

import "fmt"

// Error is the interface for errors that all packages in this module implement.
// The Decorate method allows to add and retrieve info from the error, without
// changing its type or wrapping it around something else. Each call returns the
// current decoration slice; an empty string only retrieves, it is not appended.
// The slice should contain the functions in the calling stack, each optionally
// followed by extra info in the format "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the concrete error type of the deepmd package. It fulfills Error.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds new information to the error.
func (err CError) Decorate(deco string) []string {
	//Not a pointer receiver, but deco is a slice, hence a pointer itself,
	//so the append is visible through the copy.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Message constants for the errors of this package. Errors built from them
// carry additional context (the offending path or sizes) after the constant.
const (
	MissingFile  = "deepmd: missing mandatory file"
	WrongShape   = "deepmd: array size incompatible with expected shape"
	ShortTypeMap = "deepmd: fewer type names than atom types"
	BadTypeRaw   = "deepmd: malformed type.raw"
	NoSets       = "deepmd: system has neither set.* directories nor raw files"
	NoSystems    = "deepmd: no system directories found"
)

// errDecorate asserts that err implements Error and decorates it with the
// caller's name before returning it. Calling it on any other error panics.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

// cerror builds a CError from a message constant, free-form detail and the
// creating function's name.
func cerror(msg, detail, caller string) CError {
	return CError{fmt.Sprintf("%s: %s", msg, detail), []string{caller}}
}
