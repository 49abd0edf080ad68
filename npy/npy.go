//Package npy decodes NumPy .npy array files, as much of the format as the
//deepmd layout uses: versions 1.0 and 2.0, C order, little-endian, numeric
//dtypes. Every array widens to float64 on read. Files with a .gz suffix are
//read through gzip transparently.
//
//The format is a fixed magic, a version pair, a header length, a
//python-literal header dict giving dtype, memory order and shape, then the
//raw elements.
package npy

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const magic = "\x93NUMPY"

// Array is a decoded .npy file: the declared shape and the elements, C
// order, widened to float64.
type Array struct {
	Shape []int
	Data  []float64
}

// Len returns the element count, the product of the shape. An empty shape is
// a NumPy scalar, one element.
func (A *Array) Len() int {
	n := 1
	for _, s := range A.Shape {
		n *= s
	}
	return n
}

// Read decodes the .npy file name. If name ends in .gz the contents are
// decompressed on the fly.
func Read(name string) (*Array, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Read"}}
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(name, ".gz") {
		g, err := gzip.NewReader(f)
		if err != nil {
			return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Read"}}
		}
		defer g.Close()
		r = g
	}
	A, err := decode(r, name)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	return A, nil
}

// Decode decodes a .npy stream.
func Decode(r io.Reader) (*Array, error) {
	A, err := decode(r, "")
	if err != nil {
		return nil, errDecorate(err, "Decode")
	}
	return A, nil
}

func decode(r io.Reader, name string) (*Array, error) {
	head := make([]byte, 8)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, Error{Truncated + ": " + err.Error(), name, []string{"decode"}}
	}
	if string(head[:6]) != magic {
		return nil, Error{WrongMagic, name, []string{"decode"}}
	}
	var hlen int
	switch head[6] {
	case 1:
		var l uint16
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, Error{Truncated + ": " + err.Error(), name, []string{"decode"}}
		}
		hlen = int(l)
	case 2:
		var l uint32
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, Error{Truncated + ": " + err.Error(), name, []string{"decode"}}
		}
		hlen = int(l)
	default:
		return nil, Error{fmt.Sprintf("%s: %d.%d", WrongVersion, head[6], head[7]), name, []string{"decode"}}
	}
	hdr := make([]byte, hlen)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, Error{Truncated + ": " + err.Error(), name, []string{"decode"}}
	}
	descr, fortran, shape, err := parseHeader(string(hdr))
	if err != nil {
		return nil, errDecorate(err, "decode")
	}
	if fortran {
		return nil, Error{FortranOrder, name, []string{"decode"}}
	}
	esize, isFloat, err := dtype(descr)
	if err != nil {
		return nil, errDecorate(err, "decode")
	}
	n := 1
	for _, s := range shape {
		if s < 0 {
			return nil, Error{fmt.Sprintf("%s: negative dimension %d", WrongHeader, s), name, []string{"decode"}}
		}
		n *= s
	}
	payload := make([]byte, n*esize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, Error{Truncated + ": " + err.Error(), name, []string{"decode"}}
	}
	if _, err := io.ReadFull(r, make([]byte, 1)); err != io.EOF {
		return nil, Error{TrailingData, name, []string{"decode"}}
	}
	A := &Array{Shape: shape, Data: make([]float64, n)}
	for i := 0; i < n; i++ {
		word := payload[i*esize : (i+1)*esize]
		switch {
		case isFloat && esize == 8:
			A.Data[i] = math.Float64frombits(binary.LittleEndian.Uint64(word))
		case isFloat && esize == 4:
			A.Data[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(word)))
		case esize == 8:
			A.Data[i] = float64(int64(binary.LittleEndian.Uint64(word)))
		default:
			A.Data[i] = float64(int32(binary.LittleEndian.Uint32(word)))
		}
	}
	return A, nil
}

// dtype maps a descr string to element size and float-ness.
func dtype(descr string) (int, bool, error) {
	switch descr {
	case "<f8":
		return 8, true, nil
	case "<f4":
		return 4, true, nil
	case "<i8":
		return 8, false, nil
	case "<i4":
		return 4, false, nil
	}
	return 0, false, Error{WrongDType + ": " + descr, "", []string{"dtype"}}
}

// parseHeader picks descr, fortran_order and shape out of the header dict,
// which is a python literal like
// {'descr': '<f8', 'fortran_order': False, 'shape': (3, 9), }
func parseHeader(h string) (descr string, fortran bool, shape []int, err error) {
	descr, err = quoted(h, "'descr':")
	if err != nil {
		return "", false, nil, err
	}
	fortran = strings.Contains(h, "'fortran_order': True")
	open := strings.Index(h, "(")
	end := strings.Index(h, ")")
	if open < 0 || end < open {
		return "", false, nil, Error{WrongHeader + ": no shape tuple", "", []string{"parseHeader"}}
	}
	for _, tok := range strings.Split(h[open+1:end], ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue //trailing comma of a 1-tuple
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return "", false, nil, Error{fmt.Sprintf("%s: shape element %q", WrongHeader, tok), "", []string{"parseHeader"}}
		}
		shape = append(shape, v)
	}
	return descr, fortran, shape, nil
}

// quoted returns the single-quoted value following key in h.
func quoted(h, key string) (string, error) {
	i := strings.Index(h, key)
	if i < 0 {
		return "", Error{fmt.Sprintf("%s: missing %s", WrongHeader, key), "", []string{"quoted"}}
	}
	rest := h[i+len(key):]
	a := strings.Index(rest, "'")
	if a < 0 {
		return "", Error{fmt.Sprintf("%s: unquoted %s", WrongHeader, key), "", []string{"quoted"}}
	}
	b := strings.Index(rest[a+1:], "'")
	if b < 0 {
		return "", Error{fmt.Sprintf("%s: unquoted %s", WrongHeader, key), "", []string{"quoted"}}
	}
	return rest[a+1 : a+1+b], nil
}

//Errors

// errDecorate adds the caller's name to an Error before passing it up. It
// panics on any other error type.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

// Error is the error type for npy decoding problems.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none
	deco     []string
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("npy error: %s", err.message)
	}
	return fmt.Sprintf("npy file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	//Not a pointer receiver, but deco is a slice, hence a pointer itself,
	//so the append is visible through the copy.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file the failing array was read from.
func (err Error) FileName() string { return err.filename }

const (
	UnableToOpen = "Unable to open file"
	WrongMagic   = "Not an NPY file"
	WrongVersion = "Unsupported NPY version"
	WrongHeader  = "Malformed NPY header"
	WrongDType   = "Unsupported dtype"
	FortranOrder = "Fortran-ordered arrays not supported"
	Truncated    = "File shorter than its header promises"
	TrailingData = "File longer than its header promises"
)
