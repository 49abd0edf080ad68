package nep

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Write serializes the collection as dir/train.in, creating dir if needed.
// The layout is the global frame count, one "natoms has_virial" line per
// frame, then per frame: the energy line (virial components appended when
// the frame has them), the flattened cell, and one line per atom with the
// 1-based type index, position and force. The file is written to a temporary
// name and renamed into place, so a failed run never leaves a partial
// train.in behind.
func (T *TrainSet) Write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Error{WriteFailed + ": " + err.Error(), []string{"Write"}}
	}
	tmp, err := os.CreateTemp(dir, "train.in.tmp*")
	if err != nil {
		return Error{WriteFailed + ": " + err.Error(), []string{"Write"}}
	}
	err = T.serialize(tmp)
	if err2 := tmp.Close(); err == nil {
		err = err2
	}
	if err == nil {
		err = os.Rename(tmp.Name(), filepath.Join(dir, "train.in"))
	}
	if err != nil {
		os.Remove(tmp.Name())
		return Error{WriteFailed + ": " + err.Error(), []string{"Write"}}
	}
	return nil
}

func (T *TrainSet) serialize(f *os.File) error {
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d\n", T.NFrames())
	for _, fr := range T.Frames {
		fmt.Fprintf(w, "%d %d\n", fr.NAtoms, b2i(fr.HasVirial))
	}
	for _, fr := range T.Frames {
		w.WriteString(ftoa(fr.Energy))
		if fr.HasVirial {
			for _, v := range fr.Virial {
				w.WriteString(" " + ftoa(v))
			}
		}
		w.WriteByte('\n')
		for i, v := range fr.Cell {
			if i > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(ftoa(v))
		}
		w.WriteByte('\n')
		for i := 0; i < fr.NAtoms; i++ {
			fmt.Fprintf(w, "%d %s %s %s %s %s %s\n", fr.Types[i]+1,
				ftoa(fr.Coords.At(i, 0)), ftoa(fr.Coords.At(i, 1)), ftoa(fr.Coords.At(i, 2)),
				ftoa(fr.Forces.At(i, 0)), ftoa(fr.Forces.At(i, 1)), ftoa(fr.Forces.At(i, 2)))
		}
	}
	return w.Flush()
}

// ftoa is the one float rendering of the whole output file: shortest text
// that round-trips back to the same float64.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
