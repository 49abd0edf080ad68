package nep

import (
	"fmt"
	"io"
)

// Check writes a one-line-per-frame summary of the collection to w, for
// eyeballing a merge before fitting against it: global index, origin system,
// atom count, virial availability, energy and cell volume.
func (T *TrainSet) Check(w io.Writer) {
	fmt.Fprintf(w, "Nframes: %d\n", T.NFrames())
	for i, fr := range T.Frames {
		fmt.Fprintf(w, "%d %s atoms %d virial %d energy %s volume %s\n",
			i, fr.System, fr.NAtoms, b2i(fr.HasVirial), ftoa(fr.Energy), ftoa(fr.Volume))
	}
}
