//Command deep2nep converts a deepmd training-data directory tree into the
//train.in file of the NEP potential-fitting program. It takes exactly one
//argument, the input directory, and always writes ./nep/train.in, plus an
//energy-per-frame diagnostic plot next to it.
package main

import (
	"log"
	"os"
	"path/filepath"

	deepmd "github.com/nep-tools/deep2nep"
	"github.com/nep-tools/deep2nep/nep"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("deep2nep: ")
	if len(os.Args) != 2 {
		log.Fatal("usage: deep2nep <deepmd-dir>")
	}
	systems, err := deepmd.ReadMulti(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	train, err := nep.FromSystems(systems)
	if err != nil {
		log.Fatal(err)
	}
	outdir := "nep"
	if err := train.Write(outdir); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d frames from %d systems to %s", train.NFrames(), len(systems), filepath.Join(outdir, "train.in"))
	//The conversion already succeeded, a failed plot is only a warning.
	if err := train.PlotEnergies(filepath.Join(outdir, "energy.png")); err != nil {
		log.Printf("could not plot energies: %v", err)
	}
}
