package nep

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotEnergies saves a scatter plot of every frame's energy against its
// global index to filename (format from the extension, e.g. .png). A quick
// visual check for outlier frames and for seams between merged systems.
func (T *TrainSet) PlotEnergies(filename string) error {
	pts := make(plotter.XYs, T.NFrames())
	for i, fr := range T.Frames {
		pts[i].X = float64(i)
		pts[i].Y = fr.Energy
	}
	p := plot.New()
	p.Title.Text = "Energy per frame"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Energy"
	p.Add(plotter.NewGrid())
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	s.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(s)
	return p.Save(14*vg.Centimeter, 9*vg.Centimeter, filename)
}
