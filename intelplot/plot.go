package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/aclements/go-intel/study"
)

// renderAll renders the chart set to dir. Chart dimensions are per
// recipe; faceted charts scale with the number of panels.
func renderAll(dir string, base, long, summary *table.Table, scores []string) error {
	nspeakers := len(table.GroupBy(base, study.ColSpeaker).Tables())
	charts := []struct {
		name          string
		width, height int
		plot          *gg.Plot
	}{
		{"intelligibility-hist", 600, 400, histPlot(base)},
		{"intelligibility-density", 600, 400, densityPlot(base)},
		{"speaker-ridges", 600, 200 * nspeakers, ridgePlot(base)},
		{"score-scatter", 600, 450, scatterPlot(base, scores[0])},
		{"score-facets", 300 * len(scores), 400, facetPlot(long)},
		{"phase-lines", 600, 450, phaseLinesPlot(base, summary)},
	}
	for _, c := range charts {
		if err := savePlot(filepath.Join(dir, c.name+".svg"), c.plot, c.width, c.height); err != nil {
			return err
		}
	}
	return nil
}

// savePlot renders p to path with the same write-then-rename
// discipline as tableio.WriteCSV, so a failed render leaves no
// partial chart behind.
func savePlot(path string, p *gg.Plot, width, height int) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	name := f.Name()
	if err := p.WriteSVG(f, width, height); err != nil {
		f.Close()
		os.Remove(name)
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}

// histPlot is a histogram of all intelligibility scores.
func histPlot(t *table.Table) *gg.Plot {
	p := gg.NewPlot(t)
	p.Stat(binStat{study.ColIntel, 10})
	p.SetScale("y", gg.NewLinearScaler().Include(0))
	p.Add(gg.LayerSteps{
		LayerPaths: gg.LayerPaths{X: study.ColIntel, Y: "count"},
		Step:       gg.StepHMid,
	})
	p.Add(gg.Title("Intelligibility scores"))
	return p
}

// densityPlot overlays intelligibility density estimates for the two
// phases.
func densityPlot(t *table.Table) *gg.Plot {
	p := gg.NewPlot(t)
	p.GroupBy(study.ColPhase)
	p.Stat(ggstat.Density{X: study.ColIntel})
	p.SetScale("stroke", gg.NewOrdinalScale())
	p.SetScale("y", gg.NewLinearScaler().Include(0))
	p.Add(gg.LayerPaths{X: study.ColIntel, Y: "probability density", Color: study.ColPhase})
	p.Add(gg.Title("Intelligibility by phase"))
	return p
}

// ridgePlot stacks per-speaker intelligibility densities in facet
// rows, ridgeline style.
func ridgePlot(t *table.Table) *gg.Plot {
	p := gg.NewPlot(t)
	p.GroupBy(study.ColSpeaker)
	p.Stat(ggstat.Density{X: study.ColIntel})
	p.SetScale("y", gg.NewLinearScaler().Include(0))
	p.Add(gg.FacetY{Col: study.ColSpeaker})
	p.Add(gg.LayerPaths{X: study.ColIntel, Y: "probability density"})
	p.Add(gg.Title("Intelligibility by speaker"))
	return p
}

// scatterPlot plots posttest intelligibility against one cognitive
// test score with a least squares fit overlaid.
func scatterPlot(t *table.Table, score string) *gg.Plot {
	g := table.FilterEq(t, study.ColPhase, study.Posttest)
	g = dropNaN(g, score, study.ColIntel)
	p := gg.NewPlot(table.Flatten(g))
	p.Save()
	p.Stat(ggstat.LeastSquares{X: score, Y: study.ColIntel})
	p.Add(gg.LayerPaths{X: score, Y: study.ColIntel})
	p.Restore()
	p.Add(gg.LayerPoints{X: score, Y: study.ColIntel})
	p.Add(gg.Title("Posttest intelligibility vs. " + score))
	return p
}

// facetPlot draws intelligibility against every cognitive test score
// in side-by-side panels from the long table, with a LOESS smooth
// per panel.
func facetPlot(t *table.Table) *gg.Plot {
	g := dropNaN(t, "score", study.ColIntel)
	p := gg.NewPlot(g)
	p.Add(gg.FacetX{Col: "test", SplitXScales: true})
	p.Save()
	p.Stat(ggstat.LOESS{X: "score", Y: study.ColIntel})
	p.Add(gg.LayerPaths{X: "score", Y: study.ColIntel})
	p.Restore()
	p.SetScale("stroke", gg.NewOrdinalScale())
	p.Add(gg.LayerPoints{X: "score", Y: study.ColIntel, Color: study.ColPhase})
	p.Add(gg.Title("Intelligibility vs. cognitive test scores"))
	return p
}

// phaseLinesPlot connects each subject's pretest and posttest
// intelligibility and overlays the per-speaker phase means from the
// summary table.
func phaseLinesPlot(base, summary *table.Table) *gg.Plot {
	p := gg.NewPlot(base)
	p.SetScale("x", gg.NewOrdinalScale())
	p.SetScale("stroke", gg.NewOrdinalScale())
	p.GroupBy(study.ColSubject)
	p.Add(gg.LayerLines{X: study.ColPhase, Y: study.ColIntel})
	p.SetData(summary)
	p.Add(gg.LayerPoints{
		X:     study.ColPhase,
		Y:     "mean " + study.ColIntel,
		Color: study.ColSpeaker,
	})
	p.Add(gg.Title("Intelligibility change by phase"))
	return p
}

// binStat counts a column's values in equal-width bins. ggstat.Bin
// is unimplemented at this go-gg revision, so the histogram recipe
// carries its own bin stat.
type binStat struct {
	X    string
	Bins int
}

func (b binStat) F(g table.Grouping) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		var xs []float64
		slice.Convert(&xs, t.MustColumn(b.X))
		var vals []float64
		for _, x := range xs {
			if !math.IsNaN(x) {
				vals = append(vals, x)
			}
		}
		centers := make([]float64, b.Bins)
		counts := make([]float64, b.Bins)
		if len(vals) > 0 {
			lo, hi := stats.Bounds(vals)
			w := (hi - lo) / float64(b.Bins)
			for i := range centers {
				centers[i] = lo + w*(float64(i)+0.5)
			}
			for _, x := range vals {
				i := b.Bins - 1
				if w > 0 {
					i = int((x - lo) / w)
					if i >= b.Bins {
						i = b.Bins - 1
					}
				}
				counts[i]++
			}
		}
		return new(table.Builder).Add(b.X, centers).Add("count", counts).Done()
	})
}

// dropNaN filters out rows with a NaN in any of cols.
func dropNaN(g table.Grouping, cols ...string) table.Grouping {
	for _, col := range cols {
		g = table.Filter(g, func(x float64) bool {
			return !math.IsNaN(x)
		}, col)
	}
	return g
}
