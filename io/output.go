/*package io reads run configuration and writes the artifacts a run
produces: whitespace field tables, xlsx workbooks, and DXF winding
drawings.
*/
package io

import (
	"fmt"
	"os"

	"github.com/phil-mansfield/table"
	"github.com/xuri/excelize/v2"

	"github.com/magsim/helmgo/sim"
)

// WriteFieldTable writes the table as whitespace separated columns with
// a commented header line. The format round-trips through ReadFieldTable.
func WriteFieldTable(fname string, t *sim.Table) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, "# X Y Z Bx By Bz"); err != nil {
		return err
	}
	for i := range t.Samples {
		s := &t.Samples[i]
		_, err := fmt.Fprintf(
			f, "%.10g %.10g %.10g %.10g %.10g %.10g\n",
			s.X, s.Y, s.Z, s.Bx, s.By, s.Bz,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadFieldTable reads a table written by WriteFieldTable, or any other
// whitespace table whose first six columns are X, Y, Z, Bx, By, Bz.
func ReadFieldTable(fname string) (*sim.Table, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3, 4, 5}, nil)
	if err != nil {
		return nil, err
	}

	xs, ys, zs := cols[0], cols[1], cols[2]
	bxs, bys, bzs := cols[3], cols[4], cols[5]

	t := &sim.Table{Samples: make([]sim.Sample, len(xs))}
	for i := range xs {
		t.Samples[i] = sim.Sample{
			X: xs[i], Y: ys[i], Z: zs[i],
			Bx: bxs[i], By: bys[i], Bz: bzs[i],
		}
	}
	return t, nil
}

// GenerationStat is one row of an optimizer run's progress log.
type GenerationStat struct {
	Generation int
	Best, Mean float64
}

// WriteFieldXLSX writes the table to an xlsx workbook with a single
// Field sheet holding the sampled points and an extra |B| column.
func WriteFieldXLSX(fname string, t *sim.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Field"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := writeFieldSheet(f, sheet, t); err != nil {
		return err
	}
	return f.SaveAs(fname)
}

// WriteOptimizeXLSX writes an optimizer run's per-generation statistics,
// and optionally the best individual's field profile, to an xlsx
// workbook.
func WriteOptimizeXLSX(
	fname string, stats []GenerationStat, best *sim.Table,
) error {
	f := excelize.NewFile()
	defer f.Close()

	const genSheet = "Generations"
	if err := f.SetSheetName("Sheet1", genSheet); err != nil {
		return err
	}

	header := []string{"Generation", "Best", "Mean"}
	for c, name := range header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(genSheet, cell, name); err != nil {
			return err
		}
	}
	for r, st := range stats {
		vals := []interface{}{st.Generation, st.Best, st.Mean}
		for c, v := range vals {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(genSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if best != nil {
		const fieldSheet = "Field"
		if _, err := f.NewSheet(fieldSheet); err != nil {
			return err
		}
		if err := writeFieldSheet(f, fieldSheet, best); err != nil {
			return err
		}
	}

	return f.SaveAs(fname)
}

func writeFieldSheet(f *excelize.File, sheet string, t *sim.Table) error {
	header := []string{"X", "Y", "Z", "Bx", "By", "Bz", "|B|"}
	for c, name := range header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for r := range t.Samples {
		s := &t.Samples[r]
		vals := []float64{s.X, s.Y, s.Z, s.Bx, s.By, s.Bz, s.B()}
		for c, v := range vals {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
