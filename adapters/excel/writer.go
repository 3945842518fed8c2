package excel

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"fiscalsim/domain/fiscal"
	"fiscalsim/internal/errors"
	"fiscalsim/internal/sim"
)

// ReportWriter exports projection results to an Excel workbook. It consumes
// only the flat-map contract of the breakdown types, so caller-defined
// allocation buckets and revenue sources appear as ordinary columns.
type ReportWriter struct{}

// NewReportWriter creates a workbook writer
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// Write renders the projection (and, when non-nil, the Monte Carlo bands)
// into an .xlsx file at path
func (w *ReportWriter) Write(path string, projection *fiscal.ProjectionResult, mc *sim.MonteCarloResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeProjectionSheet(f, projection); err != nil {
		return errors.ExportError("failed to write projection sheet", err)
	}
	if err := w.writeWarningsSheet(f, projection); err != nil {
		return errors.ExportError("failed to write warnings sheet", err)
	}
	if mc != nil {
		if err := w.writeMonteCarloSheet(f, mc); err != nil {
			return errors.ExportError("failed to write monte carlo sheet", err)
		}
	}

	f.DeleteSheet("Sheet1")
	if err := f.SaveAs(path); err != nil {
		return errors.ExportError(fmt.Sprintf("failed to save workbook %s", path), err)
	}
	return nil
}

// columnOrder produces a stable column ordering across all years: union of
// every year's flattened keys, sorted, with year first.
func columnOrder(projection *fiscal.ProjectionResult) []string {
	seen := map[string]bool{}
	for _, y := range projection.Years {
		for k := range y.ToMap() {
			seen[k] = true
		}
	}
	delete(seen, "year")
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return append([]string{"year"}, keys...)
}

func (w *ReportWriter) writeProjectionSheet(f *excelize.File, projection *fiscal.ProjectionResult) error {
	const sheet = "Projection"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	cols := columnOrder(projection)
	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	for rowIdx, y := range projection.Years {
		flat := y.ToMap()
		for colIdx, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, flat[col]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *ReportWriter) writeWarningsSheet(f *excelize.File, projection *fiscal.ProjectionResult) error {
	const sheet = "Warnings"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"year", "severity", "code", "context", "message"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	row := 2
	for _, y := range projection.Years {
		for _, warn := range y.Warnings {
			values := []interface{}{int(warn.Year), string(warn.Severity), string(warn.Code), warn.Context, warn.Message}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
			}
			row++
		}
	}
	return nil
}

func (w *ReportWriter) writeMonteCarloSheet(f *excelize.File, mc *sim.MonteCarloResult) error {
	const sheet = "MonteCarlo"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"year", "surplus_p10", "surplus_p50", "surplus_p90", "revenue_mean", "spending_mean", "gdp_mean", "breaker_rate"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for rowIdx, band := range mc.Years {
		values := []interface{}{
			int(band.Year), band.SurplusP10, band.SurplusP50, band.SurplusP90,
			band.RevenueMean, band.SpendingMean, band.GDPMean, band.BreakerRate,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
