// Package excel writes one row per trace (name, status, deltas, thresholds,
// p-value) to an .xlsx workbook via --xlsx-report. Writing is one-shot and
// stateless: the core never reads this format back.
//
// Grounded on adapters/excel/reader.go's excelize.OpenFile/GetRows read
// path, inverted here into the write path (excelize.NewFile/SetCellValue/
// SaveAs) for the same library.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gatekeeper/domain/verdict"
	"gatekeeper/internal/errors"
)

const sheetName = "Results"

var columns = []string{
	"Name", "Status", "Reason",
	"BaselineMedianMs", "TargetMedianMs", "MedianDeltaMs", "MedianThresholdMs",
	"BaselineTailMs", "TargetTailMs", "TailDeltaMs", "TailThresholdMs",
	"MannWhitneyP", "ProbTargetGtBaseline",
	"BootstrapCILowMs", "BootstrapCIHighMs",
}

// WriteWorkbook writes results to path, one row per trace in the order given.
func WriteWorkbook(path string, results []verdict.GateResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return errors.Wrap(errors.InternalError("renaming report sheet"), err.Error())
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}

	for row, res := range results {
		r := row + 2
		values := []any{
			res.Name, string(res.Status), res.Reason,
			floatDetail(res.Details, "baseline_median_ms"),
			floatDetail(res.Details, "target_median_ms"),
			floatDetail(res.Details, "median_delta_ms"),
			floatDetail(res.Details, "median_threshold_ms"),
			floatDetail(res.Details, "baseline_tail_ms"),
			floatDetail(res.Details, "target_tail_ms"),
			floatDetail(res.Details, "tail_delta_ms"),
			floatDetail(res.Details, "tail_threshold_ms"),
			floatDetail(res.Details, "mann_whitney_p"),
			floatDetail(res.Details, "prob_target_gt_baseline"),
			floatDetail(res.Details, "bootstrap_ci_low_ms"),
			floatDetail(res.Details, "bootstrap_ci_high_ms"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(errors.InternalError(fmt.Sprintf("saving workbook %s", path)), err.Error())
	}
	return nil
}

func floatDetail(details map[string]any, key string) float64 {
	v, ok := details[key].(float64)
	if !ok {
		return 0
	}
	return v
}
