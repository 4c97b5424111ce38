// Package render writes evaluation results for people and scripts.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/gosuri/uitable"
	"github.com/samber/lo"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatTable, FormatJSON, FormatCSV}

// columns is the column order of table and CSV output.
var columns = []string{
	"edf_name", "num_edf", "esc_name", "battery_name",
	"total_weight", "total_thrust", "max_payload", "total_power_capacity",
	"max_current_consumption", "min_fly_time", "hover_power", "hover_time",
}

// Write renders specs to w in the given format.
func Write(w io.Writer, format string, specs []model.CandidateSpec) error {
	switch format {
	case FormatTable:
		return Table(w, specs)
	case FormatJSON:
		return JSON(w, specs)
	case FormatCSV:
		return CSV(w, specs)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// Table writes an aligned table with numbers rounded to two decimals.
func Table(w io.Writer, specs []model.CandidateSpec) error {
	t := uitable.New()
	t.MaxColWidth = 60
	t.Wrap = true

	t.AddRow(lo.ToAnySlice(columns)...)
	for _, s := range specs {
		t.AddRow(lo.ToAnySlice(fields(s))...)
	}

	_, err := fmt.Fprintln(w, t)
	return err
}

// JSON writes specs as an indented array; an empty set is "[]".
func JSON(w io.Writer, specs []model.CandidateSpec) error {
	if specs == nil {
		specs = []model.CandidateSpec{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(specs)
}

// CSV writes a header line and one row per candidate at full precision.
func CSV(w io.Writer, specs []model.CandidateSpec) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, s := range specs {
		if err := cw.Write(exact(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fields(s model.CandidateSpec) []string {
	return row(s, func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) })
}

func exact(s model.CandidateSpec) []string {
	return row(s, func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) })
}

func row(s model.CandidateSpec, num func(float64) string) []string {
	return []string{
		s.EDFName,
		strconv.Itoa(s.NumEDF),
		s.ESCName,
		s.BatteryName,
		num(s.TotalWeight),
		num(s.TotalThrust),
		num(s.MaxPayload),
		num(s.TotalPowerCapacity),
		num(s.MaxCurrentConsumption),
		num(s.MinFlyTime),
		num(s.HoverPower),
		num(s.HoverTime),
	}
}
