package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// RowError locates a decode or validation failure in a catalog file.
// Row is the 1-based line number; 0 means the header.
type RowError struct {
	File string
	Row  int
	Err  error
}

func (e *RowError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s row %d: %v", e.File, e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report column names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
	return v
}

// numberHook parses spreadsheet style numbers: surrounding blanks and
// thousands separators are dropped, and integer columns reject fractions.
func numberHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}

	s := strings.ReplaceAll(strings.TrimSpace(data.(string)), ",", "")
	switch to.Kind() {
	case reflect.Float32, reflect.Float64:
		return parseNumber(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, err := parseNumber(s)
		if err != nil {
			return nil, err
		}
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%q is not a whole number", data)
		}
		return int64(f), nil
	case reflect.String:
		return strings.TrimSpace(data.(string)), nil
	}
	return data, nil
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("missing value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}

// decodeFile reads a CSV file whose first line names the columns and decodes
// every following line into one R.
func decodeFile[R any](r io.Reader, file string, sc schema) ([]R, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &RowError{File: file, Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, &RowError{File: file, Err: err}
	}
	columns := normalizeHeader(header, sc)
	if err := checkColumns(columns, sc); err != nil {
		return nil, &RowError{File: file, Err: err}
	}

	var rows []R
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &RowError{File: file, Row: pe.Line, Err: pe.Err}
			}
			return nil, &RowError{File: file, Err: err}
		}
		line, _ := cr.FieldPos(0)

		row, err := decodeRow[R](columns, record, sc)
		if err != nil {
			return nil, &RowError{File: file, Row: line, Err: err}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeRow maps one record onto R. A blank cell in an optional column is
// left at its zero value; a blank required cell is a missing value.
func decodeRow[R any](columns, record []string, sc schema) (R, error) {
	var row R

	values := make(map[string]any, len(columns))
	for i, c := range columns {
		if c == "" {
			continue
		}
		if strings.TrimSpace(record[i]) == "" && !slices.Contains(sc.required, c) {
			continue
		}
		values[c] = record[i]
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       numberHook,
		WeaklyTypedInput: true,
		Result:           &row,
	})
	if err != nil {
		return row, err
	}
	if err := dec.Decode(values); err != nil {
		return row, err
	}

	if err := validate.Struct(row); err != nil {
		return row, describe(err)
	}
	return row, nil
}

// normalizeHeader lower-cases column names and renames a "name" column to the
// schema's name key. Blank headers, such as a spreadsheet index column, are
// kept as "" and skipped on decode.
func normalizeHeader(header []string, sc schema) []string {
	columns := make([]string, len(header))
	hasNameKey := false
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		columns[i] = strings.ToLower(strings.TrimSpace(h))
		if columns[i] == sc.nameKey {
			hasNameKey = true
		}
	}
	if !hasNameKey {
		for i, c := range columns {
			if c == "name" {
				columns[i] = sc.nameKey
				break
			}
		}
	}
	return columns
}

func checkColumns(columns []string, sc schema) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	var missing []string
	for _, c := range sc.required {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns %s", strings.Join(missing, ", "))
	}
	return nil
}

// describe flattens validator errors into "column: rule" pairs.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s fails %s (got %v)", fe.Field(), rule, fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
