package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/edfsizer/internal/sizer/core/model"
)

var sample = []model.CandidateSpec{{
	EDFName:               "E1",
	NumEDF:                4,
	ESCName:               "S1",
	BatteryName:           "battery combination 2 in parallel: 1 x A",
	TotalWeight:           5800,
	TotalThrust:           12000,
	MaxPayload:            6200,
	TotalPowerCapacity:    10000,
	MaxCurrentConsumption: 320,
	MinFlyTime:            1875,
	HoverPower:            5800.0 / 12000.0,
	HoverTime:             1875 / (5800.0 / 12000.0),
}}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, sample))

	out := buf.String()
	assert.Contains(t, out, "max_payload")
	assert.Contains(t, out, "6200.00")
	assert.Contains(t, out, "0.48")
	assert.Contains(t, out, "3879.31")
	assert.NotContains(t, out, "0.48333")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sample))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "E1", got[0]["edf_name"])
	assert.Equal(t, 6200.0, got[0]["max_payload"])

	buf.Reset()
	require.NoError(t, JSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, sample))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, columns, records[0])
	assert.Equal(t, "battery combination 2 in parallel: 1 x A", records[1][3])
	assert.Equal(t, "1875", records[1][9])
}

func TestWrite(t *testing.T) {
	for _, f := range Formats {
		var buf bytes.Buffer
		assert.NoError(t, Write(&buf, f, nil), f)
	}

	err := Write(&bytes.Buffer{}, "yaml", sample)
	assert.ErrorContains(t, err, `unknown output format "yaml"`)
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, nil))
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(buf.String()), "\n")+1)
}
