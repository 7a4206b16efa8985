package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toasty/internal/core/doctor"
)

var sampleResults = []doctor.Result{
	{Name: "Configuration", Items: []doctor.CheckItem{
		{Label: "config file", Status: doctor.StatusPass, Detail: "/tmp/config.yaml"},
		{Label: "tui.width", Status: doctor.StatusFail, Detail: "must be at least 20"},
	}},
	{Name: "Terminal", Items: []doctor.CheckItem{
		{Label: "stdout", Status: doctor.StatusWarn, Detail: "not a terminal"},
	}},
}

func TestOutputDoctorJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, outputDoctorJSON(&out, &bytes.Buffer{}, sampleResults))

	var got struct {
		Healthy bool        `json:"healthy"`
		Summary summaryJSON `json:"summary"`
		Checks  []struct {
			Name  string `json:"name"`
			Items []struct {
				Status string `json:"status"`
			} `json:"items"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	assert.False(t, got.Healthy)
	assert.Equal(t, summaryJSON{Passed: 1, Warned: 1, Failed: 1}, got.Summary)
	require.Len(t, got.Checks, 2)
	assert.Equal(t, "fail", got.Checks[0].Items[1].Status)
}

func TestOutputDoctorText(t *testing.T) {
	var out bytes.Buffer
	outputDoctorText(&out, sampleResults)

	text := out.String()
	assert.Contains(t, text, "Toasty Doctor")
	assert.Contains(t, text, "Configuration")
	assert.Contains(t, text, "tui.width")
	assert.Contains(t, text, "1 passed")
	assert.Contains(t, text, "1 failed")
}

func TestDoctorChecks(t *testing.T) {
	assert.Len(t, (&DoctorCmd{flags: &Flags{}}).checks(), 2)

	cfg := fastConfig()
	assert.Len(t, (&DoctorCmd{flags: &Flags{Config: cfg}}).checks(), 4)
}
