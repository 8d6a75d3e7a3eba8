package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
	"github.com/charlie0129/healthcalc/pkg/config"
	"github.com/charlie0129/healthcalc/pkg/server"
	"github.com/charlie0129/healthcalc/pkg/utils/ptr"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	base := []string{"--config", filepath.Join(t.TempDir(), "healthcalc.json"), "--env-file", ""}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func executeJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	out, err := execute(t, append([]string{"--json"}, args...)...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	return got
}

func TestLocalCalculations(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
		want  any
	}{
		{"bmi", []string{"bmi", "--weight", "70", "--height", "175"}, "bmi", 22.9},
		{"bmi imperial", []string{"bmi", "-u", "imperial", "--weight", "154.3", "--height", "68.9"}, "bmi", 22.9},
		{"bmr", []string{"bmr", "--gender", "male", "--age", "30", "--weight", "80", "--height", "180"}, "bmr", 1780.0},
		{"due date", []string{"due-date", "lmp", "2024-01-01", "--today", "2024-04-01"}, "dueDate", "2024-10-08"},
		{"ovulation", []string{"ovulation", "--lmp", "2024-01-01", "--today", "2024-01-10"}, "ovulationDate", "2024-01-15"},
		{"blood sugar", []string{"blood-sugar", "--fasting", "110"}, "overall", "prediabetes"},
		{"heart rate", []string{"heart-rate", "--age", "40"}, "maxHr", 180.0},
		{"sleep", []string{"sleep", "bed", "23:00", "-n", "1"}, "target", "23:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := executeJSON(t, tt.args...)
			if got[tt.field] != tt.want {
				t.Errorf("want %s = %v, got %v", tt.field, tt.want, got[tt.field])
			}
		})
	}
}

func TestHumanOutput(t *testing.T) {
	out, err := execute(t, "bmi", "--weight", "70", "--height", "175")
	if err != nil {
		t.Fatalf("bmi failed: %v", err)
	}
	if !strings.Contains(out, "BMI: 22.9 (normal)") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "sleep", "wake", "07:00", "-n", "1")
	if err != nil {
		t.Fatalf("sleep failed: %v", err)
	}
	if !strings.Contains(out, "11:15 PM") {
		t.Errorf("want bedtime 11:15 PM in output:\n%s", out)
	}

	out, err = execute(t, "body-fat", "navy", "--gender", "male", "--age", "30",
		"--weight", "80", "--height", "180", "--neck", "38", "--waist", "85")
	if err != nil {
		t.Fatalf("body-fat failed: %v", err)
	}
	if !strings.Contains(out, "Body fat (navy)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestValidationError(t *testing.T) {
	_, err := execute(t, "bmi", "--weight", "5", "--height", "175")
	verr, ok := validate.As(err)
	if !ok {
		t.Fatalf("want a validation error, got %v", err)
	}
	if !verr.Has("weightKg") {
		t.Errorf("want weightKg to fail, got %v", verr.Fields)
	}
}

func TestRemoteCalculation(t *testing.T) {
	conf := config.NewFileFromConfig(&config.RawFileConfig{GinMode: ptr.To(gin.TestMode)}, "")
	ts := httptest.NewServer(server.New(conf).Handler())
	defer ts.Close()

	got := executeJSON(t, "--server", ts.URL, "ovulation", "--lmp", "2024-03-01", "--today", "2024-03-10")
	if got["cycleDay"] != 10.0 {
		t.Errorf("want cycle day 10, got %v", got["cycleDay"])
	}

	out, err := execute(t, "--server", ts.URL, "calculators")
	if err != nil {
		t.Fatalf("calculators failed: %v", err)
	}
	if n := strings.Count(out, "POST"); n != len(server.Catalog()) {
		t.Errorf("want %d calculators, got %d:\n%s", len(server.Catalog()), n, out)
	}
}

func TestConfigDefaultUnits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthcalc.json")

	if out, err := execute(t, "--config", path, "config", "set", "default-units", "us"); err != nil {
		t.Fatalf("config set failed: %v\n%s", err, out)
	}
	if _, err := execute(t, "--config", path, "config", "set", "log-level", "loud"); err == nil {
		t.Errorf("want an invalid log level to be rejected")
	}

	got := executeJSON(t, "--config", path, "bmi", "--weight", "154.3", "--height", "68.9")
	if got["bmi"] != 22.9 {
		t.Errorf("want bmi 22.9 with imperial default units, got %v", got["bmi"])
	}

	out, err := execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, `"defaultUnits": "imperial"`) {
		t.Errorf("want imperial in shown config:\n%s", out)
	}
}

func TestRelativeDate(t *testing.T) {
	defer func(orig func() time.Time) { now = orig }(now)
	now = func() time.Time { return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC) }

	today := calc.NewDate(2024, time.March, 10)
	tests := []struct {
		d    calc.Date
		want string
	}{
		{today, "today"},
		{calc.NewDate(2024, time.March, 31), "3 weeks from now"},
		{calc.NewDate(2024, time.March, 7), "3 days ago"},
	}
	for _, tt := range tests {
		if got := relativeDate(tt.d, today); got != tt.want {
			t.Errorf("relativeDate(%s): want %q, got %q", tt.d, tt.want, got)
		}
	}

	out, err := execute(t, "due-date", "lmp", "2024-01-01", "--today", "2024-10-01")
	if err != nil {
		t.Fatalf("due-date failed: %v", err)
	}
	if !strings.Contains(out, "1 week from now") {
		t.Errorf("want the due date one week out:\n%s", out)
	}
}
