package client

import (
	"context"
	"errors"
	"net"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/bloodsugar"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
	"github.com/charlie0129/healthcalc/pkg/config"
	"github.com/charlie0129/healthcalc/pkg/server"
	"github.com/charlie0129/healthcalc/pkg/types"
	"github.com/charlie0129/healthcalc/pkg/utils/ptr"
)

func newTestHandler() *server.Server {
	conf := config.NewFileFromConfig(&config.RawFileConfig{GinMode: ptr.To(gin.TestMode)}, "")
	return server.New(conf, server.WithClock(func() time.Time {
		return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	}))
}

func TestClientOverTCP(t *testing.T) {
	ts := httptest.NewServer(newTestHandler().Handler())
	defer ts.Close()

	c := NewClient(ts.URL)
	ctx := context.Background()

	res, err := c.BMI(ctx, types.BMIRequest{Weight: 70, Height: 175})
	if err != nil {
		t.Fatalf("BMI failed: %v", err)
	}
	if res.BMI != 22.9 {
		t.Errorf("want bmi 22.9, got %v", res.BMI)
	}

	ov, err := c.Ovulation(ctx, types.OvulationRequest{LMP: "2024-03-01"})
	if err != nil {
		t.Fatalf("Ovulation failed: %v", err)
	}
	if !ov.NextPeriodDate.Equal(calc.NewDate(2024, 3, 29)) {
		t.Errorf("want next period 2024-03-29, got %s", ov.NextPeriodDate)
	}

	bs, err := c.BloodSugar(ctx, types.BloodSugarRequest{Fasting: 110})
	if err != nil {
		t.Fatalf("BloodSugar failed: %v", err)
	}
	if bs.Overall != bloodsugar.Prediabetes {
		t.Errorf("want prediabetes, got %s", bs.Overall)
	}

	cs, err := c.GetCalculators(ctx)
	if err != nil {
		t.Fatalf("GetCalculators failed: %v", err)
	}
	if len(cs) != len(server.Catalog()) {
		t.Errorf("want %d calculators, got %d", len(server.Catalog()), len(cs))
	}
}

func TestClientErrors(t *testing.T) {
	ts := httptest.NewServer(newTestHandler().Handler())
	defer ts.Close()

	c := NewClient(ts.URL)
	ctx := context.Background()

	_, err := c.BMI(ctx, types.BMIRequest{Weight: 5, Height: 175})
	verr, ok := validate.As(err)
	if !ok {
		t.Fatalf("want a validation error, got %v", err)
	}
	if !verr.Has("weightKg") {
		t.Errorf("want weightKg to fail, got %v", verr.Fields)
	}

	_, err = c.Send(ctx, "GET", "/nope", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestServerNotRunning(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	_ = l.Close()

	_, err = NewClient(addr).GetVersion(context.Background())
	if !errors.Is(err, ErrServerNotRunning) {
		t.Errorf("want ErrServerNotRunning over tcp, got %v", err)
	}

	sock := filepath.Join(t.TempDir(), "missing.sock")
	_, err = NewClient("unix://" + sock).GetVersion(context.Background())
	if !errors.Is(err, ErrServerNotRunning) {
		t.Errorf("want ErrServerNotRunning over unix socket, got %v", err)
	}
}

func TestClientOverUnixSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "hc.sock")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewUnstartedServer(newTestHandler().Handler())
	ts.Listener = l
	ts.Start()
	defer ts.Close()

	res, err := NewClient("unix://"+sock).Sleep(context.Background(), types.SleepRequest{Mode: "bed", Time: "23:00", Count: 1})
	if err != nil {
		t.Fatalf("Sleep failed: %v", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Time.String() != "06:45" {
		t.Errorf("want wake time 06:45, got %+v", res.Candidates)
	}
}
