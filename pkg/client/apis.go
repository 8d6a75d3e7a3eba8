package client

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/healthcalc/pkg/calc/bloodsugar"
	"github.com/charlie0129/healthcalc/pkg/calc/bmi"
	"github.com/charlie0129/healthcalc/pkg/calc/bodyfat"
	"github.com/charlie0129/healthcalc/pkg/calc/energy"
	"github.com/charlie0129/healthcalc/pkg/calc/heartrate"
	"github.com/charlie0129/healthcalc/pkg/calc/hydration"
	"github.com/charlie0129/healthcalc/pkg/calc/kidsbmi"
	"github.com/charlie0129/healthcalc/pkg/calc/ovulation"
	"github.com/charlie0129/healthcalc/pkg/calc/pregnancy"
	"github.com/charlie0129/healthcalc/pkg/calc/sleep"
	"github.com/charlie0129/healthcalc/pkg/types"
)

func (c *Client) GetVersion(ctx context.Context) (types.VersionInfo, error) {
	var v types.VersionInfo
	if err := c.Get(ctx, "/version", &v); err != nil {
		return v, pkgerrors.Wrapf(err, "failed to get server version")
	}
	return v, nil
}

func (c *Client) GetCalculators(ctx context.Context) ([]types.CalculatorInfo, error) {
	var out []types.CalculatorInfo
	if err := c.Get(ctx, "/v1/calculators", &out); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list calculators")
	}
	return out, nil
}

// calculate posts req to a calculator endpoint. Validation errors are
// returned unwrapped so callers can inspect the fields.
func calculate[Req, Res any](ctx context.Context, c *Client, name string, req Req) (Res, error) {
	var res Res
	err := c.Post(ctx, "/v1/"+name, req, &res)
	return res, err
}

func (c *Client) BMI(ctx context.Context, r types.BMIRequest) (bmi.Result, error) {
	return calculate[types.BMIRequest, bmi.Result](ctx, c, "bmi", r)
}

func (c *Client) KidsBMI(ctx context.Context, r types.KidsBMIRequest) (kidsbmi.Result, error) {
	return calculate[types.KidsBMIRequest, kidsbmi.Result](ctx, c, "kids-bmi", r)
}

func (c *Client) BMR(ctx context.Context, r types.EnergyRequest) (energy.Result, error) {
	return calculate[types.EnergyRequest, energy.Result](ctx, c, "bmr", r)
}

func (c *Client) Calories(ctx context.Context, r types.EnergyRequest) (energy.Result, error) {
	return calculate[types.EnergyRequest, energy.Result](ctx, c, "calories", r)
}

func (c *Client) BodyFat(ctx context.Context, r types.BodyFatRequest) (bodyfat.Result, error) {
	return calculate[types.BodyFatRequest, bodyfat.Result](ctx, c, "body-fat", r)
}

func (c *Client) HeartRate(ctx context.Context, r types.HeartRateRequest) (heartrate.Result, error) {
	return calculate[types.HeartRateRequest, heartrate.Result](ctx, c, "heart-rate", r)
}

func (c *Client) BloodSugar(ctx context.Context, r types.BloodSugarRequest) (bloodsugar.Result, error) {
	return calculate[types.BloodSugarRequest, bloodsugar.Result](ctx, c, "blood-sugar", r)
}

func (c *Client) Hydration(ctx context.Context, r types.HydrationRequest) (hydration.Result, error) {
	return calculate[types.HydrationRequest, hydration.Result](ctx, c, "hydration", r)
}

func (c *Client) Ovulation(ctx context.Context, r types.OvulationRequest) (ovulation.Result, error) {
	return calculate[types.OvulationRequest, ovulation.Result](ctx, c, "ovulation", r)
}

func (c *Client) DueDate(ctx context.Context, r types.DueDateRequest) (pregnancy.Result, error) {
	return calculate[types.DueDateRequest, pregnancy.Result](ctx, c, "due-date", r)
}

func (c *Client) Sleep(ctx context.Context, r types.SleepRequest) (sleep.Result, error) {
	return calculate[types.SleepRequest, sleep.Result](ctx, c, "sleep", r)
}
