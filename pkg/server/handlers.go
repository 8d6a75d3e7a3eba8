package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

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
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
	"github.com/charlie0129/healthcalc/pkg/types"
	"github.com/charlie0129/healthcalc/pkg/version"
)

const apiPrefix = "/v1"

// Catalog groups.
const (
	GroupBody    = "body"
	GroupFitness = "fitness"
	GroupCycle   = "cycle"
)

type calculator struct {
	types.CalculatorInfo
	handler func(*Server) gin.HandlerFunc
}

func newCalculator(name, group, description string, h func(*Server) gin.HandlerFunc) calculator {
	return calculator{
		CalculatorInfo: types.CalculatorInfo{
			Name:        name,
			Group:       group,
			Method:      http.MethodPost,
			Path:        apiPrefix + "/" + name,
			Description: description,
		},
		handler: h,
	}
}

var catalog = []calculator{
	newCalculator("bmi", GroupBody, "Body mass index with category and healthy weight range",
		endpoint(types.BMIRequest.Input, bmi.Calculate)),
	newCalculator("kids-bmi", GroupBody, "BMI-for-age percentile for children aged 2 to 20",
		endpoint(types.KidsBMIRequest.Input, kidsbmi.Calculate)),
	newCalculator("bmr", GroupBody, "Basal metabolic rate and metabolic age",
		endpoint(types.EnergyRequest.Input, energy.CalculateBMR)),
	newCalculator("calories", GroupBody, "Daily calorie target and macronutrient split for a weight goal",
		endpoint(types.EnergyRequest.Input, energy.CalculateCalories)),
	newCalculator("body-fat", GroupBody, "Body fat percentage from circumferences or skinfolds",
		endpoint(types.BodyFatRequest.Input, bodyfat.Calculate)),
	newCalculator("heart-rate", GroupFitness, "Maximum heart rate and training zones",
		endpoint(types.HeartRateRequest.Input, heartrate.Calculate)),
	newCalculator("blood-sugar", GroupFitness, "Glucose and HbA1c classification with diabetes risk",
		endpoint(types.BloodSugarRequest.Input, bloodsugar.Calculate)),
	newCalculator("hydration", GroupFitness, "Daily water intake for body, activity and climate",
		endpoint(types.HydrationRequest.Input, hydration.Calculate)),
	newCalculator("sleep", GroupFitness, "Bedtimes or wake times aligned to 90-minute sleep cycles",
		endpoint(types.SleepRequest.Input, sleep.Calculate)),
	newCalculator("ovulation", GroupCycle, "Ovulation date, fertile window and upcoming periods",
		endpoint(types.OvulationRequest.Input, ovulation.Calculate)),
	newCalculator("due-date", GroupCycle, "Pregnancy due date, gestational age and milestones",
		endpoint(types.DueDateRequest.Input, pregnancy.Calculate)),
}

// Catalog lists every calculator the server exposes.
func Catalog() []types.CalculatorInfo {
	out := make([]types.CalculatorInfo, len(catalog))
	for i, c := range catalog {
		out[i] = c.CalculatorInfo
	}
	return out
}

// endpoint binds a request body of type R, converts it to the calculator
// input I with the server defaults and runs the calculator.
func endpoint[R, I, O any](toInput func(R, types.Defaults) (I, error), run func(I) (O, error)) func(*Server) gin.HandlerFunc {
	return func(s *Server) gin.HandlerFunc {
		return func(c *gin.Context) {
			var req R
			if err := c.ShouldBindJSON(&req); err != nil {
				abort(c, http.StatusBadRequest, err)
				return
			}

			in, err := toInput(req, s.defaults())
			if err != nil {
				abort(c, statusOf(err), err)
				return
			}

			res, err := run(in)
			if err != nil {
				abort(c, statusOf(err), err)
				return
			}

			c.IndentedJSON(http.StatusOK, res)
		}
	}
}

func statusOf(err error) int {
	if _, ok := validate.As(err); ok {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func abort(c *gin.Context, code int, err error) {
	resp := types.ErrorResponse{Error: err.Error()}
	if verr, ok := validate.As(err); ok {
		resp = types.ErrorResponse{Error: "validation failed", Fields: verr.Fields}
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, resp)
}

func getCalculators(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, Catalog())
}

func getHealth(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"status": "ok"})
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, types.VersionInfo{
		Version:   version.Version,
		GitCommit: version.GitCommit,
	})
}
