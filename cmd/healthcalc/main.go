package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/healthcalc/pkg/client"
)

const (
	defaultConfigPath = "/etc/healthcalc.json"
	defaultEnvFile    = ".env"
)

var (
	logLevel   = "info"
	configPath = defaultConfigPath
	envFile    = defaultEnvFile
	serverAddr = ""
	jsonOutput = false
)

var (
	gBody         = "Body:"
	gFitness      = "Fitness:"
	gCycle        = "Cycle:"
	gServer       = "Server:"
	commandGroups = []string{
		gBody,
		gFitness,
		gCycle,
		gServer,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrServerNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: healthcalc server is not running")
		fmt.Fprintf(os.Stderr, "Start it with 'healthcalc serve', or drop --server to calculate locally.\n")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Check the permissions of the server's unix socket")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "healthcalc",
		Short: "healthcalc runs everyday health calculations",
		Long: `healthcalc runs everyday health calculations: BMI, calorie needs, body fat,
heart rate zones, blood sugar, hydration, cycle tracking, due dates and sleep
timing.

Results are computed locally unless --server points at a running
'healthcalc serve'. Results are informational and not medical advice.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", defaultConfigPath, "config file path")
	globalFlags.StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file with HEALTHCALC_* overrides")
	globalFlags.StringVar(&serverAddr, "server", "", "server address (URL, host:port or unix:///path); empty calculates locally")
	globalFlags.BoolVar(&jsonOutput, "json", false, "print results as JSON")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewBMICommand(),
		NewKidsBMICommand(),
		NewBMRCommand(),
		NewCaloriesCommand(),
		NewBodyFatCommand(),
		NewHeartRateCommand(),
		NewBloodSugarCommand(),
		NewHydrationCommand(),
		NewSleepCommand(),
		NewOvulationCommand(),
		NewDueDateCommand(),
		NewServeCommand(),
		NewCalculatorsCommand(),
		NewConfigCommand(),
		NewVersionCommand(),
	)

	return cmd
}
