package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/healthcalc/pkg/calc/units"
	"github.com/charlie0129/healthcalc/pkg/config"
)

// settable config keys and how to apply them.
var configSetters = map[string]func(c config.Config, v string) error{
	"listen-addr": func(c config.Config, v string) error {
		c.SetListenAddr(v)
		return nil
	},
	"unix-socket": func(c config.Config, v string) error {
		c.SetUnixSocket(v)
		return nil
	},
	"log-level": func(c config.Config, v string) error {
		if _, err := logrus.ParseLevel(v); err != nil {
			return err
		}
		c.SetLogLevel(v)
		return nil
	},
	"default-units": func(c config.Config, v string) error {
		sys, err := units.ParseSystem(v)
		if err != nil {
			return err
		}
		c.SetDefaultUnits(sys)
		return nil
	},
}

func configKeys() []string {
	return []string{"listen-addr", "unix-socket", "log-level", "default-units"}
}

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show or change the config file",
		GroupID: gServer,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath, envFile)
			if err != nil {
				return err
			}
			raw, err := config.NewRawFileConfigFromConfig(conf)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(raw, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(b))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a value in the config file",
		Long: fmt.Sprintf(`Set a value in the config file.

Keys: %s

A running server picks the change up on SIGHUP; listen address changes need
a restart.`, strings.Join(configKeys(), ", ")),
		Example: "  healthcalc config set default-units imperial",
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			apply, ok := configSetters[args[0]]
			if !ok {
				return fmt.Errorf("unknown config key %q, want one of: %s", args[0], strings.Join(configKeys(), ", "))
			}

			conf, err := config.NewFile(configPath, envFile)
			if err != nil {
				return err
			}
			if err := apply(conf, args[1]); err != nil {
				return fmt.Errorf("invalid %s: %w", args[0], err)
			}
			if err := conf.Save(); err != nil {
				return err
			}

			logrus.Infof("set %s to %s in %s", args[0], args[1], configPath)
			return nil
		},
	}

	cmd.AddCommand(show, set)

	return cmd
}
