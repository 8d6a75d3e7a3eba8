package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/healthcalc/pkg/client"
	"github.com/charlie0129/healthcalc/pkg/server"
	"github.com/charlie0129/healthcalc/pkg/version"
)

// NewServeCommand .
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP API in the foreground",
		GroupID: gServer,
		Long: `Run the HTTP API in the foreground.

The listen address, unix socket, log level and default units come from the
config file and HEALTHCALC_* environment variables. Send SIGHUP to reload the
config.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("healthcalc server starting")
			return server.Run(configPath, envFile)
		},
	}
}

func NewCalculatorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "calculators",
		Short:   "List the calculators the HTTP API exposes",
		GroupID: gServer,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cs := server.Catalog()
			if serverAddr != "" {
				var err error
				cs, err = client.NewClient(serverAddr).GetCalculators(cmd.Context())
				if err != nil {
					return err
				}
			}
			for _, c := range cs {
				cmd.Printf("%-5s %-16s %-8s %s\n", c.Method, c.Path, c.Group, c.Description)
			}
			return nil
		},
	}
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
			if serverAddr == "" {
				return nil
			}

			v, err := client.NewClient(serverAddr).GetVersion(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("server: %s %s\n", v.Version, v.GitCommit)
			if v.Version != version.Version {
				logrus.WithFields(logrus.Fields{
					"clientVersion": version.Version,
					"serverVersion": v.Version,
				}).Warn("Version mismatch between client and server.")
			}
			return nil
		},
	}
}
