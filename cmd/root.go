// cmd/root.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	scenarioPath string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "indras-sim",
	Short: "Discrete-event simulator for delay-tolerant P2P mesh networks",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario file against the simulator core",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if scenarioPath == "" {
			logrus.Fatal("--scenario is required")
		}

		logrus.Infof("loading scenario %s", scenarioPath)
		result, err := RunScenarioFile(scenarioPath)
		if err != nil {
			logrus.Fatalf("scenario failed: %v", err)
		}
		result.Print()
		logrus.Info("simulation complete")
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "path to a YAML scenario file")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
}
