package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/spf13/cobra"

	"github.com/jbqwizera/pipesh/core"
	"github.com/jbqwizera/pipesh/core/config"
)

var cfgPath string

var exitStatus int

func loadConfig() *config.Configuration {
	configuration, err := config.Load(cfgPath)
	if err == nil {
		return configuration
	}

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("No config found, using defaults. Run init to create one.")
	} else {
		log.Printf("Couldn't load config: %v", err)
	}
	return config.Default()
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pipesh",
	Short: "An interactive pipeline shell",
	Long: `pipesh reads command lines, parses them into pipelines and runs
each stage as an OS process joined to its neighbors by pipes.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitStatus = core.NewShell(loadConfig()).Run()
	},
}

// Execute runs the root command and returns the process exit status.
// This is called by main.main().
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return exitStatus
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
