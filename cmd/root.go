package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/mockprep/internal/config"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   config.AppName + " [documents...]",
		Short: "Practice interviews grounded in your own notes and résumé",
		Long: `mockprep asks interview questions drawn from the documents you give it,
grades your answers and compiles a report at the end.

Pass study notes and a résumé (files whose names contain "resume", "cv" or
"portfolio") as arguments; they can also be entered on the setup screen.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, args)
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "a config file (default is mockprep.yaml in current directory)")
	flags.String("db", "", "database path for sqlite or connection URL for postgres (overrides MOCKPREP_DB)")
	flags.String("db-driver", "", "database driver: sqlite or postgres")
	flags.String("log-file", "", "write logs to this file")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")

	for key, flag := range map[string]string{
		"store.dsn":    "db",
		"store.driver": "db-driver",
		"log.file":     "log-file",
		"log.debug":    "debug",
		"log.json":     "json",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			log.Fatalf("binding --%s: %v", flag, err)
		}
	}

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

func getConfig() (*config.Config, error) {
	return config.LoadWith(viper.GetViper(), cfgFile)
}
