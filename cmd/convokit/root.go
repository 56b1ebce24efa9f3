package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/convokit/config"
	"github.com/kbukum/convokit/logger"
)

// app carries state shared by subcommands once the root pre-run loaded it.
type app struct {
	configFile string
	envFile    string
	cfg        *config.Config
	log        *logger.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "convokit",
		Short:        "Annotate conversation transcripts with timing markers",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file (default: $CONVOKIT_CONFIG, then convokit.yml, config.yml, cmd/convokit/config.yml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", ".env file to load")

	root.AddCommand(
		newAnnotateCommand(a),
		newServeCommand(a),
		newVersionCommand(),
	)
	return root
}

func (a *app) load() error {
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.Init(cfg.Logging, cfg.Name)
	a.log = logger.GetGlobalLogger()
	logger.RegisterDefaults("conversation", "detect", "annotate", "server")
	return nil
}
