package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/animatrix/internal/config"
	"github.com/backmassage/animatrix/internal/logging"
)

// commandContext carries the configuration shared by every subcommand.
// Persistent flags are applied in PersistentPreRunE; subcommands apply
// their own flags on top before validating.
type commandContext struct {
	configFlag string
	colorFlag  string
	logFile    string
	verbose    bool

	cfg config.Config
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "animatrix",
		Short:         "Render data frames into a video through ffmpeg",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFlag, "config", "c", "", "TOML configuration file")
	flags.StringVar(&ctx.colorFlag, "color", string(config.ColorAuto), "Color output: auto, always or never")
	flags.StringVar(&ctx.logFile, "log-file", "", "Append log lines to this file")
	flags.BoolVarP(&ctx.verbose, "verbose", "v", false, "Verbose output (ffmpeg stderr, encoder command)")

	rootCmd.AddCommand(newRenderCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// loadConfig builds the configuration: defaults, then the config file,
// then any persistent flag the user set explicitly.
func (c *commandContext) loadConfig(cmd *cobra.Command) error {
	c.cfg = config.DefaultConfig()
	c.cfg.ShowProgress = true
	if c.configFlag != "" {
		if err := config.Load(c.configFlag, &c.cfg); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("color") {
		c.cfg.ColorMode = config.ColorMode(c.colorFlag)
	}
	if flags.Changed("log-file") {
		c.cfg.LogFile = c.logFile
	}
	if flags.Changed("verbose") {
		c.cfg.Verbose = c.verbose
	}
	return nil
}

// logger validates the final configuration and opens the logger.
func (c *commandContext) logger() (*logging.Logger, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	return logging.NewLogger(&c.cfg)
}
