package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "hemtt",
		Short:         "Build tool for Arma 3 mods",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
			if viper.GetBool("no-color") {
				color.NoColor = true
			}
		},
	}

	flags := root.PersistentFlags()
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("no-color", false, "disable colored output")

	viper.SetEnvPrefix("HEMTT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("no-color", flags.Lookup("no-color"))

	root.AddCommand(compileCommand())
	root.AddCommand(checkCommand())
	root.AddCommand(disCommand())
	return root
}

func setupLogging() {
	level := zerolog.InfoLevel
	if viper.GetBool("debug") {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: viper.GetBool("no-color")}
	log.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
