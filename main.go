package main

import (
	"leadsdesk/internal/di"
	"leadsdesk/internal/structures"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	flags := &structures.CliFlags{}
	pflag.StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the yaml configuration file")
	pflag.BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to stdout")
	pflag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		log.Fatal().Err(err).Msg("leadsdesk stopped")
	}
}
