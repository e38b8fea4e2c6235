package main

import (
	"dinebook/config"
	"dinebook/helper"
	"dinebook/shared/logger"
	"errors"
	"os"

	"github.com/rs/zerolog/log"
)

const usage = "usage: migrate up|down|step-up|drop|version"

func main() {
	logger.InitLogger("migrate")

	if len(os.Args) < 2 {
		log.Fatal().Msg(usage)
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	action := os.Args[1]

	if err := helper.Runner(cfg, action); err != nil {
		if errors.Is(err, helper.ErrUnknownAction) {
			log.Fatal().Str("action", action).Msg(usage)
		}

		log.Fatal().Err(err).Str("action", action).Msg("Migration failed")
	}
}
