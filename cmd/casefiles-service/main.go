package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mycelian/casefiles/internal/service"
)

func main() {
	if err := service.Run(); err != nil {
		log.Error().Err(err).Msg("casefiles-service exited with error")
		os.Exit(1)
	}
}
