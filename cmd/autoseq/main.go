// Package main runs one simulated autonomous period from a config file.
package main

import (
	"go.viam.com/utils"

	"github.com/ringbot/autoseq/logging"
	"github.com/ringbot/autoseq/sim"
)

var logger = logging.NewDebugLogger("autoseq")

func main() {
	utils.ContextualMain(sim.RunSimulation, logger)
}
