package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dezh-tech/immortal/pkg/logger"

	"medihub/config"
)

func ExitOnError(err error) {
	logger.Error("medihub error", "err", err.Error())
	os.Exit(1)
}

func HandleHelp(_ []string) {
	fmt.Print(`MediHub document uploader and control plane

Usage:
  medihub upload <config> [flags] <file>...
      --type          document type, "patient" or "general" (default "general")
      --patient-id    patient identifier (patient documents only)
      --patient-name  patient name (patient documents only)
      --department    department (patient documents only)
  medihub ask <config> <question>
  medihub serve <config>
  medihub help
  medihub version
`) //nolint
}

// loadConfig loads the config named by args[2] and initialises the logger.
func loadConfig(args []string, usage string) *config.Config {
	if len(args) < 3 {
		ExitOnError(fmt.Errorf("config path expected\nusage: %s", usage))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	return cfg
}

// signalContext is cancelled on SIGINT or SIGTERM so an in-flight request is
// torn down instead of killed.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
