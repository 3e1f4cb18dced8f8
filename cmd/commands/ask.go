package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"medihub/internal/application/usecase"
	"medihub/internal/application/usecase/abstraction"
	"medihub/internal/infrastructure/controlplane"
)

const askUsage = "medihub ask <config> <question>"

func HandleAsk(args []string) {
	cfg := loadConfig(args, askUsage)
	if err := cfg.CheckClient(); err != nil {
		ExitOnError(err)
	}

	if len(args) < 4 {
		ExitOnError(errors.New("question expected\nusage: " + askUsage))
	}

	ctx, stop := signalContext()
	defer stop()

	asker := usecase.NewAsker(controlplane.New(cfg.ControlPlane))
	if err := runAsk(ctx, asker, strings.Join(args[3:], " "), os.Stdout); err != nil {
		ExitOnError(err)
	}
}

func runAsk(ctx context.Context, asker abstraction.Asker, question string, out io.Writer) error {
	answer, err := asker.Ask(ctx, question)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, answer.Text)

	return err
}
