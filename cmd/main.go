package main

import (
	"errors"
	"fmt"
	"os"

	"medihub"
	"medihub/cmd/commands"
)

func main() {
	if len(os.Args) < 2 {
		commands.HandleHelp(os.Args)
		commands.ExitOnError(errors.New("at least 1 arguments expected"))
	}

	switch os.Args[1] {
	case "upload":
		commands.HandleUpload(os.Args)

	case "ask":
		commands.HandleAsk(os.Args)

	case "serve":
		commands.HandleServe(os.Args)

	case "help":
		commands.HandleHelp(os.Args)
		os.Exit(0)

	case "version":
		fmt.Println(medihub.StringVersion()) //nolint
		os.Exit(0)

	default:
		commands.HandleHelp(os.Args)
	}
}
