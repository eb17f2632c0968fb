package main

import (
	"os"

	"github.com/nguyentantai21042004/note-flow/internal/cli"
	"github.com/nguyentantai21042004/note-flow/internal/logger"
)

func main() {
	deps := &cli.Dependencies{Out: os.Stdout}
	err := cli.NewRootCmd(deps).Execute()
	if deps.App != nil {
		logger.Sync(deps.App.Logger)
	}
	if err != nil {
		cli.NewFormatter(os.Stderr).Failure(err)
		os.Exit(1)
	}
}
