package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"exmuzzy/pdf-spec/cmd/parse"
	"exmuzzy/pdf-spec/cmd/root"
	"exmuzzy/pdf-spec/internal/launcherror"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.Cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(launcherror.ExitCode(err))
	}
}
