// t9pad decodes old phone keypad sequences into text.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"t9pad/cmd"
	"t9pad/util"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		util.NewLogger(int(util.LogQuiet)).Error("t9pad: %v", err)
		cancel()
		os.Exit(1)
	}
}
