// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"fmt"
	"os"

	"github.com/ChainSafe/candidate-agreement/internal/log"
	"github.com/urfave/cli"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "cmd"))

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "statement-table"
	app.Usage = "Replays signed candidate statements through the statement table"
	app.Flags = AppFlags
	app.Action = runAction
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
