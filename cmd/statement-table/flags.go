// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import "github.com/urfave/cli"

var (
	// ConfigFlag is the path of the TOML configuration file
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	// ScenarioFlag is the path of the TOML scenario file
	ScenarioFlag = cli.StringFlag{
		Name:  "scenario",
		Usage: "TOML scenario file listing validators, groups, candidates and statements",
	}
	// LogFlag overrides the configured log level
	LogFlag = cli.StringFlag{
		Name:  "log",
		Usage: "Log level. Supports levels crit, error, warn, info, debug and trace",
	}
	// WaitFlag keeps the metrics server running after the scenario completed
	WaitFlag = cli.BoolFlag{
		Name:  "wait",
		Usage: "Keep serving metrics until interrupted",
	}
)

// AppFlags are the flags of the statement-table application
var AppFlags = []cli.Flag{
	ConfigFlag,
	ScenarioFlag,
	LogFlag,
	WaitFlag,
}
