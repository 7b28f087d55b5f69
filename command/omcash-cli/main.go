// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/fatih/color"
	"github.com/urfave/cli"

	"github.com/omcash/omcash/configuration"
	"github.com/omcash/omcash/transactionrecord"
)

type metadata struct {
	config  *configuration.Configuration
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr, true)
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "%s: %s\n", color.RedString("terminated with error"), err)
		os.Exit(1)
	}
}

// the command tree writing results to w and messages to e
func newApp(w io.Writer, e io.Writer, startLogging bool) *cli.App {
	app := cli.NewApp()
	app.Name = "omcash-cli"
	app.Usage = "manage a local cash chain"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "",
			Usage: " Lua configuration `FILE` [default: current directory is the chain root]",
		},
	}

	transactionFlag := cli.StringFlag{
		Name:  "transaction, t",
		Value: "",
		Usage: "*transaction digest `HEX`",
	}

	app.Commands = []cli.Command{
		{
			Name:      "setup",
			Usage:     "create a new chain in the data directory",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "author-key, a",
					Value: "",
					Usage: " share the contract author public key `FILE` of another chain",
				},
			},
			Action: runSetup,
		},
		{
			Name:   "balance",
			Usage:  "replay the chain and display the balance report",
			Action: runBalance,
		},
		{
			Name:      "verify",
			Usage:     "replay this chain and the counterparty chains",
			ArgsUsage: "[ROOT...]\n   (default: every counterparty recorded on this chain)",
			Action:    runVerify,
		},
		{
			Name:      "register",
			Usage:     "register a transaction proposed on another participant's chain",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				transactionFlag,
				cli.StringFlag{
					Name:  "from, f",
					Value: "",
					Usage: "*chain `ROOT` holding the transaction",
				},
			},
			Action: runRegister,
		},
		{
			Name:      "confirm",
			Usage:     "confirm a registered transaction",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{transactionFlag},
			Action:    runLifecycle(transactionrecord.ConfirmTransaction),
		},
		{
			Name:      "cancel",
			Usage:     "cancel a registered transaction",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{transactionFlag},
			Action:    runLifecycle(transactionrecord.CancelTransaction),
		},
		{
			Name:      "annul",
			Usage:     "annul a confirmed transaction",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{transactionFlag},
			Action:    runLifecycle(transactionrecord.AnnulTransaction),
		},
		{
			Name:      "reinstate",
			Usage:     "reinstate an annulled transaction",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{transactionFlag},
			Action:    runLifecycle(transactionrecord.ReinstateTransaction),
		},
		{
			Name:      "show",
			Usage:     "display blocks as JSON",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " first block `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum blocks to output `COUNT`",
				},
			},
			Action: runShow,
		},
		{
			Name:  "version",
			Usage: "display omcash-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration and start logging
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command || "" == command || "help" == command {
			return nil
		}

		file := c.GlobalString("config-file")
		if verbose && "" != file {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		theConfiguration, err := configuration.GetConfiguration(file)
		if nil != err {
			return err
		}

		if startLogging {
			if err := logger.Initialise(theConfiguration.Logging); nil != err {
				return err
			}
		}

		c.App.Metadata["config"] = &metadata{
			config:  theConfiguration,
			verbose: verbose,
			e:       e,
			w:       w,
		}

		return nil
	}

	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"].(*metadata); ok && startLogging {
			logger.Finalise()
		}
		return nil
	}

	return app
}
