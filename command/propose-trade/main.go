// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/omcash/omcash/configuration"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		fmt.Printf("%s: version: %s\n", program, version)
		return
	}

	if len(options["help"]) > 0 {
		fmt.Printf("usage: %s [--config-file=FILE] <expiry_days> <matrix.csv>\n", program)
		fmt.Printf("  the first participant in the csv registers the trade\n")
		return
	}

	if 2 != len(arguments) {
		exitwithstatus.Message("usage: %s [--config-file=FILE] <expiry_days> <matrix.csv>", program)
	}

	if len(options["config-file"]) > 1 {
		exitwithstatus.Message("%s: only one config-file option is allowed, %d were detected", program, len(options["config-file"]))
	}
	configurationFile := ""
	if 1 == len(options["config-file"]) {
		configurationFile = options["config-file"][0]
	}

	expiry, matrixFile, err := parseArguments(arguments)
	if nil != err {
		exitwithstatus.Message("%s: %s", program, err)
	}

	roots, matrix, err := readMatrix(matrixFile)
	if nil != err {
		exitwithstatus.Message("%s: %s", program, err)
	}

	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	log.Infof("version: %s", version)
	log.Debugf("configuration: %+v", theConfiguration)
	log.Infof("participants: %q", roots)

	digest, err := propose(log, theConfiguration.ContractDirectory, expiry, roots, matrix)
	if nil != err {
		log.Errorf("propose error: %s", err)
		exitwithstatus.Message("%s: %s", program, err)
	}

	fmt.Fprintf(os.Stdout, "%s\n", digest)
}
