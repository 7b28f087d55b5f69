// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/transactionrecord"
	"github.com/omcash/omcash/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "." // same directory as the configuration file

	defaultExpiryDays = 7

	defaultLogDirectory = "log"
	defaultLogFile      = "omcash.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// Configuration - settings shared by all the omcash programs
type Configuration struct {
	DataDirectory     string               `gluamapper:"data_directory" json:"data_directory"`
	ContractDirectory string               `gluamapper:"contract_directory" json:"contract_directory"`
	ExpiryDays        int                  `gluamapper:"expiry_days" json:"expiry_days"`
	Logging           logger.Configuration `gluamapper:"logging" json:"logging"`
}

// Expiry - default lifetime of a new transaction
func (c *Configuration) Expiry() time.Duration {
	return time.Duration(c.ExpiryDays) * 24 * time.Hour
}

func defaults() *Configuration {
	levels := make(map[string]string, len(defaultLogLevels))
	for tag, level := range defaultLogLevels {
		levels[tag] = level
	}

	return &Configuration{
		DataDirectory:     defaultDataDirectory,
		ContractDirectory: transactionrecord.CashContractDirectory,
		ExpiryDays:        defaultExpiryDays,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    levels,
		},
	}
}

// GetConfiguration - read the configuration file and expand paths
//
// an empty file name gives the defaults with the current directory
// as the data directory
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	options := defaults()
	baseDirectory := ""

	if "" == configurationFileName {
		cwd, err := os.Getwd()
		if nil != err {
			return nil, err
		}
		baseDirectory = cwd
	} else {
		configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
		if nil != err {
			return nil, err
		}

		// absolute path to the main directory
		baseDirectory = filepath.Dir(configurationFileName)

		if err := ParseConfigurationFile(configurationFileName, options); nil != err {
			return nil, err
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q  error: %w", options.DataDirectory, fault.ErrInvalidDataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = baseDirectory
	} else {
		options.DataDirectory = util.EnsureAbsolute(baseDirectory, options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory  error: %w", options.DataDirectory, fault.ErrInvalidDataDirectory)
	}

	if options.ExpiryDays <= 0 {
		return nil, fmt.Errorf("expiry days: %d  error: %w", options.ExpiryDays, fault.ErrInvalidExpiry)
	}

	// contract directory stays relative to each chain root
	if "" == options.ContractDirectory || filepath.IsAbs(options.ContractDirectory) {
		return nil, fmt.Errorf("contract directory: %q  error: %w", options.ContractDirectory, fault.ErrInvalidDataDirectory)
	}
	options.ContractDirectory = filepath.Clean(options.ContractDirectory)

	// log file must be a plain name
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("log file: %q  error: %w", options.Logging.File, fault.ErrInvalidFileName)
	}

	// make absolute and create directories if they do not already exist
	options.Logging.Directory = util.EnsureAbsolute(options.DataDirectory, options.Logging.Directory)
	if err := os.MkdirAll(options.Logging.Directory, 0o700); nil != err {
		return nil, err
	}

	return options, nil
}
