// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the defaults read from a configuration file. Command line
// flags override them.
//
// Example:
//
//	memory = 8192
//	verbose = 1
//	raw = true
//	ascii = true
//	debug = false
type Config struct {
	Memory  int  `toml:"memory"`
	Verbose int  `toml:"verbose"`
	Raw     bool `toml:"raw"`
	ASCII   bool `toml:"ascii"`
	Debug   bool `toml:"debug"`
}

func loadConfig(fileName string, cfg *Config) error {
	md, err := toml.DecodeFile(fileName, cfg)
	if err != nil {
		return errors.Wrapf(err, "%s: config", fileName)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return errors.Errorf("%s: unknown config key %q", fileName, u[0].String())
	}
	if cfg.Memory < 0 {
		return errors.Errorf("%s: negative memory size %d", fileName, cfg.Memory)
	}
	return nil
}
