// Copyright 2026 The netfilters Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package flag

import (
	"errors"
	"io"

	"github.com/spf13/pflag"

	"github.com/netfilters/netfilters/pkg/log"
)

type levelVal log.Level

func (v *levelVal) Set(val string) error {
	lvl, err := log.ParseLevel(val)
	if err != nil {
		return err
	}
	*v = levelVal(lvl)
	return nil
}

func (v *levelVal) Type() string   { return "level" }
func (v *levelVal) String() string { return log.Level(*v).String() }

var errUnknownFormat = errors.New("unknown format, expected human or json")

type formatVal string

func (v *formatVal) Set(val string) error {
	switch val {
	case "human", "json":
		*v = formatVal(val)
		return nil
	default:
		return errUnknownFormat
	}
}

func (v *formatVal) Type() string   { return "format" }
func (v *formatVal) String() string { return string(*v) }

// LogFlags holds the logging flags shared by the command line tools.
type LogFlags struct {
	level  levelVal
	format formatVal
}

// Register registers the logging flags on flagSet. Unless overridden on the
// command line, errors are logged in human readable form.
func (f *LogFlags) Register(flagSet *pflag.FlagSet) {
	f.level = levelVal(log.ErrorLevel)
	f.format = "human"
	flagSet.Var(&f.level, "log.level", "Console logging level (debug|info|error)")
	flagSet.Var(&f.format, "log.format", "Console logging format (human|json)")
}

// Config returns the logging configuration described by the flags.
func (f *LogFlags) Config() log.Config {
	cfg := log.Config{
		Console: log.ConsoleConfig{
			Level:  log.Level(f.level).String(),
			Format: string(f.format),
		},
	}
	cfg.InitDefaults()
	return cfg
}

// Setup sets up the global logger to write to w.
func (f *LogFlags) Setup(w io.Writer) error {
	return log.Setup(f.Config(), log.WithOutput(w))
}
