// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cpmech/dynearthsol/inp"
	"github.com/cpmech/dynearthsol/mesh"
	"github.com/cpmech/dynearthsol/sim"
)

// Exit codes, per spec.md §6.
const (
	exitOK          = 0
	exitBadUsage    = -1
	exitConfigError = 1
	exitIOError     = 2
	exitMesherError = 10
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dynearthsol <config.json>")
	fmt.Fprintln(os.Stderr, "  -h, --help    print this message")
}

func main() {
	os.Exit(run())
}

// run is separated from main so a deferred recover can still choose
// the process exit code (os.Exit bypasses deferred functions).
func run() (code int) {
	help := flag.Bool("h", false, "print usage")
	helpLong := flag.Bool("help", false, "print usage")
	flag.Usage = usage
	flag.Parse()

	if *help || *helpLong {
		usage()
		return exitOK
	}
	if flag.NArg() != 1 {
		usage()
		return exitBadUsage
	}
	fnamepath := flag.Arg(0)

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", r)
			if code == exitOK {
				code = exitConfigError
			}
		}
	}()

	cfg, err := inp.ReadConfig(fnamepath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return exitConfigError
	}

	dirout, err := filepath.Abs(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return exitIOError
	}
	if err := inp.InitLogFile(dirout, cfg.Sim.Modelname); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: cannot open log file: %v\n", err)
		return exitIOError
	}
	defer inp.FlushLog()

	mesher := mesh.NewStructuredMesher()

	var v *sim.Variables
	if cfg.Sim.IsRestarting {
		v, err = sim.Restart(cfg, mesher, 0, dirout)
		if err != nil {
			if inp.LogErr(err, "restart") {
				return exitIOError
			}
		}
	} else {
		v = sim.New(cfg, mesher, 0)
		if err := v.Init(); err != nil {
			if inp.LogErr(err, "init") {
				return exitMesherError
			}
		}
	}

	if err := v.Run(dirout); err != nil {
		inp.LogErr(err, "run")
		return exitIOError
	}

	return exitOK
}
