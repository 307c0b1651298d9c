// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"log"
	"os"

	"github.com/cpmech/gosl/io"
)

// logFile holds a handle to the run's log file.
var logFile *os.File

// InitLogFile initialises the run's logger, writing to dirout/fnamekey.log.
func InitLogFile(dirout, fnamekey string) (err error) {
	logFile, err = os.Create(io.Sf("%s/%s.log", dirout, fnamekey))
	if err != nil {
		return
	}
	log.SetOutput(logFile)
	return
}

// FlushLog closes the log file, flushing it to disk.
func FlushLog() {
	if logFile != nil {
		logFile.Close()
	}
}

// LogErr logs a non-nil error and reports whether the caller should stop.
func LogErr(err error, msg string) (stop bool) {
	if err != nil {
		log.Printf("ERROR: %s : %v", msg, err)
		return true
	}
	return false
}

// LogErrCond logs a formatted message when condition is true and
// reports whether the caller should stop.
func LogErrCond(condition bool, msg string, prm ...interface{}) (stop bool) {
	if condition {
		log.Printf("ERROR: "+msg, prm...)
		return true
	}
	return false
}
