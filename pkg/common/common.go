// Copyright 2023 Paolo Fabio Zaino
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

// Package common package is used to store common functions and variables
package common

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// InitLogger initializes the logger
func InitLogger(appName string) {
	log.SetOutput(os.Stdout)

	// Retrieve process PID
	pid := os.Getpid()

	// Retrieve process PPID
	ppid := os.Getppid()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = LocalhostStr
	}

	// create process instance name: <hostname>:<pid>:<ppid>
	processName := hostname + ":" + strconv.Itoa(pid) + ":" + strconv.Itoa(ppid)

	loggerPrefix = appName + " [" + processName + "]: "
	microServiceName = appName

	log.SetFlags(log.LstdFlags | log.Ldate | log.Ltime | log.Lmicroseconds)
}

// GetMicroServiceName returns the name passed to InitLogger
func GetMicroServiceName() string {
	return microServiceName
}

// UpdateLoggerConfig Updates the logger configuration
func UpdateLoggerConfig() {
	if GetDebugLevel() > DbgLvlNone {
		log.SetFlags(log.LstdFlags | log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags | log.Ldate | log.Ltime | log.Lmicroseconds)
	}
}

// SetDebugLevel allows to set the current debug level
func SetDebugLevel(dbgLvl DbgLevel) {
	if dbgLvl < DbgLvlNone {
		dbgLvl = DbgLvlNone
	}
	if dbgLvl > DbgLvlDebug5 {
		dbgLvl = DbgLvlDebug5
	}
	debugLevel.Store(int32(dbgLvl))
}

// SetDebugLevelFromString sets the debug level from its configuration name
// ("info", "debug", "debug1" ... "debug5"). It returns false for unknown names.
func SetDebugLevelFromString(name string) bool {
	lvl, ok := ParseDebugLevel(name)
	if !ok {
		return false
	}
	SetDebugLevel(lvl)
	return true
}

// ParseDebugLevel converts a level name into a DbgLevel.
func ParseDebugLevel(name string) (DbgLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info", "none", "0":
		return DbgLvlNone, true
	case "debug", "debug1", "1":
		return DbgLvlDebug1, true
	case "debug2", "2":
		return DbgLvlDebug2, true
	case "debug3", "3":
		return DbgLvlDebug3, true
	case "debug4", "4":
		return DbgLvlDebug4, true
	case "debug5", "5":
		return DbgLvlDebug5, true
	}
	return DbgLvlNone, false
}

// GetDebugLevel returns the value of the current debug level
func GetDebugLevel() DbgLevel {
	return DbgLevel(debugLevel.Load())
}

// DebugMsg is a function that prints debug information
func DebugMsg(dbgLvl DbgLevel, msg string, args ...interface{}) {
	// Fatal, Error, Warning and Info are always logged
	if dbgLvl <= DbgLvlInfo {
		log.Printf(loggerPrefix+msg, args...)
		if dbgLvl == DbgLvlFatal {
			os.Exit(1)
		}
		return
	}
	if dbgLvl > DbgLvlNone && GetDebugLevel() >= dbgLvl {
		log.Printf(loggerPrefix+msg, args...)
	}
}
