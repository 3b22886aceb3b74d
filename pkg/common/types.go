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

import "sync/atomic"

// DbgLevel is an enum to represent the debug level type
type DbgLevel int

// Levels below DbgLvlNone are always logged, levels above it only when the
// current debug level is equal or higher.
const (
	// DbgLvlFatal logs and then exits the program!
	DbgLvlFatal DbgLevel = iota - 4
	// DbgLvlError is the error level
	DbgLvlError
	// DbgLvlWarn is the warning level
	DbgLvlWarn
	// DbgLvlInfo is the info level
	DbgLvlInfo
	// DbgLvlNone disables debug messages (default)
	DbgLvlNone
	// DbgLvlDebug1 is the first debug level
	DbgLvlDebug1
	DbgLvlDebug2
	DbgLvlDebug3
	DbgLvlDebug4
	// DbgLvlDebug5 is the most verbose level (lexer traces)
	DbgLvlDebug5
)

// DbgLvlDebug is an alias of DbgLvlDebug1
const DbgLvlDebug = DbgLvlDebug1

var (
	debugLevel       atomic.Int32
	loggerPrefix     string
	microServiceName string
)
