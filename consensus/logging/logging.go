/*
github.com/tcrain/consmsg - Binary wire messages for consensus nodes.
Copyright (C) 2020 The project authors - tcrain

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.

*/
/*
Basic logging functionality.
*/
package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tcrain/consmsg/config"
)

var log = logrus.New()

// setup the logging flags
func init() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000000"})
	log.SetLevel(toLogrusLevel(config.LoggingFmtLevel))
}

func toLogrusLevel(lvl config.LogFmtLevel) logrus.Level {
	switch lvl {
	case config.LOGERROR:
		return logrus.ErrorLevel
	case config.LOGWARNING:
		return logrus.WarnLevel
	case config.LOGINFO:
		return logrus.InfoLevel
	case config.LOGDEBUG:
		return logrus.DebugLevel
	default:
		panic("Invalid logging level")
	}
}

// SetLevel changes the logging level by name (error, warning, info, debug).
// An empty name keeps the current level.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(name))
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}

// Printf logs args accoring to format.
func Printf(format string, args ...interface{}) {
	switch config.LoggingType {
	case config.LOGRUS:
		log.Printf(format, args...)
	case config.FMT:
		fmt.Printf(format+"\n", args...)
	default:
		panic("Invalid logging type")
	}
}

// Print logs args.
func Print(args ...interface{}) {
	switch config.LoggingType {
	case config.LOGRUS:
		log.Print(args...)
	case config.FMT:
		fmt.Println(args...)
	default:
		panic("Invalid logging type")
	}
}

// Errorf logs an error args using format.
func Errorf(format string, args ...interface{}) {
	switch config.LoggingType {
	case config.LOGRUS:
		log.Errorf(format, args...)
	case config.FMT:
		fmt.Printf("ERR: "+format+"\n", args...)
	default:
		panic("Invalid logging type")
	}
}

// Error logs an error args.
func Error(args ...interface{}) {
	switch config.LoggingType {
	case config.LOGRUS:
		log.Error(args...)
	case config.FMT:
		fmt.Println("ERR: ", args)
	default:
		panic("Invalid logging type")
	}
}

// Warningf logs a warning args using format.
func Warningf(format string, args ...interface{}) {
	switch config.LoggingType {
	case config.LOGRUS:
		log.Warnf(format, args...)
	case config.FMT:
		fmt.Printf("WARN: "+format+"\n", args...)
	default:
		panic("Invalid logging type")
	}
}

// Warning logs a warning args.
func Warning(args ...interface{}) {
	switch config.LoggingType {
	case config.LOGRUS:
		log.Warn(args...)
	case config.FMT:
		fmt.Println("WARN: ", args)
	default:
		panic("Invalid logging type")
	}
}

// Infof logs an info message args using format.
func Infof(format string, args ...interface{}) {
	switch config.LoggingType {
	case config.LOGRUS:
		log.Infof(format, args...)
	case config.FMT:
		fmt.Printf("INFO: "+format+"\n", args...)
	default:
		panic("Invalid logging type")
	}
}

// Info logs an info message args.
func Info(args ...interface{}) {
	switch config.LoggingType {
	case config.LOGRUS:
		log.Info(args...)
	case config.FMT:
		fmt.Println("INFO: ", args)
	default:
		panic("Invalid logging type")
	}
}

// Debugf logs a debug message args using format.
func Debugf(format string, args ...interface{}) {
	switch config.LoggingType {
	case config.LOGRUS:
		log.Debugf(format, args...)
	case config.FMT:
		fmt.Printf("DEBUG: "+format+"\n", args...)
	default:
		panic("Invalid logging type")
	}
}

// WithFields returns an entry carrying fields, e.g. the message tag of a dropped buffer.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}
