package main

import "log"

// debugEnabled gates verbose logging; set from the -debug flag at startup.
var debugEnabled bool

// debugLog logs a formatted message when debug logging is enabled
func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf(format, args...)
	}
}
