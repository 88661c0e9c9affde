// Package logging provides thin leveled wrappers over the standard logger.
package logging

import "log"

func Info(msg string, args ...any) {
	log.Printf("[INFO] "+msg, args...)
}

func Error(msg string, args ...any) {
	log.Printf("[ERROR] "+msg, args...)
}

func Debug(msg string, args ...any) {
	log.Printf("[DEBUG] "+msg, args...)
}

func Cache(msg string, args ...any) {
	log.Printf("[CACHE] "+msg, args...)
}

func Fetch(msg string, args ...any) {
	log.Printf("[FETCH] "+msg, args...)
}

func DB(msg string, args ...any) {
	log.Printf("[DB] "+msg, args...)
}
