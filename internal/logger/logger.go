package logger

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

var (
	timeColor    = color.New(color.FgHiBlack)
	infoColor    = color.New(color.FgBlue)
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	debugColor   = color.New(color.FgCyan)
)

// debugEnabled is toggled once at startup from config.
var debugEnabled bool

// SetLevel applies the configured log level. Any level other than "debug"
// leaves Debug output off.
func SetLevel(level string) {
	debugEnabled = level == "debug"
}

func stamp() string {
	return timeColor.Sprintf("[%s]", time.Now().Format("15:04:05"))
}

// Info logs general information (blue).
func Info(message string, args ...interface{}) {
	fmt.Printf("%s %s\n", stamp(), infoColor.Sprintf(message, args...))
}

// Success logs a success (green).
func Success(message string, args ...interface{}) {
	fmt.Printf("%s %s\n", stamp(), successColor.Sprintf("✓ "+message, args...))
}

// Warning logs a warning (yellow).
func Warning(message string, args ...interface{}) {
	fmt.Printf("%s %s\n", stamp(), warningColor.Sprintf("⚠ "+message, args...))
}

// Error logs an error (red).
func Error(message string, args ...interface{}) {
	fmt.Printf("%s %s\n", stamp(), errorColor.Sprintf("✗ "+message, args...))
}

// Debug logs a debug message (cyan), only when enabled.
func Debug(message string, args ...interface{}) {
	if !debugEnabled {
		return
	}
	fmt.Printf("%s %s\n", stamp(), debugColor.Sprintf(message, args...))
}
