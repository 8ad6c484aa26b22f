package util

import (
	"fmt"
	"log"
	"os"
	"time"
)

// --- COLORS ---
var (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	White  = "\033[37m"
)

type Logger struct {
	std *log.Logger
}

func New() *Logger {
	return &Logger{
		std: log.New(os.Stdout, "", 0), // timestamps are printed by hand
	}
}

func (l *Logger) Info(instance, message string) {
	l.printf(Cyan, "INFO", instance, message)
}

func (l *Logger) Warn(instance, message string) {
	l.printf(Yellow, "WARN", instance, message)
}

func (l *Logger) Error(instance, message string, err error) {
	if err != nil {
		message = message + ": " + err.Error()
	}
	l.printf(Red, "ERROR", instance, message)
}

func (l *Logger) Fatal(instance, message string, err error) {
	l.Error(instance, message, err)
	os.Exit(1)
}

func (l *Logger) OK(instance, message string) {
	l.printf(Green, "OK", instance, message)
}

func (l *Logger) printf(color, level, instance, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.std.Printf("%s %s%-5s%s | %-28s | %s\n",
		timestamp, color, level, Reset, instance, message)
}

// HTTP writes a single access-log line per handled request.
func (l *Logger) HTTP(status int, elapsed time.Duration, remote, method, path string) {
	l.std.Printf("|%s| %7s | %-20s | %s %s\n",
		paintStatus(status), elapsed, remote, paintMethod(method), path)
}

func paintMethod(method string) string {
	switch method {
	case "GET":
		return Blue + fmt.Sprintf("%-6s", method) + Reset
	case "POST":
		return Green + fmt.Sprintf("%-6s", method) + Reset
	case "PUT", "PATCH":
		return Purple + fmt.Sprintf("%-6s", method) + Reset
	case "DELETE":
		return Red + fmt.Sprintf("%-6s", method) + Reset
	default:
		return White + fmt.Sprintf("%-6s", method) + Reset
	}
}

func paintStatus(code int) string {
	switch {
	case code >= 200 && code < 300:
		return Green + fmt.Sprintf("%d", code) + Reset
	case code >= 300 && code < 400:
		return Cyan + fmt.Sprintf("%d", code) + Reset
	case code >= 400 && code < 500:
		return Yellow + fmt.Sprintf("%d", code) + Reset
	default:
		return Red + fmt.Sprintf("%d", code) + Reset
	}
}
