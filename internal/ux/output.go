package ux

import (
	"fmt"
	"time"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// StageHeader prints a timestamped workflow stage header.
func StageHeader(name, detail string) {
	desc := ""
	if detail != "" {
		desc = fmt.Sprintf(" — %s", detail)
	}
	fmt.Printf("\n%s[%s]%s %s══ %s%s ══%s\n", Dim, timestamp(), Reset, Cyan, name, desc, Reset)
}

// StageComplete prints a stage completion message.
func StageComplete(name string) {
	fmt.Printf("%s[%s]%s  %s✓ %s%s\n", Dim, timestamp(), Reset, Green, name, Reset)
}

// StageFail prints a stage failure message.
func StageFail(name, errMsg string) {
	fmt.Printf("%s[%s]%s  %s✗ %s failed: %s%s\n", Dim, timestamp(), Reset, Red, name, errMsg, Reset)
}

// Warn prints a non-fatal warning line.
func Warn(msg string) {
	fmt.Printf("%s[%s]%s  %s! %s%s\n", Dim, timestamp(), Reset, Yellow, msg, Reset)
}

// Info prints a dim informational line.
func Info(msg string) {
	fmt.Printf("%s[%s]%s  %s%s%s\n", Dim, timestamp(), Reset, Dim, msg, Reset)
}

// Success prints the final success message with the persisted document path.
func Success(ticket, path string) {
	fmt.Printf("\n%s[%s]%s  %s%s══ %s done — %s ══%s\n\n",
		Dim, timestamp(), Reset, Bold, Green, ticket, path, Reset)
}
