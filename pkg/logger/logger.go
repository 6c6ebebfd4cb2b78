package logger

import (
	"fmt"
	"log"
	"strings"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	level  int
	prefix string
}

func NewLogger(level int) *defaultLogger {
	return &defaultLogger{level: level}
}

// WithPrefix returns a logger which writes the given prefix before every
// message, e.g. the name of the background component.
func (l *defaultLogger) WithPrefix(prefix string) *defaultLogger {
	return &defaultLogger{level: l.level, prefix: "[" + prefix + "] "}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	if l.level <= DEBUG {
		log.Printf("DEBUG "+l.prefix+msg+"\n", a...)
	}
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	if l.level <= INFO {
		log.Printf("INFO "+l.prefix+msg+"\n", a...)
	}
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	if l.level <= WARNING {
		log.Printf("WARN "+l.prefix+msg+"\n", a...)
	}
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	if l.level <= ERROR {
		log.Printf("ERROR "+l.prefix+msg+"\n", a...)
	}
}

// ParseLevel converts a level name in configuration files to its value.
func ParseLevel(s string) (int, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "warn", "warning":
		return WARNING, nil
	case "error":
		return ERROR, nil
	case "silence":
		return SILENCE, nil
	}

	return 0, fmt.Errorf("invalid log level %s", s)
}
