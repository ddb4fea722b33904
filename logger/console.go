package logger

import (
	"fmt"
	"io"
	"os"
)

type console struct {
	print func(msg string)
}

var _ Logger = &console{}

// NewStdErr prints "[LEVEL] message" lines to stderr.
// Stdout is left to the record sinks.
func NewStdErr() Logger {
	return NewWriter(os.Stderr)
}

func NewWriter(w io.Writer) Logger {
	return &console{
		print: func(msg string) {
			_, _ = fmt.Fprintln(w, msg)
		},
	}
}

func (p *console) Debugf(format string, args ...any) {
	p.print(fmt.Sprintf("[DEBUG] "+format, args...))
}

func (p *console) Infof(format string, args ...any) {
	p.print(fmt.Sprintf("[INFO] "+format, args...))
}

func (p *console) Warnf(format string, args ...any) {
	p.print(fmt.Sprintf("[WARN] "+format, args...))
}

func (p *console) Errorf(format string, args ...any) {
	p.print(fmt.Sprintf("[ERROR] "+format, args...))
}
