package log

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successPrefix = color.GreenString("✔ Success!")
	errorPrefix   = color.RedString("✘ Error!")
	warningPrefix = color.YellowString("Note:")
)

// Logger writes leveled, optionally colored console output to an injected
// writer — the instance form of the package-level Print* functions in log.go,
// used wherever a component needs its own destination instead of the
// process-wide DiagnosticWriter/OutputWriter pair (tests, most notably).
type Logger struct {
	w io.Writer
}

// New returns a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

func (l *Logger) Success(args ...interface{}) { fmt.Fprint(l.w, successPrefix+" "+fmt.Sprint(args...)) }
func (l *Logger) Successln(args ...interface{}) {
	fmt.Fprintln(l.w, successPrefix+" "+fmt.Sprint(args...))
}
func (l *Logger) Successf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, successPrefix+" "+format, args...)
}

func (l *Logger) Error(args ...interface{}) { fmt.Fprint(l.w, errorPrefix+" "+fmt.Sprint(args...)) }
func (l *Logger) Errorln(args ...interface{}) {
	fmt.Fprintln(l.w, errorPrefix+" "+fmt.Sprint(args...))
}
func (l *Logger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, errorPrefix+" "+format, args...)
}

func (l *Logger) Warning(args ...interface{}) {
	fmt.Fprint(l.w, warningPrefix+" "+fmt.Sprint(args...))
}
func (l *Logger) Warningln(args ...interface{}) {
	fmt.Fprintln(l.w, warningPrefix+" "+fmt.Sprint(args...))
}
func (l *Logger) Warningf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, warningPrefix+" "+format, args...)
}

func (l *Logger) Info(args ...interface{})   { fmt.Fprint(l.w, args...) }
func (l *Logger) Infoln(args ...interface{}) { fmt.Fprintln(l.w, args...) }
func (l *Logger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}

func (l *Logger) Debug(args ...interface{})   { fmt.Fprint(l.w, color.New(color.Faint).Sprint(fmt.Sprint(args...))) }
func (l *Logger) Debugln(args ...interface{}) { fmt.Fprintln(l.w, color.New(color.Faint).Sprint(fmt.Sprint(args...))) }
func (l *Logger) Debugf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, color.New(color.Faint).Sprint(fmt.Sprintf(format, args...)))
}
