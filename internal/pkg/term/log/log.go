// Package log provides semdiff's console logging: a small set of leveled
// Print functions writing to package-level writers, rebuilt to the contract
// recovered from the teacher's surviving internal/pkg/term/log test files
// (its own non-test source did not survive the retrieval filter).
package log

import (
	"fmt"
	"io"
	"os"
)

var (
	// DiagnosticWriter receives Error/Warning/Debug/Success output —
	// anything that isn't the tool's primary result. Defaults to stderr.
	DiagnosticWriter io.Writer = os.Stderr

	// OutputWriter receives Info/Print output — the tool's primary result
	// (e.g. the summary reporter's counts). Defaults to stdout.
	OutputWriter io.Writer = os.Stdout
)

func PrintSuccess(args ...interface{}) { fmt.Fprint(DiagnosticWriter, successPrefix+" "+fmt.Sprint(args...)) }
func PrintSuccessln(args ...interface{}) {
	fmt.Fprintln(DiagnosticWriter, successPrefix+" "+fmt.Sprint(args...))
}
func PrintSuccessf(format string, args ...interface{}) {
	fmt.Fprintf(DiagnosticWriter, successPrefix+" "+format, args...)
}

func PrintError(args ...interface{}) { fmt.Fprint(DiagnosticWriter, errorPrefix+" "+fmt.Sprint(args...)) }
func PrintErrorln(args ...interface{}) {
	fmt.Fprintln(DiagnosticWriter, errorPrefix+" "+fmt.Sprint(args...))
}
func PrintErrorf(format string, args ...interface{}) {
	fmt.Fprintf(DiagnosticWriter, errorPrefix+" "+format, args...)
}

func PrintWarning(args ...interface{}) {
	fmt.Fprint(DiagnosticWriter, warningPrefix+" "+fmt.Sprint(args...))
}
func PrintWarningln(args ...interface{}) {
	fmt.Fprintln(DiagnosticWriter, warningPrefix+" "+fmt.Sprint(args...))
}
func PrintWarningf(format string, args ...interface{}) {
	fmt.Fprintf(DiagnosticWriter, warningPrefix+" "+format, args...)
}

func Print(args ...interface{})   { fmt.Fprint(OutputWriter, args...) }
func Println(args ...interface{}) { fmt.Fprintln(OutputWriter, args...) }
func Printf(format string, args ...interface{}) {
	fmt.Fprintf(OutputWriter, format, args...)
}

func PrintDebug(args ...interface{})   { fmt.Fprint(DiagnosticWriter, args...) }
func PrintDebugln(args ...interface{}) { fmt.Fprintln(DiagnosticWriter, args...) }
func PrintDebugf(format string, args ...interface{}) {
	fmt.Fprintf(DiagnosticWriter, format, args...)
}

// Errorln and Infoln are the two call shapes cli/engine code actually uses
// (matching cmd/copilot/main.go's log.Infoln/log.Errorln usage in the
// teacher): thin aliases over the Print family above for readability at call
// sites outside this package.
func Errorln(args ...interface{}) { PrintErrorln(args...) }
func Infoln(args ...interface{})  { Println(args...) }
