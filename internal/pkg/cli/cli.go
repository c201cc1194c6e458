// Package cli contains semdiff's cobra subcommands.
package cli

// actionCommand is the interface every semdiff subcommand that does real
// work implements, following the teacher's internal/pkg/cli.actionCommand
// shape. Ask is dropped from the teacher's four-method interface: a
// one-shot batch comparison tool takes two tree paths and a config bundle
// up front, so there is no missing-flag interactive prompt step to drive.
type actionCommand interface {
	Validate() error
	Execute() error
}
