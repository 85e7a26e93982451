package commands

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/calpage/pkg/commands/options"
	"tableflip.dev/calpage/pkg/runner/session"
	"tableflip.dev/calpage/pkg/store"
)

var (
	oo = &base.OutputOptions{}
	vo = &options.VerboseOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "calpage",
		Short: base.Wrap80("A paged month calendar on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddVerboseArg(cmd, vo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addPosition(topLevel)
	addMonth(topLevel)
	addSize(topLevel)
	addGrid(topLevel)
	addShow(topLevel)
	addSelect(topLevel)
	addClear(topLevel)
	addScroll(topLevel)
	addDrag(topLevel)
	addReset(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func output() string {
	if oo.JSON {
		return "json"
	}
	return ""
}

func openSession(ctx context.Context, so *options.SessionOptions) (*session.Session, error) {
	logger := log.New(io.Discard, "", 0)
	if vo.Verbose {
		logger = log.New(os.Stderr, "calpage: ", log.Ltime|log.Lmicroseconds)
	}
	return session.Open(ctx, session.Options{
		Name:   so.Name,
		Min:    so.Min,
		Max:    so.Max,
		Logger: logger,
	})
}

// addSessionArgs registers the session flags and completes session names.
func addSessionArgs(cmd *cobra.Command, so *options.SessionOptions) {
	options.AddSessionArgs(cmd, so)
	_ = cmd.RegisterFlagCompletionFunc("session", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return sessionCompletions(), cobra.ShellCompDirectiveNoFileComp
	})
}

func sessionCompletions() []string {
	p, err := store.Load(nil)
	if err != nil {
		return nil
	}
	return p.Sessions(context.Background())
}
