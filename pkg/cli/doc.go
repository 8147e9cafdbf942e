/*
Package cli provides the output, progress and signal helpers used by the
chronicle command.

Output Formatting:

Command results are rendered as aligned text, JSON or CSV. Results that
implement Tabular render as a table in text and CSV:

	formatter := cli.NewFormatter(cli.FormatText)
	if err := formatter.FormatTo(os.Stdout, summary); err != nil {
		return err
	}

Progress Reporting:

The loader reports parsed documents through a ProgressReporter:

	progress := cli.NewProgressReporter(os.Stderr)
	l.WithProgress(cli.LoaderProgress(progress))

Signal Handling:

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()
*/
package cli
