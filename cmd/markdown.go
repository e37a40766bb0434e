package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/capgains/logger"
	"github.com/mattn/go-isatty"
)

// printMarkdown writes md to stdout, styled for the terminal when stdout is one.
func printMarkdown(md string, plain bool) {
	if plain || stdout != os.Stdout || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	logger.L().Warn().Err(err).Msg("could not style markdown, printing it raw")
	fmt.Fprint(stdout, md)
}
