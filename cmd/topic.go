package cmd

import (
	"context"
	"flag"

	"github.com/etnz/capgains/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

type topicCmd struct {
	plain bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `topic [<topic>...]

Show documentation for the given topics, "*" for all of them.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "do not style the markdown output")
}

func (c *topicCmd) predictArgs() complete.Predictor {
	topics, _ := docs.GetAllTopics()
	return predict.Set(append(topics, "readme"))
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return failure("Error reading doc: %v", err)
	}
	printMarkdown(doc, c.plain)

	return subcommands.ExitSuccess
}
