// Package cli is the offline docengine command line: it runs extraction,
// scoring, summarizing and matching without the API, database or broker.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/kirillkom/lrhub/internal/core/ports"
	"github.com/kirillkom/lrhub/internal/core/usecase"
)

type Deps struct {
	Source     ports.TextSource
	Scorer     *usecase.RelevanceScorer
	Summarizer *usecase.Summarizer
	Matcher    *usecase.CorpusMatcher
}

func NewRootCommand(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:          "docengine",
		Short:        "Score, summarize and match learning resources from the command line",
		SilenceUsage: true,
		Long: `docengine runs the document engine against local files or URLs.
Text is extracted from PDF, spreadsheet and plain-text files.`,
	}
	root.AddCommand(
		newExtractCmd(deps),
		newScoreCmd(deps),
		newSummarizeCmd(deps),
		newMatchCmd(deps),
	)
	return root
}
