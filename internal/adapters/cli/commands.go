package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/core/usecase"
)

func newExtractCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <source>",
		Short: "Print the plain text extracted from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := deps.Source.FetchText(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("extract %s: %w", args[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newScoreCmd(deps Deps) *cobra.Command {
	var (
		query    string
		maxWords int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "score <source>",
		Short: "Score a document against a query and show its best matching sentence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("--query is required")
			}
			text, err := deps.Source.FetchText(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch %s: %w", args[0], err)
			}
			result := deps.Scorer.Score(text, query, maxWords)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "score: %.2f\nmatch: %s\n", result.Score, result.Match)
			return err
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Query to score the document against")
	cmd.Flags().IntVar(&maxWords, "max-words", usecase.DefaultScoreMaxWords, "Word budget of the printed match")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func newSummarizeCmd(deps Deps) *cobra.Command {
	var (
		sentences int
		maxWords  int
	)
	cmd := &cobra.Command{
		Use:   "summarize <source>",
		Short: "Print an extractive summary of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := deps.Source.FetchText(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch %s: %w", args[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), deps.Summarizer.Summarize(text, sentences, maxWords))
			return err
		},
	}
	cmd.Flags().IntVarP(&sentences, "sentences", "n", usecase.DefaultSummarySentences, "Number of sentences to keep")
	cmd.Flags().IntVar(&maxWords, "max-words", usecase.DefaultSummaryMaxWords, "Word budget of the summary")
	return cmd
}

func newMatchCmd(deps Deps) *cobra.Command {
	var (
		query     string
		itemsPath string
		topN      int
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank catalog items from a JSON file by similarity to a query",
		Long: `match reads a JSON array of catalog items (type, id, title, secondary_text, ...)
from --items, or from stdin when --items is "-", and prints the best matches.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := readItems(cmd.InOrStdin(), itemsPath)
			if err != nil {
				return err
			}
			ranked := deps.Matcher.Match(items, query, topN)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), ranked)
			}
			return printItems(cmd.OutOrStdout(), ranked)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Query to match items against")
	cmd.Flags().StringVar(&itemsPath, "items", "-", "Path of the JSON item list, - for stdin")
	cmd.Flags().IntVar(&topN, "top", usecase.DefaultRecommendTopN, "Number of items to print")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func readItems(stdin io.Reader, path string) ([]domain.CatalogItem, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open items: %w", err)
		}
		defer f.Close()
		r = f
	}

	var items []domain.CatalogItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

func printItems(w io.Writer, items []domain.CatalogItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "no matches")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tID\tTITLE\tUPLOADER")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", item.Type, item.ID, item.Title, item.Uploader)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
