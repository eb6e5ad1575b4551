package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quote-calculator/core/pricing"
	"quote-calculator/core/submission"
	"quote-calculator/core/types"
	"quote-calculator/core/validation"
	qerrors "quote-calculator/internal/errors"
)

var (
	quoteService    string
	quotePages      int
	quoteTimeline   int
	quoteEcommerce  string
	quoteDesignType string
	quoteRevisions  int
	quoteWordCount  int
	quoteSEO        string
	quoteFormat     string
)

// quoteCmd prices one request locally
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a request without submitting it",
	Long: `Price a quote request with the same rules the server applies.

Examples:
  quote-calculator quote --service web --pages 5 --timeline 2 --ecommerce yes
  quote-calculator quote --service design --design-type logo --revisions 3
  quote-calculator quote --service writing --word-count 250 --seo no --format json`,
	RunE: runQuote,
}

func init() {
	f := quoteCmd.Flags()
	f.StringVarP(&quoteService, "service", "s", "", "service kind (web, design, writing)")
	f.IntVar(&quotePages, "pages", 0, "number of pages (web)")
	f.IntVar(&quoteTimeline, "timeline", 1, "timeline, 1 to 3 (web)")
	f.StringVar(&quoteEcommerce, "ecommerce", "", "e-commerce needed, yes or no (web)")
	f.StringVar(&quoteDesignType, "design-type", "", "logo, branding or print (design)")
	f.IntVar(&quoteRevisions, "revisions", 0, "number of revisions (design)")
	f.IntVar(&quoteWordCount, "word-count", 0, "word count, at least 100 (writing)")
	f.StringVar(&quoteSEO, "seo", "", "SEO optimization, yes or no (writing)")
	f.StringVarP(&quoteFormat, "format", "f", "cli", "output format (cli, json)")
}

// quoteForm maps the flags for the selected kind onto form fields
func quoteForm(cmd *cobra.Command) validation.Form {
	form := validation.Form{validation.FieldService: quoteService}
	set := func(flag, field, value string) {
		if cmd.Flags().Changed(flag) {
			form[field] = value
		}
	}
	set("pages", validation.FieldPages, strconv.Itoa(quotePages))
	set("ecommerce", validation.FieldEcommerce, quoteEcommerce)
	set("design-type", validation.FieldDesignType, quoteDesignType)
	set("revisions", validation.FieldRevisions, strconv.Itoa(quoteRevisions))
	set("word-count", validation.FieldWordCount, strconv.Itoa(quoteWordCount))
	set("seo", validation.FieldSEO, quoteSEO)
	form[validation.FieldTimeline] = strconv.Itoa(quoteTimeline)
	return form
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	coordinator := submission.NewCoordinator(nil, pricing.NewEngine(), nil, submission.Options{})
	q, err := coordinator.Estimate(quoteForm(cmd))

	out := cmd.OutOrStdout()
	if quoteFormat == "json" {
		return printQuoteJSON(out, q, err)
	}
	printQuote(out, cfg.Display.CurrencyPrefix, q, err)
	if err != nil {
		return fmt.Errorf("request not priced: %s", qerrors.UserMessage(err))
	}
	return nil
}

func printQuote(out io.Writer, prefix string, q types.Quote, err error) {
	if err != nil {
		red := color.New(color.FgRed, color.Bold)
		red.Fprintf(out, "✗ %s\n", qerrors.UserMessage(err))
		if q.Rejection != types.RejectionNone {
			fmt.Fprintf(out, "  reason: %s\n", q.Rejection)
		}
		return
	}

	label := color.New(color.Bold).Sprint(q.Kind.Label())
	amount := color.New(color.FgGreen, color.Bold).Sprintf("%s%s", prefix, q.Amount.String())
	fmt.Fprintf(out, "%s: %s\n", label, amount)
}

func printQuoteJSON(out io.Writer, q types.Quote, err error) error {
	result := map[string]interface{}{
		"success": err == nil,
		"service": q.Kind,
	}
	if err != nil {
		result["message"] = qerrors.UserMessage(err)
		if q.Rejection != types.RejectionNone {
			result["reason"] = q.Rejection
		}
	} else {
		result["quote"] = json.Number(q.Amount.String())
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
