package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kursnet-xml-tool/internal/concurrency"
	"kursnet-xml-tool/internal/domain"
	"kursnet-xml-tool/internal/export"
	"kursnet-xml-tool/internal/session"
)

var (
	checkCSV      string
	checkWorkers  int
	checkGlossary bool
)

var checkCmd = &cobra.Command{
	Use:   "check [catalog...]",
	Short: "Report unbookable courses and content rule violations",
	Long: `Loads every catalog (concurrently), groups dates under their master
courses and evaluates the content rules per group:

  unbookable                    no dates, no own start date and no flexible start
  flexible-start-contradiction  date remarks say continuous intake, flag is off
  description-too-short         DESCRIPTION_LONG under 44 characters
  promotional-language          forbidden advertising terms in the description

Dates whose master course is missing are listed as orphans.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkCSV, "csv", "", "Also write all findings to this CSV file")
	checkCmd.Flags().IntVar(&checkWorkers, "workers", concurrency.DefaultOptions().MaxWorkers, "Catalogs loaded in parallel")
	checkCmd.Flags().BoolVar(&checkGlossary, "glossary", false, "Print the field glossary and exit")
}

type checkResult struct {
	ref     string
	reports []session.GroupReport
	orphans []*domain.CourseRecord
	records int
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if checkGlossary {
		writeGlossary(out)
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("no catalog given")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	results, errs := concurrency.ProcessParallel(ctx, args, concurrency.ParallelOptions{MaxWorkers: checkWorkers},
		func(ctx context.Context, _ int, ref string) (*checkResult, error) {
			s, err := openSession(ctx, ref)
			if err != nil {
				return nil, err
			}
			return &checkResult{
				ref:     ref,
				reports: s.Warnings(),
				orphans: s.Orphans(),
				records: len(s.Records()),
			}, nil
		})

	var rows []export.WarningRow
	for _, res := range results {
		if res == nil {
			continue
		}
		printCheck(out, res)
		rows = append(rows, export.WarningRows(filepath.Base(res.ref), res.reports)...)
	}
	for _, err := range errs {
		logger.Error("Catalog check failed", zap.Error(err))
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
	}

	if checkCSV != "" {
		if err := writeWarningsFile(checkCSV, rows); err != nil {
			return err
		}
		fmt.Fprintf(out, "findings written to %s\n", checkCSV)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d catalogs failed", len(errs), len(args))
	}
	return nil
}

func printCheck(w io.Writer, res *checkResult) {
	var findings int
	for _, r := range res.reports {
		findings += len(r.Warnings)
	}
	fmt.Fprintf(w, "%s: %d records, %d courses, %d findings\n", res.ref, res.records, len(res.reports), findings)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range res.reports {
		if len(r.Warnings) == 0 {
			continue
		}
		p := r.Group.Parent
		fmt.Fprintf(tw, "  %s\t%s\t(%d dates)\n", p.ProductID(), p.Title(), len(r.Group.Children))
		for _, warn := range r.Warnings {
			fmt.Fprintf(tw, "  \t- %s\t%s\n", warn.Rule, warn.Message)
		}
	}
	tw.Flush()

	if len(res.orphans) > 0 {
		ids := make([]string, 0, len(res.orphans))
		for _, o := range res.orphans {
			ref, _ := o.CourseReferenceID()
			ids = append(ids, o.ProductID()+" -> "+ref)
		}
		fmt.Fprintf(w, "  orphaned dates: %s\n", strings.Join(ids, ", "))
	}
}

func writeWarningsFile(path string, rows []export.WarningRow) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteWarningsCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
