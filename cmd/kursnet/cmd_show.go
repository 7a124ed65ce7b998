package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"kursnet-xml-tool/internal/domain"
	"kursnet-xml-tool/internal/export"
)

var (
	showFormat string
	showID     string
	showTree   bool
)

var showCmd = &cobra.Command{
	Use:   "show <catalog>",
	Short: "Print course records as YAML or JSON, or the course/date tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", export.FormatYAML, "Output format: yaml or json")
	showCmd.Flags().StringVar(&showID, "id", "", "Only print the record with this PRODUCT_ID")
	showCmd.Flags().BoolVar(&showTree, "tree", false, "Print master courses with their dates instead of records")
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	s, err := openSession(ctx, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if showTree {
		printTree(out, s.Groups())
		return nil
	}

	records := s.Records()
	if showID != "" {
		r, err := s.Record(showID)
		if err != nil {
			return err
		}
		records = []*domain.CourseRecord{r}
	}
	return export.WriteRecords(out, records, showFormat)
}

func printTree(w io.Writer, groups []domain.Group) {
	for _, g := range groups {
		p := g.Parent
		flex := ""
		if p.FlexibleStart() {
			flex = " [flexible start]"
		}
		fmt.Fprintf(w, "%s  %s%s\n", p.ProductID(), p.Title(), flex)
		for _, c := range g.Children {
			end := ""
			if e := c.ServiceDate().EndDate; e != nil {
				end = *e
			}
			fmt.Fprintf(w, "  %-10s %s .. %s\n", domain.ShortChildID(c.ProductID()), c.StartDate(), end)
		}
	}
}
