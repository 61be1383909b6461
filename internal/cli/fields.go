package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/labelforge/labelforge/pkg/record"
)

// newFieldsCmd creates the fields command, which lists the field names an
// input file offers for selection.
func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields [file]",
		Short: "List the fields an input file offers for label text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(args[0])
		},
	}
}

func runFields(input string) error {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	src, err := record.ReadCSV(in)
	if err != nil {
		return err
	}

	fmt.Println(styleTitle.Render(fmt.Sprintf("Fields in %s", input)))
	for _, f := range src.Fields() {
		marker := "  "
		note := ""
		if f == record.FieldID {
			marker = styleSuccess.Render("* ")
			note = styleDim.Render("  (label identifier, required)")
		}
		fmt.Println(marker + styleHighlight.Render(f) + note)
	}
	fmt.Println(styleDim.Render(fmt.Sprintf("%d record(s)", src.Len())))

	if !src.HasField(record.FieldID) {
		printWarning("Input has no %q field; every record will be skipped", record.FieldID)
	}
	return nil
}
