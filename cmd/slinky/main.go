package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/arthur-debert/slinky/internal/cli"
	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/ui/styles"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.Default().Get("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))

		details := errors.GetErrorDetails(err)
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", k, details[k])
		}
		os.Exit(1)
	}
}
