package cmdutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/opmodel/osinfo/internal/catalog"
	"github.com/opmodel/osinfo/internal/config"
	"github.com/opmodel/osinfo/internal/output"
)

// WriteStructured marshals v as JSON or YAML and writes it to w.
func WriteStructured(w io.Writer, v any, format output.OutputFormat) error {
	data, err := output.Marshal(v, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// PrintValidationError prints a validation failure in a user-friendly
// format. Schema errors are listed one per line below a summary naming
// source. Other errors fall back to the standard key-value log format.
func PrintValidationError(w io.Writer, msg, source string, err error) {
	var catErrs catalog.ValidationErrors
	var cfgErrs config.ValidationErrors

	switch {
	case errors.As(err, &catErrs):
		printSummary(w, msg, source, len(catErrs))
		for _, e := range catErrs {
			fmt.Fprintf(w, "  %s: %s\n", e.Path, e.Message)
		}
	case errors.As(err, &cfgErrs):
		printSummary(w, msg, source, len(cfgErrs))
		for _, e := range cfgErrs {
			fmt.Fprintf(w, "  %s: %s\n", e.Field, e.Message)
		}
	default:
		output.Error(msg, "error", err)
	}
}

func printSummary(w io.Writer, msg, source string, count int) {
	fmt.Fprintf(w, "Error: %s\n", msg)
	if source != "" {
		fmt.Fprintf(w, "  Source: %s\n", source)
	}
	fmt.Fprintf(w, "  Problems: %d\n\n", count)
}
