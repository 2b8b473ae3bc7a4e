// Package cmdutil provides shared command utilities for osinfo subcommands.
// It centralizes flag groups, condition parsing, catalog loading and output
// helpers.
package cmdutil

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/osinfo/internal/core"
	oerrors "github.com/opmodel/osinfo/internal/errors"
)

// QueryFlags holds flags for commands that list entities.
type QueryFlags struct {
	Sort   string
	Fields []string
}

// AddTo registers the query flags on the given cobra command.
func (f *QueryFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Sort, "sort", "s", "",
		"Property to sort by (default: first column)")
	cmd.Flags().StringSliceVarP(&f.Fields, "fields", "f", nil,
		"Comma separated properties to display (default: the common ones)")
}

// Validate checks that the sort key and fields are among labels.
func (f *QueryFlags) Validate(labels []string) error {
	if f.Sort != "" && !slices.Contains(labels, f.Sort) {
		return unknownProperty(f.Sort, labels)
	}
	for _, field := range f.Fields {
		if !slices.Contains(labels, field) {
			return unknownProperty(field, labels)
		}
	}
	return nil
}

// Columns returns the selected fields, or defaults when none were given.
func (f *QueryFlags) Columns(defaults []string) []string {
	if len(f.Fields) == 0 {
		return defaults
	}
	return f.Fields
}

// SortKey returns the sort property, defaulting to the first label.
func (f *QueryFlags) SortKey(labels []string) string {
	if f.Sort != "" {
		return f.Sort
	}
	return labels[0]
}

// ParseConditions builds a filter from KEY=VALUE arguments. When valid is
// non-empty every key must be one of its entries.
func ParseConditions(args, valid []string) (*core.Filter, error) {
	filter := core.NewFilter()
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, oerrors.NewValidationError(
				"syntax error in condition, expecting KEY=VALUE", "", arg, "")
		}
		if len(valid) > 0 && !slices.Contains(valid, key) {
			return nil, unknownProperty(key, valid)
		}
		filter.AddConstraint(key, value)
	}
	return filter, nil
}

func unknownProperty(name string, valid []string) error {
	return oerrors.NewValidationError(
		fmt.Sprintf("unknown property name %s", name), "", name,
		fmt.Sprintf("Valid properties: %s", strings.Join(valid, ", ")))
}
