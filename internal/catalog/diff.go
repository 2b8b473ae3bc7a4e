package catalog

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"
)

// DiffResult describes the differences between two catalog documents.
type DiffResult struct {
	// Added entities exist only in the second document.
	Added []string `json:"added,omitempty"`

	// Removed entities exist only in the first document.
	Removed []string `json:"removed,omitempty"`

	// Modified entities exist in both documents with different content.
	Modified []string `json:"modified,omitempty"`

	// Report is the rendered dyff report, empty when nothing changed.
	Report string `json:"-"`
}

// IsEmpty returns true if there are no changes.
func (r *DiffResult) IsEmpty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Modified) == 0
}

// Summary returns a summary string of changes.
func (r *DiffResult) Summary() string {
	if r.IsEmpty() {
		return "No changes"
	}

	parts := make([]string, 0, 3)
	if len(r.Added) > 0 {
		parts = append(parts, fmt.Sprintf("%d added", len(r.Added)))
	}
	if len(r.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", len(r.Removed)))
	}
	if len(r.Modified) > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", len(r.Modified)))
	}

	return strings.Join(parts, ", ")
}

// Diff compares two documents entity by entity and renders a dyff report
// of the whole change.
func Diff(from, to *Document, useColor bool) (*DiffResult, error) {
	result := &DiffResult{}

	before, after := index(from), index(to)
	for key, old := range before {
		cur, ok := after[key]
		switch {
		case !ok:
			result.Removed = append(result.Removed, key)
		case !reflect.DeepEqual(old, cur):
			result.Modified = append(result.Modified, key)
		}
	}
	for key := range after {
		if _, ok := before[key]; !ok {
			result.Added = append(result.Added, key)
		}
	}
	slices.Sort(result.Added)
	slices.Sort(result.Removed)
	slices.Sort(result.Modified)

	if result.IsEmpty() {
		return result, nil
	}

	fromYAML, err := yaml.Marshal(from)
	if err != nil {
		return nil, fmt.Errorf("serializing first catalog: %w", err)
	}
	toYAML, err := yaml.Marshal(to)
	if err != nil {
		return nil, fmt.Errorf("serializing second catalog: %w", err)
	}
	report, err := diffYAML(fromYAML, toYAML, useColor)
	if err != nil {
		return nil, err
	}
	result.Report = report
	return result, nil
}

// index keys every entity of doc by kind and id.
func index(doc *Document) map[string]any {
	out := make(map[string]any)
	for _, d := range doc.Devices {
		out["device/"+d.ID] = d
	}
	for _, p := range doc.Platforms {
		out["platform/"+p.ID] = p
	}
	for _, o := range doc.OSes {
		out["os/"+o.ID] = o
	}
	for _, d := range doc.Deployments {
		out["deployment/"+d.ID] = d
	}
	for _, m := range doc.Datamaps {
		out["datamap/"+m.ID] = m
	}
	return out
}

func diffYAML(from, to []byte, useColor bool) (string, error) {
	fromInput, err := parseYAMLInput("from", from)
	if err != nil {
		return "", fmt.Errorf("parsing first catalog: %w", err)
	}
	toInput, err := parseYAMLInput("to", to)
	if err != nil {
		return "", fmt.Errorf("parsing second catalog: %w", err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing catalogs: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}
	return renderDyffReport(report, useColor)
}

func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
