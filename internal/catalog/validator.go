package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/opmodel/osinfo/internal/errors"
)

//go:embed schema/catalog.cue
var catalogSchemaCUE []byte

// ValidationError is one problem found in a catalog document.
type ValidationError struct {
	// Path locates the problem, e.g. oses[http://example.org/os].params.
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("catalog validation failed:\n")
	for _, err := range e {
		fmt.Fprintf(&sb, "  %s: %s\n", err.Path, err.Message)
	}
	return sb.String()
}

// Unwrap marks validation errors as oerrors.ErrValidation.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validator checks catalog documents against the embedded CUE schema and
// verifies that every reference points at a defined entity.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(catalogSchemaCUE, cue.Filename("catalog.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}
	catalog := schema.LookupPath(cue.ParsePath("#Catalog"))
	if !catalog.Exists() {
		return nil, fmt.Errorf("schema has no #Catalog definition")
	}

	return &Validator{
		ctx:    ctx,
		schema: catalog,
	}, nil
}

// Validate returns ValidationErrors describing every problem in doc, or
// nil.
func (v *Validator) Validate(doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	val := v.ctx.CompileBytes(data, cue.Filename("catalog.json"))
	if val.Err() != nil {
		return fmt.Errorf("compiling catalog: %w", val.Err())
	}

	var errs ValidationErrors
	seen := make(map[string]bool)
	if err := v.schema.Unify(val).Validate(cue.Concrete(true)); err != nil {
		for _, e := range cueerrors.Errors(err) {
			format, args := e.Msg()
			ve := ValidationError{
				Path:    describePath(doc, e.Path()),
				Message: fmt.Sprintf(format, args...),
			}
			if key := ve.Error(); !seen[key] {
				seen[key] = true
				errs = append(errs, ve)
			}
		}
	}
	errs = append(errs, checkReferences(doc)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// describePath replaces list indexes of top-level collections with the
// id of the entity they refer to.
func describePath(doc *Document, path []string) string {
	if len(path) < 2 {
		return strings.Join(path, ".")
	}
	idx, err := strconv.Atoi(path[1])
	if err != nil {
		return strings.Join(path, ".")
	}
	id := ""
	switch path[0] {
	case "devices":
		if idx < len(doc.Devices) {
			id = doc.Devices[idx].ID
		}
	case "platforms":
		if idx < len(doc.Platforms) {
			id = doc.Platforms[idx].ID
		}
	case "oses":
		if idx < len(doc.OSes) {
			id = doc.OSes[idx].ID
		}
	case "deployments":
		if idx < len(doc.Deployments) {
			id = doc.Deployments[idx].ID
		}
	case "datamaps":
		if idx < len(doc.Datamaps) {
			id = doc.Datamaps[idx].ID
		}
	}
	if id == "" {
		id = path[1]
	}
	head := fmt.Sprintf("%s[%s]", path[0], id)
	return strings.Join(append([]string{head}, path[2:]...), ".")
}

// checkReferences reports links, relationships and deployments that name
// entities which are only ever referenced and never declared.
func checkReferences(doc *Document) ValidationErrors {
	devices := make(map[string]bool)
	for _, d := range doc.Devices {
		devices[d.ID] = len(d.Params) > 0
	}
	platforms := make(map[string]bool)
	for _, p := range doc.Platforms {
		platforms[p.ID] = declared(&p)
	}
	oses := make(map[string]bool)
	for _, o := range doc.OSes {
		oses[o.ID] = declared(&o.Product) || len(o.Media) > 0 || len(o.Trees) > 0
	}

	var errs ValidationErrors
	undefined := func(path, kind, id string) {
		errs = append(errs, ValidationError{
			Path:    path,
			Message: fmt.Sprintf("references undefined %s %s", kind, id),
		})
	}
	checkLinks := func(path string, links []Link) {
		for _, l := range links {
			if !devices[l.Device] {
				undefined(path+".devices", "device", l.Device)
			}
		}
	}
	checkRelated := func(path string, related map[string][]string, known map[string]bool, kind string) {
		rels := make([]string, 0, len(related))
		for rel := range related {
			rels = append(rels, rel)
		}
		slices.Sort(rels)
		for _, rel := range rels {
			for _, id := range related[rel] {
				if !known[id] {
					undefined(path+".related."+rel, kind, id)
				}
			}
		}
	}

	for _, p := range doc.Platforms {
		path := fmt.Sprintf("platforms[%s]", p.ID)
		checkLinks(path, p.Devices)
		checkRelated(path, p.Related, platforms, "platform")
	}
	for _, o := range doc.OSes {
		path := fmt.Sprintf("oses[%s]", o.ID)
		checkLinks(path, o.Devices)
		checkRelated(path, o.Related, oses, "os")
		for _, d := range o.Drivers {
			for _, id := range d.Devices {
				if !devices[id] {
					undefined(path+".drivers", "device", id)
				}
			}
		}
	}
	for _, d := range doc.Deployments {
		path := fmt.Sprintf("deployments[%s]", d.ID)
		if d.OS != "" && !oses[d.OS] {
			undefined(path+".os", "os", d.OS)
		}
		if d.Platform != "" && !platforms[d.Platform] {
			undefined(path+".platform", "platform", d.Platform)
		}
		checkLinks(path, d.Devices)
	}
	return errs
}

func declared(p *Product) bool {
	return len(p.Params) > 0 || len(p.Related) > 0 || len(p.Devices) > 0
}
