// Package catalog converts a loaded database into a serializable document
// and validates, compares and encodes such documents.
package catalog

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/opmodel/osinfo/internal/core"
	"github.com/opmodel/osinfo/internal/output"
)

// Params holds entity parameters without the id.
type Params map[string][]string

// Entry is an entity with parameters.
type Entry struct {
	ID     string `json:"id"`
	Params Params `json:"params,omitempty"`
}

// Link is a device link. Links keep declaration order since the first
// match is the preferred device.
type Link struct {
	Device string `json:"device"`
	Params Params `json:"params,omitempty"`
}

// Product is an exported OS or platform.
type Product struct {
	Entry
	Related map[string][]string `json:"related,omitempty"`
	Devices []Link              `json:"devices,omitempty"`
}

// Driver is an exported device driver.
type Driver struct {
	Entry
	Devices []string `json:"devices,omitempty"`
}

// OS is an exported operating system.
type OS struct {
	Product
	Media     []Entry            `json:"media,omitempty"`
	Trees     []Entry            `json:"trees,omitempty"`
	Variants  []Entry            `json:"variants,omitempty"`
	Resources map[string][]Entry `json:"resources,omitempty"`
	Drivers   []Driver           `json:"drivers,omitempty"`
}

// Deployment is an exported deployment.
type Deployment struct {
	Entry
	OS       string `json:"os"`
	Platform string `json:"platform"`
	Devices  []Link `json:"devices,omitempty"`
}

// DatamapEntry is one translation of a datamap.
type DatamapEntry struct {
	In  string `json:"in"`
	Out string `json:"out"`
}

// Datamap is an exported datamap.
type Datamap struct {
	ID      string         `json:"id"`
	Entries []DatamapEntry `json:"entries,omitempty"`
}

// Document is the serializable form of a catalog. Entities are sorted by
// id so that documents of equal catalogs are equal.
type Document struct {
	Devices     []Entry      `json:"devices,omitempty"`
	Platforms   []Product    `json:"platforms,omitempty"`
	OSes        []OS         `json:"oses,omitempty"`
	Deployments []Deployment `json:"deployments,omitempty"`
	Datamaps    []Datamap    `json:"datamaps,omitempty"`
}

// Export builds the document for db.
func Export(db *core.DB) *Document {
	doc := &Document{}
	for _, d := range sortedByID(db.Devices().Elements()) {
		doc.Devices = append(doc.Devices, entry(d))
	}
	for _, p := range sortedByID(db.Platforms().Elements()) {
		doc.Platforms = append(doc.Platforms, product(&p.Product, p.DeviceLinks(nil)))
	}
	for _, o := range sortedByID(db.OSes().Elements()) {
		doc.OSes = append(doc.OSes, exportOS(o))
	}
	for _, d := range sortedByID(db.Deployments().Elements()) {
		dep := Deployment{
			Entry:   entry(d),
			Devices: links(d.DeviceLinks(nil)),
		}
		// Both are mirrored into os and platform params.
		delete(dep.Params, core.PropDeploymentOS)
		delete(dep.Params, core.PropDeploymentPlatform)
		if len(dep.Params) == 0 {
			dep.Params = nil
		}
		if d.OS() != nil {
			dep.OS = d.OS().ID()
		}
		if d.Platform() != nil {
			dep.Platform = d.Platform().ID()
		}
		doc.Deployments = append(doc.Deployments, dep)
	}
	for _, m := range sortedByID(db.Datamaps().Elements()) {
		dm := Datamap{ID: m.ID()}
		for _, e := range m.Entries() {
			dm.Entries = append(dm.Entries, DatamapEntry{In: e[0], Out: e[1]})
		}
		doc.Datamaps = append(doc.Datamaps, dm)
	}
	return doc
}

func exportOS(o *core.OS) OS {
	out := OS{Product: product(&o.Product, o.DeviceLinks(nil))}
	for _, m := range o.Media().Elements() {
		out.Media = append(out.Media, entry(m))
	}
	for _, t := range o.Trees().Elements() {
		out.Trees = append(out.Trees, entry(t))
	}
	for _, v := range o.Variants().Elements() {
		out.Variants = append(out.Variants, entry(v))
	}
	for _, kind := range core.ResourcesKinds {
		for _, r := range o.Resources(kind).Elements() {
			if out.Resources == nil {
				out.Resources = make(map[string][]Entry)
			}
			out.Resources[string(kind)] = append(out.Resources[string(kind)], entry(r))
		}
	}
	for _, d := range o.DeviceDrivers().Elements() {
		out.Drivers = append(out.Drivers, Driver{
			Entry:   entry(d),
			Devices: d.Devices().IDs(),
		})
	}
	return out
}

func product(p *core.Product, devs *core.List[*core.DeviceLink]) Product {
	out := Product{
		Entry:   entry(p),
		Devices: links(devs),
	}
	for _, rel := range core.Relationships {
		related := p.Related(rel)
		if len(related) == 0 {
			continue
		}
		if out.Related == nil {
			out.Related = make(map[string][]string)
		}
		for _, r := range related {
			out.Related[string(rel)] = append(out.Related[string(rel)], r.ID())
		}
	}
	return out
}

func entry(e core.Entity) Entry {
	out := Entry{ID: e.ID()}
	for _, key := range e.ParamKeys() {
		if key == core.PropID {
			continue
		}
		if out.Params == nil {
			out.Params = make(Params)
		}
		out.Params[key] = e.ParamValues(key)
	}
	return out
}

func links(l *core.List[*core.DeviceLink]) []Link {
	var out []Link
	for _, link := range l.Elements() {
		e := entry(link)
		out = append(out, Link{Device: link.Target().ID(), Params: e.Params})
	}
	return out
}

func sortedByID[T core.Entity](items []T) []T {
	slices.SortFunc(items, func(a, b T) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return items
}

// Marshal encodes doc as JSON or YAML.
func Marshal(doc *Document, format output.OutputFormat) ([]byte, error) {
	if format == output.FormatTable {
		format = output.FormatYAML
	}
	return output.Marshal(doc, format)
}

// ReadDocument reads a previously exported document. JSON and YAML are
// both accepted.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading exported catalog: %w", err)
	}
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &doc, nil
}

// IsDocumentPath reports whether path names an exported document rather
// than metadata.
func IsDocumentPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
