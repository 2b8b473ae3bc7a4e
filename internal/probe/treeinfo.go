package probe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/opmodel/osinfo/internal/core"
	oerrors "github.com/opmodel/osinfo/internal/errors"
)

// treeinfoNames are the file names a tree may publish its description
// under, in lookup order.
var treeinfoNames = []string{".treeinfo", "treeinfo"}

// ReadTreeinfo parses a .treeinfo description. The [general] section
// provides family, variant, version and arch. Newer files use [release]
// and [tree] instead, which are honoured when [general] is absent. Boot
// image paths come from the [images-<arch>] section.
func ReadTreeinfo(r io.Reader) (*core.Tree, error) {
	sections, err := parseINI(r)
	if err != nil {
		return nil, err
	}

	general := sections["general"]
	if general == nil {
		general = map[string]string{
			"family":  sections["release"]["name"],
			"version": sections["release"]["version"],
			"variant": sections["variant"]["name"],
			"arch":    sections["tree"]["arch"],
		}
	}
	if general["family"] == "" && general["version"] == "" && general["arch"] == "" {
		return nil, errors.New("treeinfo has no general or release section")
	}

	arch := general["arch"]
	t := core.NewTree("", arch)
	for key, prop := range map[string]string{
		"family":  core.PropTreeTreeinfoFamily,
		"variant": core.PropTreeTreeinfoVariant,
		"version": core.PropTreeTreeinfoVersion,
		"arch":    core.PropTreeTreeinfoArch,
	} {
		if v := general[key]; v != "" {
			t.SetParam(prop, v)
		}
	}

	if images := sections["images-"+arch]; images != nil {
		for key, prop := range map[string]string{
			"kernel":   core.PropTreeKernel,
			"initrd":   core.PropTreeInitrd,
			"boot.iso": core.PropTreeBootISO,
		} {
			if v := images[key]; v != "" {
				t.SetParam(prop, v)
			}
		}
	}
	return t, nil
}

// ReadTreeinfoDir reads the treeinfo file at the top of an installation
// tree.
func ReadTreeinfoDir(dir string) (*core.Tree, error) {
	for _, name := range treeinfoNames {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		t, err := ReadTreeinfo(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		t.SetParam(core.PropTreeURL, dir)
		return t, nil
	}
	return nil, oerrors.NewNotFoundError("no treeinfo file in tree", dir,
		"An installation tree publishes .treeinfo at its top level")
}

// parseINI reads a minimal INI file into lower-cased section and key
// names. Comments start with '#' or ';'.
func parseINI(r io.Reader) (map[string]map[string]string, error) {
	sections := make(map[string]map[string]string)
	var current map[string]string

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || text[0] == ';' {
			continue
		}
		if text[0] == '[' {
			if !strings.HasSuffix(text, "]") {
				return nil, fmt.Errorf("line %d: unterminated section header", line)
			}
			name := strings.ToLower(strings.TrimSpace(text[1 : len(text)-1]))
			current = sections[name]
			if current == nil {
				current = make(map[string]string)
				sections[name] = current
			}
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected key = value", line)
		}
		if current == nil {
			return nil, fmt.Errorf("line %d: key outside of a section", line)
		}
		current[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading treeinfo: %w", err)
	}
	return sections, nil
}
