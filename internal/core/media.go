package core

import (
	"regexp"
	"sync"

	"github.com/opmodel/osinfo/internal/output"
)

// Media property names.
const (
	PropMediaArchitecture     = "architecture"
	PropMediaURL              = "url"
	PropMediaVolumeID         = "volume-id"
	PropMediaSystemID         = "system-id"
	PropMediaPublisherID      = "publisher-id"
	PropMediaApplicationID    = "application-id"
	PropMediaVolumeSize       = "volume-size"
	PropMediaKernel           = "kernel"
	PropMediaInitrd           = "initrd"
	PropMediaLive             = "live"
	PropMediaInstaller        = "installer"
	PropMediaInstallerReboots = "installer-reboots"
	PropMediaLang             = "lang"
	PropMediaEjectAfter       = "eject-after-install"
	PropMediaVariant          = "variant"
)

// ArchAll is the architecture value that matches every architecture.
const ArchAll = "all"

// Media describes installation or live media for an OS.
type Media struct {
	BaseEntity
	os       *OS
	patterns patternCache
}

// NewMedia creates media with the given id and architecture.
func NewMedia(id, arch string) *Media {
	m := &Media{BaseEntity: newBaseEntity(id)}
	if arch != "" {
		m.SetParam(PropMediaArchitecture, arch)
	}
	return m
}

// OS returns the operating system the media belongs to, if any.
func (m *Media) OS() *OS { return m.os }

// Architecture returns the hardware architecture.
func (m *Media) Architecture() string { return m.ParamValue(PropMediaArchitecture) }

// URL returns the download location.
func (m *Media) URL() string { return m.ParamValue(PropMediaURL) }

// VolumeID returns the ISO9660 volume identifier (a pattern for catalog media).
func (m *Media) VolumeID() string { return m.ParamValue(PropMediaVolumeID) }

// SystemID returns the ISO9660 system identifier.
func (m *Media) SystemID() string { return m.ParamValue(PropMediaSystemID) }

// PublisherID returns the ISO9660 publisher identifier.
func (m *Media) PublisherID() string { return m.ParamValue(PropMediaPublisherID) }

// ApplicationID returns the ISO9660 application identifier.
func (m *Media) ApplicationID() string { return m.ParamValue(PropMediaApplicationID) }

// Kernel returns the kernel path inside the media.
func (m *Media) Kernel() string { return m.ParamValue(PropMediaKernel) }

// Initrd returns the initrd path inside the media.
func (m *Media) Initrd() string { return m.ParamValue(PropMediaInitrd) }

// Live reports whether the media boots a live system.
func (m *Media) Live() bool { return m.ParamValueBool(PropMediaLive, false) }

// Installer reports whether the media can install the OS.
func (m *Media) Installer() bool { return m.ParamValueBool(PropMediaInstaller, true) }

// InstallerReboots returns how many reboots a full install needs.
func (m *Media) InstallerReboots() int64 {
	return m.ParamValueInt64(PropMediaInstallerReboots, 1)
}

// Languages returns the languages the media supports.
func (m *Media) Languages() []string { return m.ParamValues(PropMediaLang) }

var mediaPatternProps = []string{
	PropMediaVolumeID,
	PropMediaSystemID,
	PropMediaPublisherID,
	PropMediaApplicationID,
}

// Matches reports whether probed media, read from a real image, is
// described by catalog media m. Every identifier set on m is a regular
// expression that must match the probed value. Media without any
// identifier never matches.
func (m *Media) Matches(probed *Media) bool {
	if !archMatches(m.Architecture(), probed.Architecture()) {
		return false
	}
	return patternsMatch(&m.patterns, &m.BaseEntity, &probed.BaseEntity, mediaPatternProps)
}

func archMatches(catalog, probed string) bool {
	if catalog == "" || catalog == ArchAll || probed == "" || probed == ArchAll {
		return true
	}
	return catalog == probed
}

// patternCache holds the compiled identifier patterns of a catalog entry,
// keyed by pattern source. Invalid patterns are stored as nil.
type patternCache struct {
	mu       sync.Mutex
	compiled map[string]*regexp.Regexp
}

func (c *patternCache) get(owner, prop, pattern string) *regexp.Regexp {
	c.mu.Lock()
	defer c.mu.Unlock()
	if re, ok := c.compiled[pattern]; ok {
		return re
	}
	if c.compiled == nil {
		c.compiled = make(map[string]*regexp.Regexp)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		output.Debug("ignoring invalid identifier pattern", "id", owner, "property", prop, "pattern", pattern, "error", err)
	}
	c.compiled[pattern] = re
	return re
}

// patternsMatch reports whether every pattern set on catalog matches the
// probed value. An invalid pattern never matches.
func patternsMatch(cache *patternCache, catalog, probed *BaseEntity, props []string) bool {
	constrained := false
	for _, prop := range props {
		pattern := catalog.ParamValue(prop)
		if pattern == "" {
			continue
		}
		constrained = true
		re := cache.get(catalog.ID(), prop, pattern)
		if re == nil || !re.MatchString(probed.ParamValue(prop)) {
			return false
		}
	}
	return constrained
}
