package core

import (
	"slices"
)

// DB is the in-memory catalog.
type DB struct {
	devices     *List[*Device]
	oses        *List[*OS]
	platforms   *List[*Platform]
	deployments *List[*Deployment]
	datamaps    *List[*Datamap]
}

// NewDB creates an empty catalog.
func NewDB() *DB {
	return &DB{
		devices:     NewList[*Device](),
		oses:        NewList[*OS](),
		platforms:   NewList[*Platform](),
		deployments: NewList[*Deployment](),
		datamaps:    NewList[*Datamap](),
	}
}

// Device returns the device with the given id, or nil.
func (db *DB) Device(id string) *Device {
	d, _ := db.devices.Find(id)
	return d
}

// OS returns the operating system with the given id, or nil.
func (db *DB) OS(id string) *OS {
	o, _ := db.oses.Find(id)
	return o
}

// Platform returns the platform with the given id, or nil.
func (db *DB) Platform(id string) *Platform {
	p, _ := db.platforms.Find(id)
	return p
}

// Deployment returns the deployment with the given id, or nil.
func (db *DB) Deployment(id string) *Deployment {
	d, _ := db.deployments.Find(id)
	return d
}

// Datamap returns the datamap with the given id, or nil.
func (db *DB) Datamap(id string) *Datamap {
	m, _ := db.datamaps.Find(id)
	return m
}

// Devices returns every device in declaration order.
func (db *DB) Devices() *List[*Device] { return db.devices }

// OSes returns every operating system in declaration order.
func (db *DB) OSes() *List[*OS] { return db.oses }

// Platforms returns every platform in declaration order.
func (db *DB) Platforms() *List[*Platform] { return db.platforms }

// Deployments returns every deployment in declaration order.
func (db *DB) Deployments() *List[*Deployment] { return db.deployments }

// Datamaps returns every datamap in declaration order.
func (db *DB) Datamaps() *List[*Datamap] { return db.datamaps }

// AddDevice adds or replaces a device.
func (db *DB) AddDevice(d *Device) { db.devices.Add(d) }

// AddOS adds or replaces an operating system.
func (db *DB) AddOS(o *OS) { db.oses.Add(o) }

// AddPlatform adds or replaces a platform.
func (db *DB) AddPlatform(p *Platform) { db.platforms.Add(p) }

// AddDeployment adds or replaces a deployment.
func (db *DB) AddDeployment(d *Deployment) { db.deployments.Add(d) }

// AddDatamap adds or replaces a datamap.
func (db *DB) AddDatamap(m *Datamap) { db.datamaps.Add(m) }

// EnsureDevice returns the device with the given id, creating an empty one
// when it does not exist yet. Documents may reference a device before
// declaring it.
func (db *DB) EnsureDevice(id string) *Device {
	if d := db.Device(id); d != nil {
		return d
	}
	d := NewDevice(id)
	db.devices.Add(d)
	return d
}

// EnsureOS is EnsureDevice for operating systems.
func (db *DB) EnsureOS(id string) *OS {
	if o := db.OS(id); o != nil {
		return o
	}
	o := NewOS(id)
	db.oses.Add(o)
	return o
}

// EnsurePlatform is EnsureDevice for platforms.
func (db *DB) EnsurePlatform(id string) *Platform {
	if p := db.Platform(id); p != nil {
		return p
	}
	p := NewPlatform(id)
	db.platforms.Add(p)
	return p
}

// EnsureDeployment returns the deployment with the given id, creating it
// for os and platform when missing. An existing deployment is retargeted
// to os and platform.
func (db *DB) EnsureDeployment(id string, os *OS, platform *Platform) *Deployment {
	if d := db.Deployment(id); d != nil {
		d.SetOS(os)
		d.SetPlatform(platform)
		return d
	}
	d := NewDeployment(id, os, platform)
	db.deployments.Add(d)
	return d
}

// EnsureDatamap is EnsureDevice for datamaps.
func (db *DB) EnsureDatamap(id string) *Datamap {
	if m := db.Datamap(id); m != nil {
		return m
	}
	m := NewDatamap(id)
	db.datamaps.Add(m)
	return m
}

// FindDeployment returns the first deployment of os on platform, or nil.
func (db *DB) FindDeployment(os *OS, platform *Platform) *Deployment {
	if os == nil || platform == nil {
		return nil
	}
	for _, d := range db.deployments.Elements() {
		if d.os != nil && d.platform != nil &&
			d.os.ID() == os.ID() && d.platform.ID() == platform.ID() {
			return d
		}
	}
	return nil
}

// UniqueValuesForPropertyInDevice returns the sorted distinct values of
// prop across every device.
func (db *DB) UniqueValuesForPropertyInDevice(prop string) []string {
	return uniqueValues(db.devices.Elements(), prop)
}

// UniqueValuesForPropertyInOS returns the sorted distinct values of prop
// across every operating system.
func (db *DB) UniqueValuesForPropertyInOS(prop string) []string {
	return uniqueValues(db.oses.Elements(), prop)
}

// UniqueValuesForPropertyInPlatform returns the sorted distinct values of
// prop across every platform.
func (db *DB) UniqueValuesForPropertyInPlatform(prop string) []string {
	return uniqueValues(db.platforms.Elements(), prop)
}

// UniqueValuesForPropertyInDeployment returns the sorted distinct values of
// prop across every deployment.
func (db *DB) UniqueValuesForPropertyInDeployment(prop string) []string {
	return uniqueValues(db.deployments.Elements(), prop)
}

func uniqueValues[T Entity](items []T, prop string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, item := range items {
		for _, v := range item.ParamValues(prop) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// UniqueValuesForOSRelationship returns every operating system that some
// operating system has relationship rel with.
func (db *DB) UniqueValuesForOSRelationship(rel Relationship) *List[*OS] {
	out := NewList[*OS]()
	for _, o := range db.oses.Elements() {
		for _, p := range o.Related(rel) {
			if related, ok := p.(*OS); ok {
				out.Add(related)
			}
		}
	}
	return out
}

// UniqueValuesForPlatformRelationship returns every platform that some
// platform has relationship rel with.
func (db *DB) UniqueValuesForPlatformRelationship(rel Relationship) *List[*Platform] {
	out := NewList[*Platform]()
	for _, pl := range db.platforms.Elements() {
		for _, p := range pl.Related(rel) {
			if related, ok := p.(*Platform); ok {
				out.Add(related)
			}
		}
	}
	return out
}

// IdentifyMedia finds the catalog media matching probed media. It returns
// nil values when no operating system claims the media.
func (db *DB) IdentifyMedia(probed *Media) (*OS, *Media) {
	for _, o := range db.oses.Elements() {
		for _, m := range o.media.Elements() {
			if m.Matches(probed) {
				return o, m
			}
		}
	}
	return nil, nil
}

// IdentifyTree finds the catalog tree matching a probed tree.
func (db *DB) IdentifyTree(probed *Tree) (*OS, *Tree) {
	for _, o := range db.oses.Elements() {
		for _, t := range o.trees.Elements() {
			if t.Matches(probed) {
				return o, t
			}
		}
	}
	return nil, nil
}

// Stats counts the entities held by the catalog.
type Stats struct {
	Devices     int `json:"devices"`
	OSes        int `json:"oses"`
	Platforms   int `json:"platforms"`
	Deployments int `json:"deployments"`
	Datamaps    int `json:"datamaps"`
	Media       int `json:"media"`
	Trees       int `json:"trees"`
}

// Stats returns entity counts.
func (db *DB) Stats() Stats {
	s := Stats{
		Devices:     db.devices.Len(),
		OSes:        db.oses.Len(),
		Platforms:   db.platforms.Len(),
		Deployments: db.deployments.Len(),
		Datamaps:    db.datamaps.Len(),
	}
	for _, o := range db.oses.Elements() {
		s.Media += o.media.Len()
		s.Trees += o.trees.Len()
	}
	return s
}
