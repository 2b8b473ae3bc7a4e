package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fedora11ID = "http://fedoraproject.org/fedora-11"
	fedora10ID = "http://fedoraproject.org/fedora-10"
	qemuKVMID  = "http://qemu.org/qemu-kvm-0.11.0"
	xenID      = "http://bits.xensource.com/xen-3.4"
)

// newDemoDB builds a small catalog: two Fedora releases, two platforms,
// three devices and one deployment of Fedora 11 on qemu-kvm.
func newDemoDB(t *testing.T) *DB {
	t.Helper()
	db := NewDB()

	e1000 := db.EnsureDevice("http://pci-ids.ucw.cz/read/PC/8086/100e")
	e1000.SetParam(PropDeviceName, "e1000")
	e1000.SetParam(PropDeviceClass, "net")
	e1000.SetParam(PropDeviceVendor, "Intel Corporation")

	rtl := db.EnsureDevice("http://pci-ids.ucw.cz/read/PC/10ec/8139")
	rtl.SetParam(PropDeviceName, "rtl8139")
	rtl.SetParam(PropDeviceClass, "net")
	rtl.SetParam(PropDeviceVendor, "Realtek")

	es := db.EnsureDevice("http://pci-ids.ucw.cz/read/PC/1274/5000")
	es.SetParam(PropDeviceName, "es1370")
	es.SetParam(PropDeviceClass, "audio")
	es.SetParam(PropDeviceVendor, "Ensoniq")

	f10 := db.EnsureOS(fedora10ID)
	f10.SetParam(PropProductShortID, "fedora10")
	f10.SetParam(PropProductName, "Fedora 10")
	f10.AddDeviceLink(es, "ens1370")

	f11 := db.EnsureOS(fedora11ID)
	f11.SetParam(PropProductShortID, "fedora11")
	f11.SetParam(PropProductName, "Fedora 11")
	f11.SetParam(PropOSFamily, "linux")
	f11.AddParam("x-fruit", "apple")
	f11.AddParam("x-animal", "cat")
	f11.AddParam("x-animal", "dog")
	f11.AddRelated(RelUpgrades, f10)
	f11.AddRelated(RelDerivesFrom, f10)
	f11.AddDeviceLink(e1000, "e1000")

	kvm := db.EnsurePlatform(qemuKVMID)
	kvm.SetParam(PropProductShortID, "kvm")
	kvm.SetParam(PropProductName, "KVM")
	kvm.AddDeviceLink(e1000, "")
	kvm.AddDeviceLink(rtl, "")

	xen := db.EnsurePlatform(xenID)
	xen.SetParam(PropProductShortID, "xen")
	xen.SetParam(PropProductName, "Xen")
	xen.AddRelated(RelUpgrades, kvm)

	dep := db.EnsureDeployment("http://deployment/f11-kvm", f11, kvm)
	dep.AddDeviceLink(es, "ac97")
	dep.AddDeviceLink(rtl, "8139cp")
	dep.AddDeviceLink(e1000, "e1000")

	return db
}

func TestDB_Lookups(t *testing.T) {
	db := newDemoDB(t)

	require.NotNil(t, db.OS(fedora11ID))
	assert.Equal(t, "Fedora 11", db.OS(fedora11ID).Name())
	require.NotNil(t, db.Platform(qemuKVMID))
	assert.Equal(t, "KVM", db.Platform(qemuKVMID).Name())

	assert.Nil(t, db.OS("http://example.com/missing"))
	assert.Nil(t, db.Platform("http://example.com/missing"))
	assert.Nil(t, db.Device("http://example.com/missing"))
	assert.Nil(t, db.Deployment("http://example.com/missing"))
	assert.Nil(t, db.Datamap("http://example.com/missing"))
}

func TestDB_DeviceIDsAreStable(t *testing.T) {
	want := []string{
		"http://pci-ids.ucw.cz/read/PC/8086/100e",
		"http://pci-ids.ucw.cz/read/PC/10ec/8139",
		"http://pci-ids.ucw.cz/read/PC/1274/5000",
	}
	for range 3 {
		assert.Equal(t, want, newDemoDB(t).Devices().IDs())
	}
}

func TestDB_EnsureReturnsExisting(t *testing.T) {
	db := newDemoDB(t)

	before := db.Devices().Len()
	dev := db.EnsureDevice("http://pci-ids.ucw.cz/read/PC/8086/100e")

	assert.Equal(t, "e1000", dev.Name())
	assert.Equal(t, before, db.Devices().Len())
}

func TestDB_UniqueValues(t *testing.T) {
	db := newDemoDB(t)

	assert.Equal(t, []string{"e1000", "es1370", "rtl8139"}, db.UniqueValuesForPropertyInDevice(PropDeviceName))
	assert.Equal(t, []string{"audio", "net"}, db.UniqueValuesForPropertyInDevice(PropDeviceClass))
	assert.Equal(t, []string{"fedora10", "fedora11"}, db.UniqueValuesForPropertyInOS(PropProductShortID))
	assert.Equal(t, []string{"cat", "dog"}, db.UniqueValuesForPropertyInOS("x-animal"))
	assert.Equal(t, []string{"kvm", "xen"}, db.UniqueValuesForPropertyInPlatform(PropProductShortID))
	assert.Equal(t, []string{fedora11ID}, db.UniqueValuesForPropertyInDeployment(PropDeploymentOS))
	assert.Nil(t, db.UniqueValuesForPropertyInDevice("no-such-prop"))
}

func TestDB_UniqueValuesForRelationship(t *testing.T) {
	db := newDemoDB(t)

	upgraded := db.UniqueValuesForOSRelationship(RelUpgrades)
	assert.Equal(t, []string{fedora10ID}, upgraded.IDs())

	assert.Equal(t, 0, db.UniqueValuesForOSRelationship(RelClones).Len())
	assert.Equal(t, []string{qemuKVMID}, db.UniqueValuesForPlatformRelationship(RelUpgrades).IDs())
}

func TestDB_FindDeployment(t *testing.T) {
	db := newDemoDB(t)

	dep := db.FindDeployment(db.OS(fedora11ID), db.Platform(qemuKVMID))
	require.NotNil(t, dep)
	assert.Equal(t, "http://deployment/f11-kvm", dep.ID())
	assert.Equal(t, fedora11ID, dep.OS().ID())
	assert.Equal(t, qemuKVMID, dep.Platform().ID())

	assert.Nil(t, db.FindDeployment(db.OS(fedora10ID), db.Platform(qemuKVMID)))
	assert.Nil(t, db.FindDeployment(nil, db.Platform(qemuKVMID)))
}

func TestDB_PreferredNetworkDevice(t *testing.T) {
	db := newDemoDB(t)

	dep := db.FindDeployment(db.OS(fedora11ID), db.Platform(qemuKVMID))
	require.NotNil(t, dep)

	target := NewFilter().AddConstraint(PropDeviceClass, "net")
	link := dep.PreferredDeviceLink(NewDeviceLinkFilter(target))
	require.NotNil(t, link)

	assert.Equal(t, "rtl8139", link.Target().Name())
	assert.Equal(t, "8139cp", link.Driver())

	dev := dep.PreferredDevice(target)
	require.NotNil(t, dev)
	assert.Equal(t, "rtl8139", dev.Name())

	none := NewFilter().AddConstraint(PropDeviceClass, "video")
	assert.Nil(t, dep.PreferredDeviceLink(NewDeviceLinkFilter(none)))
	assert.Nil(t, dep.PreferredDevice(none))
}

func TestDB_Stats(t *testing.T) {
	db := newDemoDB(t)
	db.OS(fedora11ID).AddMedia(NewMedia("m1", "x86_64"))
	db.EnsureDatamap("http://x.org/x11-keyboard")

	assert.Equal(t, Stats{
		Devices:     3,
		OSes:        2,
		Platforms:   2,
		Deployments: 1,
		Datamaps:    1,
		Media:       1,
	}, db.Stats())
}
