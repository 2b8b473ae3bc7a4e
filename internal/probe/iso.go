// Package probe reads identifying data from installation images and trees
// so they can be matched against catalog media.
package probe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/opmodel/osinfo/internal/core"
	oerrors "github.com/opmodel/osinfo/internal/errors"
)

// ErrNotISO is returned when an image carries no ISO9660 primary volume
// descriptor.
var ErrNotISO = errors.New("not an ISO9660 image")

// Primary volume descriptor layout.
const (
	pvdOffset = 0x8000
	pvdSize   = 2048

	pvdTypePrimary = 1
	pvdMagic       = "CD001"

	systemIDOffset      = 8
	systemIDLen         = 32
	volumeIDOffset      = 40
	volumeIDLen         = 32
	volumeSpaceOffset   = 80
	blockSizeOffset     = 128
	publisherIDOffset   = 318
	publisherIDLen      = 128
	applicationIDOffset = 574
	applicationIDLen    = 128
)

// ReadISO reads the primary volume descriptor of an ISO9660 image and
// returns the identifiers as probed media.
func ReadISO(r io.ReaderAt) (*core.Media, error) {
	buf := make([]byte, pvdSize)
	if _, err := r.ReadAt(buf, pvdOffset); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("image too short for a volume descriptor: %w", ErrNotISO)
		}
		return nil, fmt.Errorf("reading volume descriptor: %w", err)
	}
	if buf[0] != pvdTypePrimary || string(buf[1:6]) != pvdMagic {
		return nil, ErrNotISO
	}

	m := core.NewMedia("", "")
	setField(m, core.PropMediaSystemID, buf, systemIDOffset, systemIDLen)
	setField(m, core.PropMediaVolumeID, buf, volumeIDOffset, volumeIDLen)
	setField(m, core.PropMediaPublisherID, buf, publisherIDOffset, publisherIDLen)
	setField(m, core.PropMediaApplicationID, buf, applicationIDOffset, applicationIDLen)

	// Both-endian fields; the little-endian half comes first.
	blocks := binary.LittleEndian.Uint32(buf[volumeSpaceOffset:])
	blockSize := binary.LittleEndian.Uint16(buf[blockSizeOffset:])
	if size := int64(blocks) * int64(blockSize); size > 0 {
		m.SetParamInt64(core.PropMediaVolumeSize, size)
	}
	return m, nil
}

// ReadISOFile is ReadISO for a file on disk.
func ReadISOFile(path string) (*core.Media, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, oerrors.NewNotFoundError("image does not exist", path, "")
		}
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	m, err := ReadISO(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func setField(m *core.Media, key string, buf []byte, off, n int) {
	v := bytes.TrimRight(buf[off:off+n], " \x00")
	if len(v) > 0 {
		m.SetParam(key, string(v))
	}
}
