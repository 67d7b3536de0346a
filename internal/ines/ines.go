// Package ines parses the iNES ROM container format into a
// cartridge.Cartridge.
package ines

import (
	"errors"
	"fmt"
	"io"

	"github.com/nesquik/corenes/internal/cartridge"
)

var ErrBadMagic = errors.New("ines: missing NES\\x1A magic number")

const (
	prgUnit = 16384
	chrUnit = 8192
)

// Load parses an iNES (.nes) image from r into a Cartridge, including
// battery-backed PRG-RAM sizing and the header-derived mirroring mode.
// NES 2.0's extended header fields are not read; flags 8-10 are accepted
// but ignored.
func Load(r io.Reader) (*cartridge.Cartridge, error) {
	header := make([]byte, 16)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("ines: read header: %w", err)
	}
	if string(header[0:4]) != "NES\x1A" {
		return nil, ErrBadMagic
	}

	flags6 := header[6]
	flags7 := header[7]

	if flags6&0x04 != 0 { // trainer present
		trainer := make([]byte, 512)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, fmt.Errorf("ines: read trainer: %w", err)
		}
	}

	prgSize := int(header[4]) * prgUnit
	prgROM := make([]byte, prgSize)
	if _, err := io.ReadFull(r, prgROM); err != nil {
		return nil, fmt.Errorf("ines: read PRG ROM: %w", err)
	}

	var chrROM []byte
	chrSize := int(header[5]) * chrUnit
	if chrSize > 0 {
		chrROM = make([]byte, chrSize)
		if _, err := io.ReadFull(r, chrROM); err != nil {
			return nil, fmt.Errorf("ines: read CHR ROM: %w", err)
		}
	}

	var prgRAM []byte
	if flags6&0x02 != 0 {
		prgRAM = make([]byte, 0x2000)
	}

	var mirroring cartridge.Mirroring
	switch {
	case flags6&0x08 != 0:
		mirroring = cartridge.FourScreen
	case flags6&0x01 != 0:
		mirroring = cartridge.Vertical
	default:
		mirroring = cartridge.Horizontal
	}

	mapperID := (flags6 >> 4) | (flags7 & 0xF0)

	return cartridge.New(prgROM, chrROM, prgRAM, mirroring, mapperID)
}
