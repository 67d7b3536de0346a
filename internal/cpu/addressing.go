package cpu

// AddrMode enumerates the 6502 addressing modes.
type AddrMode int

const (
	Implied AddrMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

func samePage(a, b uint16) bool { return a&0xFF00 == b&0xFF00 }

// resolveAddress advances PC past the instruction's operand bytes and
// returns the effective address (meaningless for Implied/Accumulator) and
// whether an indexed/indirect-indexed read crossed a page boundary.
func (c *CPU) resolveAddress(mode AddrMode) (uint16, bool) {
	switch mode {
	case Implied, Accumulator:
		return 0, false

	case Immediate:
		addr := c.PC
		c.PC++
		return addr, false

	case ZeroPage:
		addr := uint16(c.read(c.PC))
		c.PC++
		return addr, false

	case ZeroPageX:
		addr := uint16(c.read(c.PC) + c.X)
		c.PC++
		return addr & 0xFF, false

	case ZeroPageY:
		addr := uint16(c.read(c.PC) + c.Y)
		c.PC++
		return addr & 0xFF, false

	case Relative:
		offset := int8(c.read(c.PC))
		c.PC++
		target := uint16(int32(c.PC) + int32(offset))
		return target, false

	case Absolute:
		addr := c.read16(c.PC)
		c.PC += 2
		return addr, false

	case AbsoluteX:
		base := c.read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.X)
		return addr, !samePage(base, addr)

	case AbsoluteY:
		base := c.read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.Y)
		return addr, !samePage(base, addr)

	case Indirect:
		ptr := c.read16(c.PC)
		c.PC += 2
		return c.read16bug(ptr), false

	case IndexedIndirect:
		base := c.read(c.PC)
		c.PC++
		ptr := uint16(base + c.X)
		lo := uint16(c.read(ptr & 0xFF))
		hi := uint16(c.read((ptr + 1) & 0xFF))
		return hi<<8 | lo, false

	case IndirectIndexed:
		base := uint16(c.read(c.PC))
		c.PC++
		lo := uint16(c.read(base))
		hi := uint16(c.read((base + 1) & 0xFF))
		baseAddr := hi<<8 | lo
		addr := baseAddr + uint16(c.Y)
		return addr, !samePage(baseAddr, addr)
	}
	return 0, false
}

// operand fetches the byte an instruction operates on, reading through the
// bus except in Accumulator mode where the operand is register A.
func (c *CPU) operand(addr uint16, mode AddrMode) uint8 {
	if mode == Accumulator {
		return c.A
	}
	return c.read(addr)
}
