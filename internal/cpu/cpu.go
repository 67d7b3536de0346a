// Package cpu implements a 6502-family interpreter (no decimal mode): the
// official instruction set plus the documented unofficial opcodes, full
// addressing-mode resolution with page-cross cycle accounting, and
// interrupt servicing. See addressing.go for effective-address resolution,
// opcodes.go for the 256-entry decode table, and instructions.go for the
// operation bodies.
package cpu

import "github.com/nesquik/corenes/internal/logger"

// Bus is the CPU-side memory interface: RAM, PPU/APU register windows, and
// the mapper, all pre-decoded by the console. The CPU never decodes
// addresses itself beyond the 6502 addressing modes.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

// Status flag bits, in P register order.
const (
	FlagC uint8 = 1 << 0 // Carry
	FlagZ uint8 = 1 << 1 // Zero
	FlagI uint8 = 1 << 2 // Interrupt disable
	FlagD uint8 = 1 << 3 // Decimal (present, no arithmetic effect)
	FlagB uint8 = 1 << 4 // Break (only meaningful on the stack image)
	FlagU uint8 = 1 << 5 // Unused, always read back as 1 when pushed
	FlagV uint8 = 1 << 6 // Overflow
	FlagN uint8 = 1 << 7 // Negative
)

// pendingInterrupt is the CPU's single latched-interrupt slot; NMI always
// wins over IRQ.
type pendingInterrupt int

const (
	intNone pendingInterrupt = iota
	intIRQ
	intNMI
)

// CPU holds 6502 register state, the shared address bus, and the
// pending-interrupt latch. It has no notion of the PPU/APU/mapper beyond
// the Bus it reads and writes through.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8

	Cycles uint64

	// NMICount counts every serviced NMI, an observable hook for callers
	// (and tests) that want to confirm the once-per-frame VBlank NMI
	// without reaching into the interrupt-latch internals.
	NMICount uint64

	pending pendingInterrupt

	Bus Bus
	log logger.Sink

	// halted is set by STP; the CPU stays stopped until Reset.
	halted bool
}

// New creates a CPU wired to bus. log may be nil.
func New(bus Bus, log logger.Sink) *CPU {
	if log == nil {
		log = logger.Nop
	}
	return &CPU{Bus: bus, log: log, SP: 0xFD, P: FlagU | FlagI}
}

// Reset loads PC from the reset vector and sets the documented post-reset
// register state (SP=0xFD, I set, U set).
func (c *CPU) Reset() {
	c.SP = 0xFD
	c.P = FlagU | FlagI
	c.PC = c.read16(0xFFFC)
	c.Cycles = 0
	c.NMICount = 0
	c.pending = intNone
	c.halted = false
}

// RaiseNMI latches a non-maskable interrupt; NMI always wins over a
// previously latched IRQ.
func (c *CPU) RaiseNMI() { c.pending = intNMI }

// RaiseIRQ latches a maskable interrupt unless NMI is already pending
// (a second raise before service overwrites only same-or-weaker kinds).
func (c *CPU) RaiseIRQ() {
	if c.pending != intNMI {
		c.pending = intIRQ
	}
}

func (c *CPU) GetFlag(flag uint8) bool { return c.P&flag != 0 }
func (c *CPU) SetFlag(flag uint8, v bool) {
	if v {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

func (c *CPU) setZN(v uint8) {
	c.SetFlag(FlagZ, v == 0)
	c.SetFlag(FlagN, v&0x80 != 0)
}

func (c *CPU) read(addr uint16) uint8    { return c.Bus.Read(addr) }
func (c *CPU) write(addr uint16, v uint8) { c.Bus.Write(addr, v) }

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return hi<<8 | lo
}

// read16bug replicates the JMP ($xxFF) indirect page-wrap bug: the high
// byte is fetched from the start of the same page rather than the next.
func (c *CPU) read16bug(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hiAddr := (addr & 0xFF00) | uint16(byte(addr)+1)
	hi := uint16(c.read(hiAddr))
	return hi<<8 | lo
}

func (c *CPU) push(v uint8) {
	c.write(0x0100|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(0x0100 | uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// Step executes exactly one unit of progress: either servicing a latched
// interrupt (7 cycles) or decoding, resolving, and executing one
// instruction. It returns the number of cycles consumed: the decode
// table's base count plus any branch-taken and page-cross additions.
func (c *CPU) Step() int {
	if c.halted {
		return 1
	}

	if c.pending == intNMI {
		c.service(0xFFFA)
		c.pending = intNone
		c.Cycles += 7
		c.NMICount++
		return 7
	}
	if c.pending == intIRQ && !c.GetFlag(FlagI) {
		c.service(0xFFFE)
		c.pending = intNone
		c.Cycles += 7
		return 7
	}

	opcode := c.read(c.PC)
	c.PC++

	info := opcodeTable[opcode]
	addr, pageCrossed := c.resolveAddress(info.Mode)

	extra := info.Exec(c, addr, info.Mode)
	cycles := int(info.Cycles) + extra
	if info.PageCheck && pageCrossed {
		cycles++
	}

	c.Cycles += uint64(cycles)
	return cycles
}

// service pushes PC and status (with B=0, U=1), sets I, and jumps to the
// handler named by vector.
func (c *CPU) service(vector uint16) {
	c.push16(c.PC)
	c.push((c.P &^ FlagB) | FlagU)
	c.SetFlag(FlagI, true)
	c.PC = c.read16(vector)
}

// Halt stops instruction execution until Reset (used by STP).
func (c *CPU) Halt() { c.halted = true }

func (c *CPU) Halted() bool { return c.halted }
