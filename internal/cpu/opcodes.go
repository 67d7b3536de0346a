package cpu

// Instruction is one entry of the 256-slot decode table: how to resolve the
// operand, the base cycle cost, whether a crossed page boundary on a
// read-class addressing mode adds one more cycle, and the operation
// itself.
type Instruction struct {
	Name      string
	Mode      AddrMode
	Cycles    uint8
	PageCheck bool
	Exec      func(c *CPU, addr uint16, mode AddrMode) int
}

func op(name string, mode AddrMode, cycles uint8, pageCheck bool, exec func(*CPU, uint16, AddrMode) int) Instruction {
	return Instruction{Name: name, Mode: mode, Cycles: cycles, PageCheck: pageCheck, Exec: exec}
}

// opcodeTable covers every one of the 256 opcodes: the official instruction
// set, the documented-behavior unofficial opcodes (SLO/RLA/SRE/RRA/SAX/LAX/
// DCP/ISB and the NOP/SBC duplicates), the halt-class opcodes (STP), and the
// remaining unstable illegals (AHX/SHY/SHX/TAS/XAA/ALR/ANC/ARR/AXS/LAS)
// which decode with a real addressing mode and cycle count but execute as
// no-ops.
var opcodeTable = [256]Instruction{
	0x00: op("BRK", Implied, 7, false, opBRK),
	0x01: op("ORA", IndexedIndirect, 6, false, opORA),
	0x02: op("STP", Implied, 2, false, opSTP),
	0x03: op("SLO", IndexedIndirect, 8, false, opSLO),
	0x04: op("NOP", ZeroPage, 3, false, opNOP),
	0x05: op("ORA", ZeroPage, 3, false, opORA),
	0x06: op("ASL", ZeroPage, 5, false, opASL),
	0x07: op("SLO", ZeroPage, 5, false, opSLO),
	0x08: op("PHP", Implied, 3, false, opPHP),
	0x09: op("ORA", Immediate, 2, false, opORA),
	0x0A: op("ASL", Accumulator, 2, false, opASL),
	0x0B: op("ANC", Immediate, 2, false, opNoop2),
	0x0C: op("NOP", Absolute, 4, false, opNOP),
	0x0D: op("ORA", Absolute, 4, false, opORA),
	0x0E: op("ASL", Absolute, 6, false, opASL),
	0x0F: op("SLO", Absolute, 6, false, opSLO),

	0x10: op("BPL", Relative, 2, false, opBPL),
	0x11: op("ORA", IndirectIndexed, 5, true, opORA),
	0x12: op("STP", Implied, 2, false, opSTP),
	0x13: op("SLO", IndirectIndexed, 8, false, opSLO),
	0x14: op("NOP", ZeroPageX, 4, false, opNOP),
	0x15: op("ORA", ZeroPageX, 4, false, opORA),
	0x16: op("ASL", ZeroPageX, 6, false, opASL),
	0x17: op("SLO", ZeroPageX, 6, false, opSLO),
	0x18: op("CLC", Implied, 2, false, opCLC),
	0x19: op("ORA", AbsoluteY, 4, true, opORA),
	0x1A: op("NOP", Implied, 2, false, opNOP),
	0x1B: op("SLO", AbsoluteY, 7, false, opSLO),
	0x1C: op("NOP", AbsoluteX, 4, true, opNOP),
	0x1D: op("ORA", AbsoluteX, 4, true, opORA),
	0x1E: op("ASL", AbsoluteX, 7, false, opASL),
	0x1F: op("SLO", AbsoluteX, 7, false, opSLO),

	0x20: op("JSR", Absolute, 6, false, opJSR),
	0x21: op("AND", IndexedIndirect, 6, false, opAND),
	0x22: op("STP", Implied, 2, false, opSTP),
	0x23: op("RLA", IndexedIndirect, 8, false, opRLA),
	0x24: op("BIT", ZeroPage, 3, false, opBIT),
	0x25: op("AND", ZeroPage, 3, false, opAND),
	0x26: op("ROL", ZeroPage, 5, false, opROL),
	0x27: op("RLA", ZeroPage, 5, false, opRLA),
	0x28: op("PLP", Implied, 4, false, opPLP),
	0x29: op("AND", Immediate, 2, false, opAND),
	0x2A: op("ROL", Accumulator, 2, false, opROL),
	0x2B: op("ANC", Immediate, 2, false, opNoop2),
	0x2C: op("BIT", Absolute, 4, false, opBIT),
	0x2D: op("AND", Absolute, 4, false, opAND),
	0x2E: op("ROL", Absolute, 6, false, opROL),
	0x2F: op("RLA", Absolute, 6, false, opRLA),

	0x30: op("BMI", Relative, 2, false, opBMI),
	0x31: op("AND", IndirectIndexed, 5, true, opAND),
	0x32: op("STP", Implied, 2, false, opSTP),
	0x33: op("RLA", IndirectIndexed, 8, false, opRLA),
	0x34: op("NOP", ZeroPageX, 4, false, opNOP),
	0x35: op("AND", ZeroPageX, 4, false, opAND),
	0x36: op("ROL", ZeroPageX, 6, false, opROL),
	0x37: op("RLA", ZeroPageX, 6, false, opRLA),
	0x38: op("SEC", Implied, 2, false, opSEC),
	0x39: op("AND", AbsoluteY, 4, true, opAND),
	0x3A: op("NOP", Implied, 2, false, opNOP),
	0x3B: op("RLA", AbsoluteY, 7, false, opRLA),
	0x3C: op("NOP", AbsoluteX, 4, true, opNOP),
	0x3D: op("AND", AbsoluteX, 4, true, opAND),
	0x3E: op("ROL", AbsoluteX, 7, false, opROL),
	0x3F: op("RLA", AbsoluteX, 7, false, opRLA),

	0x40: op("RTI", Implied, 6, false, opRTI),
	0x41: op("EOR", IndexedIndirect, 6, false, opEOR),
	0x42: op("STP", Implied, 2, false, opSTP),
	0x43: op("SRE", IndexedIndirect, 8, false, opSRE),
	0x44: op("NOP", ZeroPage, 3, false, opNOP),
	0x45: op("EOR", ZeroPage, 3, false, opEOR),
	0x46: op("LSR", ZeroPage, 5, false, opLSR),
	0x47: op("SRE", ZeroPage, 5, false, opSRE),
	0x48: op("PHA", Implied, 3, false, opPHA),
	0x49: op("EOR", Immediate, 2, false, opEOR),
	0x4A: op("LSR", Accumulator, 2, false, opLSR),
	0x4B: op("ALR", Immediate, 2, false, opNoop2),
	0x4C: op("JMP", Absolute, 3, false, opJMP),
	0x4D: op("EOR", Absolute, 4, false, opEOR),
	0x4E: op("LSR", Absolute, 6, false, opLSR),
	0x4F: op("SRE", Absolute, 6, false, opSRE),

	0x50: op("BVC", Relative, 2, false, opBVC),
	0x51: op("EOR", IndirectIndexed, 5, true, opEOR),
	0x52: op("STP", Implied, 2, false, opSTP),
	0x53: op("SRE", IndirectIndexed, 8, false, opSRE),
	0x54: op("NOP", ZeroPageX, 4, false, opNOP),
	0x55: op("EOR", ZeroPageX, 4, false, opEOR),
	0x56: op("LSR", ZeroPageX, 6, false, opLSR),
	0x57: op("SRE", ZeroPageX, 6, false, opSRE),
	0x58: op("CLI", Implied, 2, false, opCLI),
	0x59: op("EOR", AbsoluteY, 4, true, opEOR),
	0x5A: op("NOP", Implied, 2, false, opNOP),
	0x5B: op("SRE", AbsoluteY, 7, false, opSRE),
	0x5C: op("NOP", AbsoluteX, 4, true, opNOP),
	0x5D: op("EOR", AbsoluteX, 4, true, opEOR),
	0x5E: op("LSR", AbsoluteX, 7, false, opLSR),
	0x5F: op("SRE", AbsoluteX, 7, false, opSRE),

	0x60: op("RTS", Implied, 6, false, opRTS),
	0x61: op("ADC", IndexedIndirect, 6, false, opADC),
	0x62: op("STP", Implied, 2, false, opSTP),
	0x63: op("RRA", IndexedIndirect, 8, false, opRRA),
	0x64: op("NOP", ZeroPage, 3, false, opNOP),
	0x65: op("ADC", ZeroPage, 3, false, opADC),
	0x66: op("ROR", ZeroPage, 5, false, opROR),
	0x67: op("RRA", ZeroPage, 5, false, opRRA),
	0x68: op("PLA", Implied, 4, false, opPLA),
	0x69: op("ADC", Immediate, 2, false, opADC),
	0x6A: op("ROR", Accumulator, 2, false, opROR),
	0x6B: op("ARR", Immediate, 2, false, opNoop2),
	0x6C: op("JMP", Indirect, 5, false, opJMP),
	0x6D: op("ADC", Absolute, 4, false, opADC),
	0x6E: op("ROR", Absolute, 6, false, opROR),
	0x6F: op("RRA", Absolute, 6, false, opRRA),

	0x70: op("BVS", Relative, 2, false, opBVS),
	0x71: op("ADC", IndirectIndexed, 5, true, opADC),
	0x72: op("STP", Implied, 2, false, opSTP),
	0x73: op("RRA", IndirectIndexed, 8, false, opRRA),
	0x74: op("NOP", ZeroPageX, 4, false, opNOP),
	0x75: op("ADC", ZeroPageX, 4, false, opADC),
	0x76: op("ROR", ZeroPageX, 6, false, opROR),
	0x77: op("RRA", ZeroPageX, 6, false, opRRA),
	0x78: op("SEI", Implied, 2, false, opSEI),
	0x79: op("ADC", AbsoluteY, 4, true, opADC),
	0x7A: op("NOP", Implied, 2, false, opNOP),
	0x7B: op("RRA", AbsoluteY, 7, false, opRRA),
	0x7C: op("NOP", AbsoluteX, 4, true, opNOP),
	0x7D: op("ADC", AbsoluteX, 4, true, opADC),
	0x7E: op("ROR", AbsoluteX, 7, false, opROR),
	0x7F: op("RRA", AbsoluteX, 7, false, opRRA),

	0x80: op("NOP", Immediate, 2, false, opNOP),
	0x81: op("STA", IndexedIndirect, 6, false, opSTA),
	0x82: op("NOP", Immediate, 2, false, opNOP),
	0x83: op("SAX", IndexedIndirect, 6, false, opSAX),
	0x84: op("STY", ZeroPage, 3, false, opSTY),
	0x85: op("STA", ZeroPage, 3, false, opSTA),
	0x86: op("STX", ZeroPage, 3, false, opSTX),
	0x87: op("SAX", ZeroPage, 3, false, opSAX),
	0x88: op("DEY", Implied, 2, false, opDEY),
	0x89: op("NOP", Immediate, 2, false, opNOP),
	0x8A: op("TXA", Implied, 2, false, opTXA),
	0x8B: op("XAA", Immediate, 2, false, opNoop2),
	0x8C: op("STY", Absolute, 4, false, opSTY),
	0x8D: op("STA", Absolute, 4, false, opSTA),
	0x8E: op("STX", Absolute, 4, false, opSTX),
	0x8F: op("SAX", Absolute, 4, false, opSAX),

	0x90: op("BCC", Relative, 2, false, opBCC),
	0x91: op("STA", IndirectIndexed, 6, false, opSTA),
	0x92: op("STP", Implied, 2, false, opSTP),
	0x93: op("AHX", IndirectIndexed, 6, false, opNoop2),
	0x94: op("STY", ZeroPageX, 4, false, opSTY),
	0x95: op("STA", ZeroPageX, 4, false, opSTA),
	0x96: op("STX", ZeroPageY, 4, false, opSTX),
	0x97: op("SAX", ZeroPageY, 4, false, opSAX),
	0x98: op("TYA", Implied, 2, false, opTYA),
	0x99: op("STA", AbsoluteY, 5, false, opSTA),
	0x9A: op("TXS", Implied, 2, false, opTXS),
	0x9B: op("TAS", AbsoluteY, 5, false, opNoop2),
	0x9C: op("SHY", AbsoluteX, 5, false, opNoop2),
	0x9D: op("STA", AbsoluteX, 5, false, opSTA),
	0x9E: op("SHX", AbsoluteY, 5, false, opNoop2),
	0x9F: op("AHX", AbsoluteY, 5, false, opNoop2),

	0xA0: op("LDY", Immediate, 2, false, opLDY),
	0xA1: op("LDA", IndexedIndirect, 6, false, opLDA),
	0xA2: op("LDX", Immediate, 2, false, opLDX),
	0xA3: op("LAX", IndexedIndirect, 6, false, opLAX),
	0xA4: op("LDY", ZeroPage, 3, false, opLDY),
	0xA5: op("LDA", ZeroPage, 3, false, opLDA),
	0xA6: op("LDX", ZeroPage, 3, false, opLDX),
	0xA7: op("LAX", ZeroPage, 3, false, opLAX),
	0xA8: op("TAY", Implied, 2, false, opTAY),
	0xA9: op("LDA", Immediate, 2, false, opLDA),
	0xAA: op("TAX", Implied, 2, false, opTAX),
	0xAB: op("LAX", Immediate, 2, false, opLAX),
	0xAC: op("LDY", Absolute, 4, false, opLDY),
	0xAD: op("LDA", Absolute, 4, false, opLDA),
	0xAE: op("LDX", Absolute, 4, false, opLDX),
	0xAF: op("LAX", Absolute, 4, false, opLAX),

	0xB0: op("BCS", Relative, 2, false, opBCS),
	0xB1: op("LDA", IndirectIndexed, 5, true, opLDA),
	0xB2: op("STP", Implied, 2, false, opSTP),
	0xB3: op("LAX", IndirectIndexed, 5, true, opLAX),
	0xB4: op("LDY", ZeroPageX, 4, false, opLDY),
	0xB5: op("LDA", ZeroPageX, 4, false, opLDA),
	0xB6: op("LDX", ZeroPageY, 4, false, opLDX),
	0xB7: op("LAX", ZeroPageY, 4, false, opLAX),
	0xB8: op("CLV", Implied, 2, false, opCLV),
	0xB9: op("LDA", AbsoluteY, 4, true, opLDA),
	0xBA: op("TSX", Implied, 2, false, opTSX),
	0xBB: op("LAS", AbsoluteY, 4, true, opNoop2),
	0xBC: op("LDY", AbsoluteX, 4, true, opLDY),
	0xBD: op("LDA", AbsoluteX, 4, true, opLDA),
	0xBE: op("LDX", AbsoluteY, 4, true, opLDX),
	0xBF: op("LAX", AbsoluteY, 4, true, opLAX),

	0xC0: op("CPY", Immediate, 2, false, opCPY),
	0xC1: op("CMP", IndexedIndirect, 6, false, opCMP),
	0xC2: op("NOP", Immediate, 2, false, opNOP),
	0xC3: op("DCP", IndexedIndirect, 8, false, opDCP),
	0xC4: op("CPY", ZeroPage, 3, false, opCPY),
	0xC5: op("CMP", ZeroPage, 3, false, opCMP),
	0xC6: op("DEC", ZeroPage, 5, false, opDEC),
	0xC7: op("DCP", ZeroPage, 5, false, opDCP),
	0xC8: op("INY", Implied, 2, false, opINY),
	0xC9: op("CMP", Immediate, 2, false, opCMP),
	0xCA: op("DEX", Implied, 2, false, opDEX),
	0xCB: op("AXS", Immediate, 2, false, opNoop2),
	0xCC: op("CPY", Absolute, 4, false, opCPY),
	0xCD: op("CMP", Absolute, 4, false, opCMP),
	0xCE: op("DEC", Absolute, 6, false, opDEC),
	0xCF: op("DCP", Absolute, 6, false, opDCP),

	0xD0: op("BNE", Relative, 2, false, opBNE),
	0xD1: op("CMP", IndirectIndexed, 5, true, opCMP),
	0xD2: op("STP", Implied, 2, false, opSTP),
	0xD3: op("DCP", IndirectIndexed, 8, false, opDCP),
	0xD4: op("NOP", ZeroPageX, 4, false, opNOP),
	0xD5: op("CMP", ZeroPageX, 4, false, opCMP),
	0xD6: op("DEC", ZeroPageX, 6, false, opDEC),
	0xD7: op("DCP", ZeroPageX, 6, false, opDCP),
	0xD8: op("CLD", Implied, 2, false, opCLD),
	0xD9: op("CMP", AbsoluteY, 4, true, opCMP),
	0xDA: op("NOP", Implied, 2, false, opNOP),
	0xDB: op("DCP", AbsoluteY, 7, false, opDCP),
	0xDC: op("NOP", AbsoluteX, 4, true, opNOP),
	0xDD: op("CMP", AbsoluteX, 4, true, opCMP),
	0xDE: op("DEC", AbsoluteX, 7, false, opDEC),
	0xDF: op("DCP", AbsoluteX, 7, false, opDCP),

	0xE0: op("CPX", Immediate, 2, false, opCPX),
	0xE1: op("SBC", IndexedIndirect, 6, false, opSBC),
	0xE2: op("NOP", Immediate, 2, false, opNOP),
	0xE3: op("ISB", IndexedIndirect, 8, false, opISB),
	0xE4: op("CPX", ZeroPage, 3, false, opCPX),
	0xE5: op("SBC", ZeroPage, 3, false, opSBC),
	0xE6: op("INC", ZeroPage, 5, false, opINC),
	0xE7: op("ISB", ZeroPage, 5, false, opISB),
	0xE8: op("INX", Implied, 2, false, opINX),
	0xE9: op("SBC", Immediate, 2, false, opSBC),
	0xEA: op("NOP", Implied, 2, false, opNOP),
	0xEB: op("SBC", Immediate, 2, false, opSBC),
	0xEC: op("CPX", Absolute, 4, false, opCPX),
	0xED: op("SBC", Absolute, 4, false, opSBC),
	0xEE: op("INC", Absolute, 6, false, opINC),
	0xEF: op("ISB", Absolute, 6, false, opISB),

	0xF0: op("BEQ", Relative, 2, false, opBEQ),
	0xF1: op("SBC", IndirectIndexed, 5, true, opSBC),
	0xF2: op("STP", Implied, 2, false, opSTP),
	0xF3: op("ISB", IndirectIndexed, 8, false, opISB),
	0xF4: op("NOP", ZeroPageX, 4, false, opNOP),
	0xF5: op("SBC", ZeroPageX, 4, false, opSBC),
	0xF6: op("INC", ZeroPageX, 6, false, opINC),
	0xF7: op("ISB", ZeroPageX, 6, false, opISB),
	0xF8: op("SED", Implied, 2, false, opSED),
	0xF9: op("SBC", AbsoluteY, 4, true, opSBC),
	0xFA: op("NOP", Implied, 2, false, opNOP),
	0xFB: op("ISB", AbsoluteY, 7, false, opISB),
	0xFC: op("NOP", AbsoluteX, 4, true, opNOP),
	0xFD: op("SBC", AbsoluteX, 4, true, opSBC),
	0xFE: op("INC", AbsoluteX, 7, false, opINC),
	0xFF: op("ISB", AbsoluteX, 7, false, opISB),
}
