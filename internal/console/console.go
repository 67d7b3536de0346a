// Package console wires the CPU, PPU, APU, mapper, and input ports into a
// single runnable machine and owns the shared address bus between them.
package console

import (
	"github.com/nesquik/corenes/internal/apu"
	"github.com/nesquik/corenes/internal/cartridge"
	"github.com/nesquik/corenes/internal/cpu"
	"github.com/nesquik/corenes/internal/input"
	"github.com/nesquik/corenes/internal/logger"
	"github.com/nesquik/corenes/internal/mapper"
	"github.com/nesquik/corenes/internal/ppu"
)

// audioBatchSize is how many samples accumulate before the registered
// audio sink is called mid-frame; StepFrame flushes any remainder.
const audioBatchSize = 2048

// Options configures a Console at construction time.
type Options struct {
	// SampleRate is the APU's output sample rate in Hz. Zero defaults to
	// 48000.
	SampleRate int
	// Tracer receives per-component trace events when non-nil. See
	// internal/logger.
	Tracer logger.Sink
}

// Console is the assembled machine: CPU bus decoding, the 1:3 CPU:PPU
// clock ratio, OAM DMA stalls, and NMI/IRQ routing between components.
type Console struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Mapper mapper.Mapper
	Cart   *cartridge.Cartridge
	Input  *input.Input

	ram [0x800]byte

	dmaStall int

	audioSink func([]float32)

	log logger.Sink
}

// New builds a Console around cart. The returned Console is reset and
// ready to Step.
func New(cart *cartridge.Cartridge, opts Options) (*Console, error) {
	log := opts.Tracer
	if log == nil {
		log = logger.Nop
	}
	m, err := mapper.New(cart, log)
	if err != nil {
		return nil, err
	}

	c := &Console{
		Cart:   cart,
		Mapper: m,
		Input:  input.New(),
		log:    log,
	}
	c.PPU = ppu.New(log)
	c.PPU.ConnectCartridge(cartAdapter{m})
	c.APU = apu.New(opts.SampleRate, log)
	c.CPU = cpu.New(c, log)

	c.Reset()
	return c, nil
}

// Reset brings every component (except cartridge RAM) back to its
// power-on/reset state and reloads the CPU's PC from the reset vector.
func (c *Console) Reset() {
	c.PPU.Reset()
	c.APU.Reset()
	c.dmaStall = 0
	c.CPU.Reset()
}

// RegisterAudioSink installs fn as the consumer of the APU's output; it is
// called with batches of mono float32 samples as they accumulate. A nil fn
// reverts to pull-style consumption through DrainAudio.
func (c *Console) RegisterAudioSink(fn func([]float32)) { c.audioSink = fn }

// SetButton updates one button of one controller port ahead of the next
// controller-read cycle. port is 0 or 1; button is an input.Button* mask.
func (c *Console) SetButton(port int, button uint8, pressed bool) {
	c.Input.SetButton(port, button, pressed)
}

// BatteryBackedRAM exposes the cartridge's PRG-RAM as a raw byte slice for
// host checkpointing.
func (c *Console) BatteryBackedRAM() []byte { return c.Cart.BatteryView() }

// Step runs exactly one CPU instruction (or interrupt service), then
// drives the PPU three dots and the APU one tick per elapsed CPU cycle,
// routing NMI and mapper-IRQ lines back to the CPU. It returns the number
// of CPU cycles the step consumed, including any OAM DMA stall.
func (c *Console) Step() int {
	cycles := c.CPU.Step()
	if c.dmaStall > 0 {
		cycles += c.dmaStall
		c.CPU.Cycles += uint64(c.dmaStall)
		c.dmaStall = 0
	}

	for i := 0; i < cycles*3; i++ {
		c.PPU.Step()
		if c.PPU.NMIPending() {
			c.CPU.RaiseNMI()
			c.PPU.ClearNMI()
		}
		if c.Mapper.IRQPending() {
			c.CPU.RaiseIRQ()
		}
	}

	for i := 0; i < cycles; i++ {
		c.APU.Step()
	}
	if c.APU.IRQPending() {
		c.CPU.RaiseIRQ()
	}
	if c.audioSink != nil && len(c.APU.Output) >= audioBatchSize {
		c.flushAudio()
	}

	return cycles
}

// StepFrame runs until the PPU completes exactly one frame, then flushes
// any remaining audio to the registered sink.
func (c *Console) StepFrame() {
	start := c.PPU.Frame
	for c.PPU.Frame == start {
		c.Step()
	}
	if c.audioSink != nil {
		c.flushAudio()
	}
}

func (c *Console) flushAudio() {
	samples := c.APU.DrainSamples()
	if len(samples) > 0 {
		c.audioSink(samples)
	}
}

// Framebuffer returns the 256x240 ARGB8888 (0xAARRGGBB) pixel buffer for the most
// recently completed frame; the frame being scanned out is never exposed.
func (c *Console) Framebuffer() []uint32 { return c.PPU.Framebuffer() }

// DrainAudio returns and clears the APU's pending output samples, for
// hosts that poll instead of registering a sink.
func (c *Console) DrainAudio() []float32 { return c.APU.DrainSamples() }

// cartAdapter lets the PPU talk to the mapper through ppu.Cartridge
// without the ppu package importing cartridge/mapper types directly.
type cartAdapter struct{ m mapper.Mapper }

func (a cartAdapter) Read(addr uint16) byte         { return a.m.Read(addr) }
func (a cartAdapter) Write(addr uint16, value byte) { a.m.Write(addr, value) }
func (a cartAdapter) OnScanline()                   { a.m.OnScanline() }

func (a cartAdapter) Mirroring() ppu.Mirroring {
	switch a.m.Mirroring() {
	case cartridge.Vertical:
		return ppu.MirrorVertical
	case cartridge.SingleLower:
		return ppu.MirrorSingleLower
	case cartridge.SingleUpper:
		return ppu.MirrorSingleUpper
	case cartridge.FourScreen:
		return ppu.MirrorFourScreen
	default:
		return ppu.MirrorHorizontal
	}
}
