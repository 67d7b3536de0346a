// Package apu implements the audio processing unit: two pulse channels, a
// triangle channel, a noise channel, a stubbed-out DMC, a 4-step/5-step
// frame counter, and the NES's non-linear mixer. See pulse.go, triangle.go,
// and noise.go for the channel units and registers.go for the $4000-$4017
// register window.
package apu

import "github.com/nesquik/corenes/internal/logger"

var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// APU holds all five channel units, frame-sequencer state, and the
// resampling accumulator that turns a CPU-cycle-rate signal into
// SampleRate-spaced float32 samples.
type APU struct {
	Pulse1, Pulse2 pulseChannel
	Triangle       triangleChannel
	Noise          noiseChannel
	dmc            dmcStub

	frameMode    uint8 // 0 = 4-step, 1 = 5-step
	frameInhibit bool
	frameStep    int
	frameCycle   int
	frameIRQ     bool

	cpuCycle uint64

	sampleRate   int
	sampleAccum  float64
	samplesPerCy float64
	Output       []float32

	log logger.Sink
}

const cpuClockHz = 1789773.0

// New creates an APU that resamples to sampleRate output samples per
// second (48000 when zero). log may be nil.
func New(sampleRate int, log logger.Sink) *APU {
	if log == nil {
		log = logger.Nop
	}
	if sampleRate <= 0 {
		sampleRate = 48000
	}
	a := &APU{sampleRate: sampleRate, log: log}
	a.samplesPerCy = float64(sampleRate) / cpuClockHz
	a.Output = make([]float32, 0, 4096)
	a.Noise = newNoiseChannel()
	return a
}

func (a *APU) Reset() {
	a.Pulse1, a.Pulse2 = pulseChannel{}, pulseChannel{}
	a.Triangle = triangleChannel{}
	a.Noise = newNoiseChannel()
	a.dmc = dmcStub{}
	a.frameMode, a.frameStep, a.frameCycle = 0, 0, 0
	a.frameInhibit, a.frameIRQ = false, false
	a.cpuCycle = 0
	a.sampleAccum = 0
	a.Output = a.Output[:0]
}

// frameSequence gives, per mode, the CPU-cycle offsets (relative to the
// last frame-counter reset) at which the quarter/half-frame clocks fire.
// These match the documented NTSC frame-counter timings.
var frameSequence4 = [4]int{7457, 14913, 22371, 29829}
var frameSequence5 = [5]int{7457, 14913, 22371, 29829, 37281}

// Step advances the APU by one CPU cycle: the frame sequencer, the channel
// timers (pulse/noise clock every other call, triangle every call; the DMC
// stub has no timer), and the output resampler.
func (a *APU) Step() {
	a.cpuCycle++
	a.tickFrameCounter()

	if a.cpuCycle%2 == 0 {
		a.Pulse1.clockTimer()
		a.Pulse2.clockTimer()
		a.Noise.clockTimer()
	}
	a.Triangle.clockTimer()

	a.sampleAccum += a.samplesPerCy
	if a.sampleAccum >= 1.0 {
		a.sampleAccum -= 1.0
		a.Output = append(a.Output, a.mix())
	}
}

// DrainSamples returns and clears the accumulated output buffer, for the
// host to hand to its audio sink once per frame.
func (a *APU) DrainSamples() []float32 {
	out := a.Output
	a.Output = make([]float32, 0, 4096)
	return out
}

func (a *APU) tickFrameCounter() {
	steps := frameSequence4[:]
	if a.frameMode == 1 {
		steps = frameSequence5[:]
	}
	if a.frameStep >= len(steps) {
		a.frameCycle = 0
		a.frameStep = 0
	}
	if a.frameCycle != steps[a.frameStep] {
		a.frameCycle++
		return
	}
	a.frameCycle++

	quarterFrame := true
	halfFrame := a.frameMode == 0 && (a.frameStep == 1 || a.frameStep == 3) ||
		a.frameMode == 1 && (a.frameStep == 1 || a.frameStep == 4)

	if quarterFrame {
		a.Pulse1.envelope.clock()
		a.Pulse2.envelope.clock()
		a.Noise.envelope.clock()
		a.Triangle.clockLinear()
	}
	if halfFrame {
		a.Pulse1.length.clock()
		a.Pulse2.length.clock()
		a.Triangle.length.clock()
		a.Noise.length.clock()
		a.Pulse1.clockSweep(true)
		a.Pulse2.clockSweep(false)
	}

	if a.frameMode == 0 && a.frameStep == 3 && !a.frameInhibit {
		a.frameIRQ = true
	}

	a.frameStep++
	if a.frameMode == 0 && a.frameStep >= 4 {
		a.frameStep, a.frameCycle = 0, 0
	} else if a.frameMode == 1 && a.frameStep >= 5 {
		a.frameStep, a.frameCycle = 0, 0
	}
}

// IRQPending reports a pending frame-counter IRQ; the DMC stub never
// raises one.
func (a *APU) IRQPending() bool { return a.frameIRQ }

var pulseTable [31]float32
var tndTable [203]float32

func init() {
	for i := range pulseTable {
		if i == 0 {
			continue
		}
		pulseTable[i] = float32(95.52 / (8128.0/float64(i) + 100.0))
	}
	for i := range tndTable {
		if i == 0 {
			continue
		}
		tndTable[i] = float32(163.67 / (24329.0/float64(i) + 100.0))
	}
}

func (a *APU) mix() float32 {
	p1 := a.Pulse1.output()
	p2 := a.Pulse2.output()
	t := a.Triangle.output()
	n := a.Noise.output()
	d := a.dmc.output()

	pulseOut := pulseTable[p1+p2]
	tndOut := tndTable[3*t+2*n+d]
	return pulseOut + tndOut
}

// dmcStub is the delta-modulation channel: registers decode correctly and
// its length counter participates in $4015 status, but no sample playback
// occurs.
type dmcStub struct {
	irqEnable bool
	loop      bool
	rate      uint8
	level     uint8
	sampleLen uint16
}

// output always returns 0: the stub never contributes to the mix, even
// though $4011 direct-load writes still update d.level.
func (d *dmcStub) output() uint8 { return 0 }
