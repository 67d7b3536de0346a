package apu

type lengthCounter struct {
	enabled bool
	halt    bool
	value   uint8
}

func (l *lengthCounter) clock() {
	if !l.halt && l.value > 0 {
		l.value--
	}
}

func (l *lengthCounter) setEnabled(e bool) {
	l.enabled = e
	if !e {
		l.value = 0
	}
}

func (l *lengthCounter) load(index uint8) {
	if l.enabled {
		l.value = lengthTable[index&0x1F]
	}
}

type envelopeUnit struct {
	start    bool
	loop     bool
	constant bool
	volume   uint8
	decay    uint8
	divider  uint8
}

func (e *envelopeUnit) clock() {
	if e.start {
		e.start = false
		e.decay = 15
		e.divider = e.volume
		return
	}
	if e.divider > 0 {
		e.divider--
		return
	}
	e.divider = e.volume
	if e.decay > 0 {
		e.decay--
	} else if e.loop {
		e.decay = 15
	}
}

func (e *envelopeUnit) output() uint8 {
	if e.constant {
		return e.volume
	}
	return e.decay
}

var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

// pulseChannel is one of the two pulse-wave generators: an 11-bit timer
// driving an 8-step duty sequencer, gated by a length counter and scaled by
// an envelope, with a sweep unit gliding the timer period.
type pulseChannel struct {
	duty    uint8
	seqPos  uint8
	period  uint16
	timer   uint16
	length  lengthCounter
	envelope envelopeUnit

	sweepEnabled bool
	sweepPeriod  uint8
	sweepNegate  bool
	sweepShift   uint8
	sweepReload  bool
	sweepDivider uint8
	muted        bool
}

func (p *pulseChannel) clockTimer() {
	if p.timer == 0 {
		p.timer = p.period
		p.seqPos = (p.seqPos - 1) & 7
	} else {
		p.timer--
	}
}

func (p *pulseChannel) targetPeriod(onesComplementNegate bool) uint16 {
	change := int(p.period) >> p.sweepShift
	if p.sweepNegate {
		change = -change
		if onesComplementNegate {
			change--
		}
	}
	target := int(p.period) + change
	if target < 0 {
		target = 0
	}
	return uint16(target)
}

func (p *pulseChannel) clockSweep(onesComplementNegate bool) {
	target := p.targetPeriod(onesComplementNegate)
	p.muted = p.period < 8 || target > 0x7FF

	if p.sweepDivider == 0 && p.sweepEnabled && !p.muted && p.sweepShift > 0 {
		p.period = target
	}
	if p.sweepDivider == 0 || p.sweepReload {
		p.sweepDivider = p.sweepPeriod
		p.sweepReload = false
	} else {
		p.sweepDivider--
	}
}

func (p *pulseChannel) output() uint8 {
	// muted covers the sweep-target overflow case (target > 0x7FF); the
	// period floor applies even before any sweep clock has run.
	if p.length.value == 0 || p.muted || p.period < 8 {
		return 0
	}
	if dutyTable[p.duty][p.seqPos] == 0 {
		return 0
	}
	return p.envelope.output()
}
