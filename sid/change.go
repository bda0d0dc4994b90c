package sid

import (
	"fmt"

	"sid64/mask"
)

// A Meaning names what a register index controls. Oscillator registers
// share one Meaning per function; the voice number travels separately in
// the RegisterChange.
type Meaning int

const (
	OscFreqLo Meaning = iota
	OscFreqHi
	OscPulseWidthLo
	OscPulseWidthHi
	OscControl
	OscAttackDecay
	OscSustainRelease
	FilterFreqLo
	FilterFreqHi
	FilterResControl
	FilterModeVolume
)

var meaningNames = map[Meaning]string{
	OscFreqLo:         "osc freq lo",
	OscFreqHi:         "osc freq hi",
	OscPulseWidthLo:   "osc pulse width lo",
	OscPulseWidthHi:   "osc pulse width hi",
	OscControl:        "osc control",
	OscAttackDecay:    "osc attack/decay",
	OscSustainRelease: "osc sustain/release",
	FilterFreqLo:      "filter freq lo",
	FilterFreqHi:      "filter freq hi",
	FilterResControl:  "filter res/control",
	FilterModeVolume:  "filter mode/volume",
}

func (m Meaning) String() string { return meaningNames[m] }

// meaningOf maps a register index (0..24) to its Meaning and voice number
// (1..3 for oscillator registers, 0 otherwise).
func meaningOf(index int) (Meaning, int) {
	if index < 21 {
		return Meaning(index % 7), index/7 + 1
	}
	switch index {
	case 21:
		return FilterFreqLo, 0
	case 22:
		return FilterFreqHi, 0
	case 23:
		return FilterResControl, 0
	default:
		return FilterModeVolume, 0
	}
}

// WaveformControl is a view over a voice control register byte.
//
// https://www.c64-wiki.com/wiki/SID
type WaveformControl struct {
	Gate     bool // bit 0
	Sync     bool // bit 1
	Ring     bool // bit 2
	Test     bool // bit 3
	Triangle bool // bit 4
	Sawtooth bool // bit 5
	Pulse    bool // bit 6
	Noise    bool // bit 7
}

func WaveformControlFrom(b byte) WaveformControl {
	return WaveformControl{
		Gate:     mask.IsSet(b, mask.B0),
		Sync:     mask.IsSet(b, mask.B1),
		Ring:     mask.IsSet(b, mask.B2),
		Test:     mask.IsSet(b, mask.B3),
		Triangle: mask.IsSet(b, mask.B4),
		Sawtooth: mask.IsSet(b, mask.B5),
		Pulse:    mask.IsSet(b, mask.B6),
		Noise:    mask.IsSet(b, mask.B7),
	}
}

// AttackDecay is a view over an attack/decay register byte.
type AttackDecay struct {
	Attack byte // high nibble
	Decay  byte // low nibble
}

func AttackDecayFrom(b byte) AttackDecay {
	return AttackDecay{Attack: mask.High(b), Decay: mask.Low(b)}
}

// SustainRelease is a view over a sustain/release register byte.
type SustainRelease struct {
	Sustain byte // high nibble
	Release byte // low nibble
}

func SustainReleaseFrom(b byte) SustainRelease {
	return SustainRelease{Sustain: mask.High(b), Release: mask.Low(b)}
}

// FilterRes is a view over the filter resonance/routing register ($D417).
type FilterRes struct {
	Osc1      bool // bit 0
	Osc2      bool // bit 1
	Osc3      bool // bit 2
	Ext       bool // bit 3
	Resonance byte // bits 4-7
}

func FilterResFrom(b byte) FilterRes {
	return FilterRes{
		Osc1:      mask.IsSet(b, mask.B0),
		Osc2:      mask.IsSet(b, mask.B1),
		Osc3:      mask.IsSet(b, mask.B2),
		Ext:       mask.IsSet(b, mask.B3),
		Resonance: mask.Range(b, mask.B4, mask.B7),
	}
}

// FilterMode is a view over the filter mode/volume register ($D418).
type FilterMode struct {
	Volume   byte // bits 0-3
	LowPass  bool // bit 4
	BandPass bool // bit 5
	HighPass bool // bit 6
	Osc3Off  bool // bit 7
}

func FilterModeFrom(b byte) FilterMode {
	return FilterMode{
		Volume:   mask.Low(b),
		LowPass:  mask.IsSet(b, mask.B4),
		BandPass: mask.IsSet(b, mask.B5),
		HighPass: mask.IsSet(b, mask.B6),
		Osc3Off:  mask.IsSet(b, mask.B7),
	}
}

// Details carries the decoded view matching the change's Meaning; exactly
// one field is non-nil for the bitfield/nibble registers, all are nil for
// raw-byte registers.
type Details struct {
	Wave           *WaveformControl
	AttackDecay    *AttackDecay
	SustainRelease *SustainRelease
	FilterRes      *FilterRes
	FilterMode     *FilterMode
}

// A RegisterChange describes one observed write that altered a register.
type RegisterChange struct {
	Meaning  Meaning
	Osc      int // 1..3 for oscillator registers, 0 otherwise
	Index    int
	OldValue byte
	NewValue byte
	Details  Details
	Cycle    uint32
}

func newChange(index int, old, value byte, cycle uint32) *RegisterChange {
	meaning, osc := meaningOf(index)
	ch := &RegisterChange{
		Meaning:  meaning,
		Osc:      osc,
		Index:    index,
		OldValue: old,
		NewValue: value,
		Cycle:    cycle,
	}
	switch meaning {
	case OscControl:
		w := WaveformControlFrom(value)
		ch.Details.Wave = &w
	case OscAttackDecay:
		ad := AttackDecayFrom(value)
		ch.Details.AttackDecay = &ad
	case OscSustainRelease:
		sr := SustainReleaseFrom(value)
		ch.Details.SustainRelease = &sr
	case FilterResControl:
		fr := FilterResFrom(value)
		ch.Details.FilterRes = &fr
	case FilterModeVolume:
		fm := FilterModeFrom(value)
		ch.Details.FilterMode = &fm
	}
	return ch
}

func (c *RegisterChange) String() string {
	if c.Osc != 0 {
		return fmt.Sprintf("[%10d] osc%d %s: %02X -> %02X",
			c.Cycle, c.Osc, c.Meaning, c.OldValue, c.NewValue)
	}
	return fmt.Sprintf("[%10d] %s: %02X -> %02X",
		c.Cycle, c.Meaning, c.OldValue, c.NewValue)
}

// Query helpers, each answering in terms of the Meaning field. An osc
// outside 1..3 never matches.

func (c *RegisterChange) VolumeChanged() bool     { return c.Meaning == FilterModeVolume }
func (c *RegisterChange) FilterModeChanged() bool { return c.Meaning == FilterModeVolume }
func (c *RegisterChange) FilterResChanged() bool  { return c.Meaning == FilterResControl }

func (c *RegisterChange) FilterFreqChanged() bool {
	return c.Meaning == FilterFreqLo || c.Meaning == FilterFreqHi
}

func (c *RegisterChange) oscMatch(osc int, m ...Meaning) bool {
	if osc != c.Osc {
		return false
	}
	for _, meaning := range m {
		if c.Meaning == meaning {
			return true
		}
	}
	return false
}

func (c *RegisterChange) OscFreqChanged(osc int) bool {
	return c.oscMatch(osc, OscFreqLo, OscFreqHi)
}

func (c *RegisterChange) OscPulseWidthChanged(osc int) bool {
	return c.oscMatch(osc, OscPulseWidthLo, OscPulseWidthHi)
}

func (c *RegisterChange) OscWaveformChanged(osc int) bool {
	return c.oscMatch(osc, OscControl)
}

func (c *RegisterChange) OscAttackDecayChanged(osc int) bool {
	return c.oscMatch(osc, OscAttackDecay)
}

func (c *RegisterChange) OscSustainReleaseChanged(osc int) bool {
	return c.oscMatch(osc, OscSustainRelease)
}
