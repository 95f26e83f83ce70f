// This file is part of Gopherchips.
//
// Gopherchips is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherchips is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherchips.  If not, see <https://www.gnu.org/licenses/>.

package z80ctc

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherchips/hardware/cpu/z80"
	"github.com/jetsetilly/gopherchips/hardware/daisychain"
	"github.com/jetsetilly/gopherchips/hardware/pins"
)

// NumChannels is the number of counter/timer channels in the CTC.
const NumChannels = 4

// Bits of the channel control word.
const (
	CtrlControl      = 0x01 // the byte is a control word (otherwise a vector)
	CtrlReset        = 0x02 // software reset. the channel stops
	CtrlConstFollows = 0x04 // the next byte written is the time constant
	CtrlTriggerWait  = 0x08 // timer mode waits for an edge on CLK/TRG
	CtrlRisingEdge   = 0x10 // the active edge of CLK/TRG
	CtrlPrescaler256 = 0x20 // timer mode prescaler is 256 (otherwise 16)
	CtrlCounter      = 0x40 // counter mode (otherwise timer mode)
	CtrlInterrupt    = 0x80 // interrupt on zero count
)

// Channel is a single counter/timer of the CTC. The interrupt state of the
// channel is in the embedded Request.
type Channel struct {
	daisychain.Request

	// the most recent control word
	Control uint8

	// the time constant. a value of zero counts 256
	Constant uint8

	// the current value of the down counter
	Counter int

	// the interrupt vector of the channel. the upper five bits are shared by
	// all channels and are written through channel 0
	Vector uint8

	prescaler uint8
	waiting   bool

	// the level of the CLK/TRG input in the previous tick
	trigger bool
}

func (ch *Channel) String() string {
	mode := "timer"
	if ch.Control&CtrlCounter == CtrlCounter {
		mode = "counter"
	}
	return fmt.Sprintf("%s ctrl=%02x const=%02x count=%02x vec=%02x",
		mode, ch.Control, ch.Constant, uint8(ch.Counter), ch.Vector)
}

// Running returns true if the channel is counting or waiting for a trigger.
func (ch *Channel) Running() bool {
	return ch.Control&(CtrlReset|CtrlConstFollows) == 0
}

func (ch *Channel) load() {
	ch.Counter = int(ch.Constant)
	if ch.Counter == 0 {
		ch.Counter = 256
	}
	ch.prescaler = 0
}

// CTC is the Z80 counter/timer circuit. It is attached to the IO decoder
// of a Z80 system as a pins.Responder and takes part in the interrupt daisy
// chain as a daisychain.Device.
type CTC struct {
	Channels [NumChannels]Channel
}

// NewCTC is the preferred method of initialisation for the CTC type.
func NewCTC() *CTC {
	ctc := &CTC{}
	ctc.Reset()
	return ctc
}

// Reset the CTC to the power-on state. All channels are stopped with
// interrupts disabled.
func (ctc *CTC) Reset() {
	for i := range ctc.Channels {
		ctc.Channels[i] = Channel{
			Control: CtrlReset,
			Vector:  uint8(i << 1),
		}
	}
}

func (ctc *CTC) String() string {
	s := strings.Builder{}
	for i := range ctc.Channels {
		s.WriteString(fmt.Sprintf("%d: %s\n", i, ctc.Channels[i].String()))
	}
	return s.String()
}

// Write a byte to the channel. The byte is interpreted as a time constant,
// a control word or an interrupt vector depending on the state of the channel
// and the value of the byte.
func (ctc *CTC) Write(channel int, data uint8) {
	ch := &ctc.Channels[channel]

	if ch.Control&CtrlConstFollows == CtrlConstFollows {
		ch.Constant = data
		ch.Control &^= CtrlConstFollows | CtrlReset
		if ch.Control&(CtrlCounter|CtrlTriggerWait) == CtrlTriggerWait {
			ch.waiting = true
		} else {
			ch.waiting = false
			ch.load()
		}
		return
	}

	if data&CtrlControl == CtrlControl {
		ch.Control = data
		if data&CtrlInterrupt == 0 {
			ch.Clear()
		}
		return
	}

	// the vector can only be written through channel 0
	if channel == 0 {
		for i := range ctc.Channels {
			ctc.Channels[i].Vector = data&0xf8 | uint8(i<<1)
		}
	}
}

// Read returns the current value of the channel's down counter.
func (ctc *CTC) Read(channel int) uint8 {
	return uint8(ctc.Channels[channel].Counter)
}

// Respond implements the pins.Responder interface. The channel is selected
// by the lowest two bits of the address (CS0 and CS1). The CTC should be
// attached to the system through a decoder that selects on IORQ.
func (ctc *CTC) Respond(p pins.Word) pins.Word {
	// M1 with IORQ is an interrupt acknowledge. handled by Interrupt()
	if !p.Has(z80.IORQ) || p.Has(z80.M1) {
		return p
	}

	channel := int(p.Address() & 0x03)
	if p.Has(z80.RD) {
		return p.OrData(ctc.Read(channel))
	}
	if p.Has(z80.WR) {
		ctc.Write(channel, p.Data())
	}
	return p
}

// Tick advances every channel by one clock. The CLK/TRG inputs are sampled
// from the pin word and the ZC/TO outputs are driven for the tick in which a
// channel reaches zero.
func (ctc *CTC) Tick(p pins.Word) pins.Word {
	p = p.Clear(ZCTO0 | ZCTO1 | ZCTO2)
	for i := range ctc.Channels {
		if ctc.tickChannel(i, p.Has(clktrg[i])) {
			p = p.Set(zcto[i])
		}
	}
	return p
}

// returns true if the channel reached zero
func (ctc *CTC) tickChannel(i int, trg bool) bool {
	ch := &ctc.Channels[i]
	zero := false

	if trg != ch.trigger {
		ch.trigger = trg
		rising := ch.Control&CtrlRisingEdge == CtrlRisingEdge
		if trg == rising && ch.Running() {
			if ch.Control&CtrlCounter == CtrlCounter {
				ch.Counter--
				zero = ch.Counter == 0
			} else if ch.waiting {
				ch.waiting = false
				ch.load()
			}
		}
	}

	if ch.Control&CtrlCounter == 0 && ch.Running() && !ch.waiting {
		mask := uint8(0x0f)
		if ch.Control&CtrlPrescaler256 == CtrlPrescaler256 {
			mask = 0xff
		}
		ch.prescaler = (ch.prescaler - 1) & mask
		if ch.prescaler == 0 {
			ch.Counter--
			zero = ch.Counter == 0
		}
	}

	if zero {
		ch.load()
		if ch.Control&CtrlInterrupt == CtrlInterrupt {
			ch.Trigger()
		}
	}

	return zero
}

// Interrupt implements the daisychain.Device interface. Channel 0 has the
// highest priority.
func (ctc *CTC) Interrupt(p pins.Word) pins.Word {
	for i := range ctc.Channels {
		p = ctc.Channels[i].Resolve(p, ctc.Channels[i].Vector)
	}
	return p
}
