package sx1278

import (
	"fmt"
	"time"
)

// regWrite records one register write in the order it happened
type regWrite struct {
	addr  uint8
	value uint8
}

// fakeChip emulates the SX1278 register file behind the Transport and
// Pin contracts: address framing with the read/write indicator bit,
// FIFO auto-increment through RegFifoAddrPtr, and write-ones-to-clear
// IRQ flags. It refuses transfers outside a chip-select window so the
// tests also verify NSS framing.
type fakeChip struct {
	regs [128]uint8
	fifo [256]uint8

	nssLow    bool
	selected  bool // an address byte has been seen in this window
	addr      uint8
	writeMode bool

	rawAddrs []uint8    // every address byte as it crossed the bus
	writes   []regWrite // every register write, in order

	// injectable failures
	transmitErr error
	receiveErr  error

	framingErrs []string
}

func newFakeChip() *fakeChip {
	c := &fakeChip{}
	c.regs[RegVersion] = VersionSignature
	return c
}

// attach wires the fake into a Radio with delays disabled
func (c *fakeChip) attach(r *Radio) {
	r.Attach(c, fakeNSS{c}, fakeReset{}, nil)
	r.sleep = func(time.Duration) {}
}

func (c *fakeChip) readReg(addr uint8) uint8 {
	if addr == RegFifo {
		ptr := c.regs[RegFifoAddrPtr]
		c.regs[RegFifoAddrPtr]++
		return c.fifo[ptr]
	}
	return c.regs[addr]
}

func (c *fakeChip) writeReg(addr, value uint8) {
	c.writes = append(c.writes, regWrite{addr, value})
	switch addr {
	case RegFifo:
		ptr := c.regs[RegFifoAddrPtr]
		c.fifo[ptr] = value
		c.regs[RegFifoAddrPtr]++
	case RegIrqFlags:
		// write-ones-to-clear
		c.regs[addr] &^= value
	default:
		c.regs[addr] = value
	}
}

func (c *fakeChip) Transmit(p []byte, _ time.Duration) error {
	if c.transmitErr != nil {
		return c.transmitErr
	}
	if !c.nssLow {
		c.framingErrs = append(c.framingErrs, "transmit outside chip-select window")
		return nil
	}
	for _, b := range p {
		if !c.selected {
			c.selected = true
			c.addr = b & addrReadMask
			c.writeMode = b&addrWriteBit != 0
			c.rawAddrs = append(c.rawAddrs, b)
			continue
		}
		if !c.writeMode {
			c.framingErrs = append(c.framingErrs, fmt.Sprintf("data write to 0x%02X selected for read", c.addr))
			continue
		}
		c.writeReg(c.addr, b)
	}
	return nil
}

func (c *fakeChip) Receive(p []byte, _ time.Duration) error {
	if c.receiveErr != nil {
		return c.receiveErr
	}
	if !c.nssLow {
		c.framingErrs = append(c.framingErrs, "receive outside chip-select window")
		return nil
	}
	if !c.selected {
		c.framingErrs = append(c.framingErrs, "receive with no register selected")
		return nil
	}
	if c.writeMode {
		c.framingErrs = append(c.framingErrs, fmt.Sprintf("read from 0x%02X selected for write", c.addr))
		return nil
	}
	for i := range p {
		p[i] = c.readReg(c.addr)
	}
	return nil
}

// lastWrite returns the most recent write to addr and whether one exists
func (c *fakeChip) lastWrite(addr uint8) (uint8, bool) {
	for i := len(c.writes) - 1; i >= 0; i-- {
		if c.writes[i].addr == addr {
			return c.writes[i].value, true
		}
	}
	return 0, false
}

// writeIndex returns the position of the first write of value to addr,
// or -1 when absent
func (c *fakeChip) writeIndex(addr, value uint8) int {
	for i, w := range c.writes {
		if w.addr == addr && w.value == value {
			return i
		}
	}
	return -1
}

// fakeNSS drives the fake's chip-select state
type fakeNSS struct {
	chip *fakeChip
}

func (p fakeNSS) Set(high bool) error {
	p.chip.nssLow = !high
	if !high {
		// new transaction window
		p.chip.selected = false
	}
	return nil
}

// fakeReset is a RESET line that accepts anything
type fakeReset struct{}

func (fakeReset) Set(bool) error { return nil }
