// Package sx1278 drives a Semtech SX1278 LoRa transceiver over SPI.
//
// The radio is attached through a small hardware contract (Transport for
// the serial bus, Pin for the chip-select and reset lines, InterruptPin
// for DIO0) so the driver works against any backend that can exchange
// bytes and toggle pins; adapters for periph.io are provided. Typical use:
//
//	radio := sx1278.New()
//	radio.Attach(bus, nss, reset, dio0)
//	if err := radio.Init(); err != nil { ... }
//	radio.Transmit([]byte("hello"))
//
// The driver is synchronous and blocking throughout. No method is safe
// for concurrent use: mode changes and the FIFO handshakes are multi-step
// register sequences with no atomicity beyond single SPI transactions, so
// callers must serialize access with one owning goroutine or an external
// mutex around the Radio.
package sx1278

import (
	"fmt"
	"time"
)

// Transport exchanges raw bytes with the radio over the serial bus.
// Chip-select framing is performed by the driver through a separate Pin;
// implementations must not toggle chip select themselves.
type Transport interface {
	// Transmit writes p to the bus, blocking until the transfer
	// completes or the timeout expires.
	Transmit(p []byte, timeout time.Duration) error

	// Receive fills p from the bus, blocking until the transfer
	// completes or the timeout expires.
	Receive(p []byte, timeout time.Duration) error
}

// Pin is a digital output line (chip select, reset)
type Pin interface {
	Set(high bool) error
}

// InterruptPin is the DIO0 line. The driver only configures what event
// the chip reports on it; waiting for the edge is the caller's job.
type InterruptPin interface {
	// WaitForEdge blocks until an edge is detected or the timeout
	// expires; it returns false on timeout. A negative timeout blocks
	// indefinitely.
	WaitForEdge(timeout time.Duration) bool
}

// Radio is the device handle for one SX1278. Hardware handles are owned
// by the caller and only referenced here. Construct with New, then
// Attach the hardware, then call Init exactly once.
type Radio struct {
	bus   Transport
	nss   Pin
	reset Pin

	// DIO0 reports TxDone or RxDone depending on the current mode
	// mapping. Exposed for callers that want edge-triggered operation;
	// the driver itself never reads it.
	DIO0 InterruptPin

	mode Mode

	// Modulation parameters pushed to the chip by Init. Changing them
	// afterwards has no effect until the matching setter is called.
	Frequency       uint32 // carrier frequency in MHz
	SpreadingFactor SpreadingFactor
	Bandwidth       Bandwidth
	CodingRate      CodingRate
	PreambleLength  uint16
	Power           uint8 // pre-encoded RegPaConfig byte
	OCPMilliamps    uint8

	// sleep is the delay primitive used between register writes that
	// need hardware settling time. Overridable in tests.
	sleep func(time.Duration)
}

// New returns a Radio with the default configuration: 433 MHz, SF7,
// 250 kHz bandwidth, 4/5 coding rate, +20 dBm, 8-symbol preamble,
// 100 mA over-current limit.
func New() *Radio {
	return &Radio{
		mode:            ModeSleep,
		Frequency:       433,
		SpreadingFactor: SF7,
		Bandwidth:       Bw250kHz,
		CodingRate:      Cr4_5,
		PreambleLength:  8,
		Power:           Power20dBm,
		OCPMilliamps:    100,
		sleep:           time.Sleep,
	}
}

// Attach wires the externally-owned hardware handles into the radio.
// dio0 may be nil when the caller polls instead of waiting for edges.
func (r *Radio) Attach(bus Transport, nss, reset Pin, dio0 InterruptPin) {
	r.bus = bus
	r.nss = nss
	r.reset = reset
	r.DIO0 = dio0
}

// Mode returns the operating mode recorded at the last successful mode
// change. It mirrors the chip's mode register; the driver never changes
// the hardware mode except as a synchronous side effect of an explicit
// call, so the two only diverge if a mode change failed partway.
func (r *Radio) Mode() Mode {
	return r.mode
}

// Reset performs a hardware reset through the RESET line: held low
// briefly, then released, then a settling wait while the chip reboots.
func (r *Radio) Reset() error {
	if r.reset == nil {
		return ErrNotAttached
	}
	if err := r.reset.Set(false); err != nil {
		return fmt.Errorf("failed to assert reset: %w", err)
	}
	r.sleep(ResetHoldDelay)
	if err := r.reset.Set(true); err != nil {
		return fmt.Errorf("failed to release reset: %w", err)
	}
	r.sleep(ResetSettleDelay)
	return nil
}

// ReadRegister reads a single byte from a chip register. The address is
// sent with the high bit cleared to select a read. Chip select is
// released on every return path, including bus failures.
func (r *Radio) ReadRegister(address uint8) (uint8, error) {
	if r.bus == nil {
		return 0, ErrNotAttached
	}
	if err := r.nss.Set(false); err != nil {
		return 0, fmt.Errorf("failed to assert chip select: %w", err)
	}
	defer r.nss.Set(true)

	if err := r.bus.Transmit([]byte{address & addrReadMask}, BusTimeout); err != nil {
		return 0, fmt.Errorf("failed to write address 0x%02X: %w", address, err)
	}
	value := make([]byte, 1)
	if err := r.bus.Receive(value, BusTimeout); err != nil {
		return 0, fmt.Errorf("failed to read register 0x%02X: %w", address, err)
	}
	return value[0], nil
}

// WriteRegister writes a single byte to a chip register. The address is
// sent with the high bit set to select a write.
func (r *Radio) WriteRegister(address, value uint8) error {
	if r.bus == nil {
		return ErrNotAttached
	}
	if err := r.nss.Set(false); err != nil {
		return fmt.Errorf("failed to assert chip select: %w", err)
	}
	defer r.nss.Set(true)

	if err := r.bus.Transmit([]byte{address | addrWriteBit}, BusTimeout); err != nil {
		return fmt.Errorf("failed to write address 0x%02X: %w", address, err)
	}
	if err := r.bus.Transmit([]byte{value}, BusTimeout); err != nil {
		return fmt.Errorf("failed to write register 0x%02X: %w", address, err)
	}
	return nil
}

// BurstWrite writes a byte sequence to a register within one chip-select
// window. The FIFO register auto-increments its internal pointer on
// repeated access inside a single transaction, so this is how a payload
// is staged in one pass.
func (r *Radio) BurstWrite(address uint8, data []byte) error {
	if r.bus == nil {
		return ErrNotAttached
	}
	if err := r.nss.Set(false); err != nil {
		return fmt.Errorf("failed to assert chip select: %w", err)
	}
	defer r.nss.Set(true)

	if err := r.bus.Transmit([]byte{address | addrWriteBit}, BusTimeout); err != nil {
		return fmt.Errorf("failed to write address 0x%02X: %w", address, err)
	}
	if err := r.bus.Transmit(data, BusTimeout); err != nil {
		return fmt.Errorf("failed to burst write register 0x%02X: %w", address, err)
	}
	return nil
}
