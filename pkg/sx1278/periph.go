package sx1278

import (
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// periph.io adapters. The SPI port must be connected with spi.NoCS so
// the kernel driver does not frame transactions itself; the driver owns
// the NSS line through a plain GPIO output.

// SPITransport adapts a periph.io spi.Conn to the Transport contract.
// periph connections block until the kernel completes the transfer, so
// the per-direction timeout is enforced by the underlying bus driver
// rather than here.
type SPITransport struct {
	Conn spi.Conn
}

func (t SPITransport) Transmit(p []byte, _ time.Duration) error {
	return t.Conn.Tx(p, nil)
}

func (t SPITransport) Receive(p []byte, _ time.Duration) error {
	return t.Conn.Tx(make([]byte, len(p)), p)
}

// GPIOPin adapts a periph.io output pin to the Pin contract
type GPIOPin struct {
	Pin gpio.PinOut
}

func (p GPIOPin) Set(high bool) error {
	return p.Pin.Out(gpio.Level(high))
}

// GPIOInterrupt adapts a periph.io input pin to the InterruptPin
// contract. The pin should be configured with gpio.RisingEdge before
// attaching; DIO0 goes high on TxDone/RxDone.
type GPIOInterrupt struct {
	Pin gpio.PinIn
}

func (p GPIOInterrupt) WaitForEdge(timeout time.Duration) bool {
	return p.Pin.WaitForEdge(timeout)
}

// NewPeriph builds a Radio with default configuration attached to
// periph.io hardware handles. dio0 may be nil for polling-only use.
func NewPeriph(conn spi.Conn, nss, reset gpio.PinOut, dio0 gpio.PinIn) *Radio {
	r := New()
	var irq InterruptPin
	if dio0 != nil {
		irq = GPIOInterrupt{Pin: dio0}
	}
	r.Attach(SPITransport{Conn: conn}, GPIOPin{Pin: nss}, GPIOPin{Pin: reset}, irq)
	return r
}
