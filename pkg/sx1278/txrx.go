package sx1278

import "fmt"

// Transmit stages a payload in the chip FIFO and starts radiating. The
// radio is forced to standby before the FIFO pointer is touched, the
// payload is burst-written starting at the configured TX base address,
// and the final mode change to TX is what actually triggers the
// transmission. Completion is signaled asynchronously on DIO0 (mapped to
// TxDone by the mode change); waiting for it is the caller's job.
func (r *Radio) Transmit(payload []byte) error {
	if len(payload) > MaxPayloadLength {
		return fmt.Errorf("%w: %d bytes, max %d", ErrPayloadTooLarge, len(payload), MaxPayloadLength)
	}

	if err := r.SetMode(ModeStandby); err != nil {
		return err
	}

	txBase, err := r.ReadRegister(RegFifoTxBaseAddr)
	if err != nil {
		return fmt.Errorf("failed to read TX base address: %w", err)
	}
	if err := r.WriteRegister(RegFifoAddrPtr, txBase); err != nil {
		return fmt.Errorf("failed to set FIFO pointer: %w", err)
	}
	if err := r.WriteRegister(RegPayloadLength, uint8(len(payload))); err != nil {
		return fmt.Errorf("failed to write payload length: %w", err)
	}
	if err := r.BurstWrite(RegFifo, payload); err != nil {
		return fmt.Errorf("failed to stage payload: %w", err)
	}

	return r.SetMode(ModeTx)
}

// Receive drains a pending packet, if any, into buf and returns the
// number of bytes copied. The buffer is zero-filled first so a short or
// absent packet never leaks stale contents. When the chip reports more
// bytes than buf can hold the packet is silently truncated to cap; when
// no packet is pending the result is 0.
//
// The radio is always returned to continuous receive before this method
// returns, whether or not a packet was consumed: the intended pattern is
// to call Receive repeatedly, typically after DIO0 (RxDone) goes active.
func (r *Radio) Receive(buf []byte) (int, error) {
	for i := range buf {
		buf[i] = 0
	}

	if err := r.SetMode(ModeStandby); err != nil {
		return 0, err
	}

	n := 0
	flags, err := r.ReadRegister(RegIrqFlags)
	if err != nil {
		return 0, fmt.Errorf("failed to read IRQ flags: %w", err)
	}
	if flags&IrqRxDone != 0 {
		// Clear every latched flag, not just RxDone
		if err := r.WriteRegister(RegIrqFlags, IrqFlagsClearAll); err != nil {
			return 0, fmt.Errorf("failed to clear IRQ flags: %w", err)
		}

		count, err := r.ReadRegister(RegRxNbBytes)
		if err != nil {
			return 0, fmt.Errorf("failed to read RX byte count: %w", err)
		}
		rxAddr, err := r.ReadRegister(RegFifoRxCurrentAddr)
		if err != nil {
			return 0, fmt.Errorf("failed to read RX FIFO address: %w", err)
		}
		if err := r.WriteRegister(RegFifoAddrPtr, rxAddr); err != nil {
			return 0, fmt.Errorf("failed to set FIFO pointer: %w", err)
		}

		n = int(count)
		if len(buf) < n {
			n = len(buf)
		}
		// Sequential single-byte reads of RegFifo; the chip advances
		// its pointer on each access
		for i := 0; i < n; i++ {
			b, err := r.ReadRegister(RegFifo)
			if err != nil {
				return 0, fmt.Errorf("failed to read FIFO byte %d: %w", i, err)
			}
			buf[i] = b
		}
	}

	if err := r.SetMode(ModeRxContinuous); err != nil {
		return 0, err
	}
	return n, nil
}
