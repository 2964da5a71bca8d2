package sx1278

import "fmt"

// SetMode moves the radio to the target operating mode. The current mode
// register is read back, the low 3 bits replaced with the target code,
// and the result written. Entering TX first remaps DIO0 to TxDone;
// entering RX continuous first remaps it to RxDone, so the interrupt pin
// always reports the completion event of the mode being entered.
//
// Any requested mode is accepted: the chip has no illegal transitions,
// and sequencing (such as passing through standby before TX) is the
// caller's responsibility. Transmit and Receive do this internally.
func (r *Radio) SetMode(mode Mode) error {
	current, err := r.ReadRegister(RegOpMode)
	if err != nil {
		return fmt.Errorf("failed to read mode register: %w", err)
	}

	switch mode {
	case ModeTx:
		if err := r.WriteRegister(RegDioMapping1, DioMappingTxDone); err != nil {
			return fmt.Errorf("failed to map DIO0 to TxDone: %w", err)
		}
	case ModeRxContinuous:
		if err := r.WriteRegister(RegDioMapping1, DioMappingRxDone); err != nil {
			return fmt.Errorf("failed to map DIO0 to RxDone: %w", err)
		}
	}

	data := (current & OpModeMask) | uint8(mode)
	if err := r.WriteRegister(RegOpMode, data); err != nil {
		return fmt.Errorf("failed to write mode register: %w", err)
	}
	r.mode = mode
	return nil
}

// SetFrequency programs the carrier frequency in MHz. The synthesizer
// word is floor(MHz * 2^19 / 32), written most-significant byte first
// across three registers with a settling delay between each write
// because the chip applies the update progressively.
func (r *Radio) SetFrequency(mhz uint32) error {
	word := (mhz * 524288) >> 5

	if err := r.WriteRegister(RegFrMsb, uint8(word>>16)); err != nil {
		return fmt.Errorf("failed to write frequency Msb: %w", err)
	}
	r.sleep(FrequencySettleDelay)

	if err := r.WriteRegister(RegFrMid, uint8(word>>8)); err != nil {
		return fmt.Errorf("failed to write frequency Mid: %w", err)
	}
	r.sleep(FrequencySettleDelay)

	if err := r.WriteRegister(RegFrLsb, uint8(word)); err != nil {
		return fmt.Errorf("failed to write frequency Lsb: %w", err)
	}
	r.sleep(FrequencySettleDelay)

	r.Frequency = mhz
	return nil
}

// SetSpreadingFactor programs the spreading factor, clamped to [7,12].
// The value occupies the high nibble of ModemConfig2; the low nibble
// carries unrelated live flags (CRC enable, timeout Msb) and is
// preserved through a read-modify-write of the current register value.
func (r *Radio) SetSpreadingFactor(sf SpreadingFactor) error {
	if sf > SF12 {
		sf = SF12
	}
	if sf < SF7 {
		sf = SF7
	}

	current, err := r.ReadRegister(RegModemConfig2)
	if err != nil {
		return fmt.Errorf("failed to read modem config 2: %w", err)
	}
	r.sleep(ConfigSettleDelay)

	data := (uint8(sf) << 4) | (current & 0x0F)
	if err := r.WriteRegister(RegModemConfig2, data); err != nil {
		return fmt.Errorf("failed to write spreading factor: %w", err)
	}
	r.sleep(ConfigSettleDelay)

	r.SpreadingFactor = sf
	return nil
}

// SetPower programs the output power. The byte is written verbatim to
// RegPaConfig; callers supply one of the pre-encoded Power constants,
// not a raw dB value.
func (r *Radio) SetPower(power uint8) error {
	if err := r.WriteRegister(RegPaConfig, power); err != nil {
		return fmt.Errorf("failed to write power config: %w", err)
	}
	r.sleep(ConfigSettleDelay)
	r.Power = power
	return nil
}

// SetOCP programs the over-current protection limit in mA, clamped to
// [45,240]. The trim value follows the chip's two-slope table: one
// formula up to 120 mA and another above it. Do not collapse this into
// a single linear mapping.
func (r *Radio) SetOCP(milliamps uint8) error {
	if milliamps < OcpMinMilliamps {
		milliamps = OcpMinMilliamps
	}
	if milliamps > OcpMaxMilliamps {
		milliamps = OcpMaxMilliamps
	}

	// widen before adding: milliamps+30 overflows uint8 above 225
	var trim uint8
	if milliamps <= 120 {
		trim = (milliamps - 45) / 5
	} else {
		trim = uint8((int(milliamps) + 30) / 10)
	}

	if err := r.WriteRegister(RegOcp, trim|ocpEnableBit); err != nil {
		return fmt.Errorf("failed to write OCP trim: %w", err)
	}
	r.sleep(ConfigSettleDelay)

	r.OCPMilliamps = milliamps
	return nil
}

// setCrcOnTimeoutMsb turns on payload CRC and raises the RX timeout Msb
// bits in ModemConfig2. These bits share the register with the spreading
// factor, so Init applies them before SetSpreadingFactor.
func (r *Radio) setCrcOnTimeoutMsb() error {
	current, err := r.ReadRegister(RegModemConfig2)
	if err != nil {
		return fmt.Errorf("failed to read modem config 2: %w", err)
	}
	if err := r.WriteRegister(RegModemConfig2, current|CrcOnTimeoutMsb); err != nil {
		return fmt.Errorf("failed to write CRC/timeout bits: %w", err)
	}
	r.sleep(ConfigSettleDelay)
	return nil
}

// SetModemConfig packs bandwidth, coding rate and explicit header mode
// into ModemConfig1 as a single byte.
func (r *Radio) SetModemConfig(bw Bandwidth, cr CodingRate) error {
	data := (uint8(bw) << 4) | (uint8(cr) << 1)
	if err := r.WriteRegister(RegModemConfig1, data); err != nil {
		return fmt.Errorf("failed to write modem config 1: %w", err)
	}
	r.Bandwidth = bw
	r.CodingRate = cr
	return nil
}

// SetPreambleLength programs the preamble length as two bytes across
// the adjacent Msb/Lsb registers.
func (r *Radio) SetPreambleLength(symbols uint16) error {
	if err := r.WriteRegister(RegPreambleMsb, uint8(symbols>>8)); err != nil {
		return fmt.Errorf("failed to write preamble Msb: %w", err)
	}
	if err := r.WriteRegister(RegPreambleLsb, uint8(symbols)); err != nil {
		return fmt.Errorf("failed to write preamble Lsb: %w", err)
	}
	r.PreambleLength = symbols
	return nil
}

// RSSI returns the received signal strength of the last packet in dBm.
func (r *Radio) RSSI() (int, error) {
	raw, err := r.ReadRegister(RegPktRssiValue)
	if err != nil {
		return 0, fmt.Errorf("failed to read packet RSSI: %w", err)
	}
	return -164 + int(raw), nil
}

// Init pushes the full configuration to the chip and verifies its
// identity. The order is load-bearing: the LoRa long-range bit is only
// writable from sleep, and the CRC/timeout bits must be in place before
// the spreading factor write that shares their register. On success the
// radio is left in standby, ready for Transmit and Receive. A version
// mismatch is definitive and returns ErrChipNotFound without retrying.
func (r *Radio) Init() error {
	if r.bus == nil || r.nss == nil {
		return ErrNotAttached
	}

	if err := r.SetMode(ModeSleep); err != nil {
		return err
	}
	r.sleep(ConfigSettleDelay)

	// LoRa long-range mode, read-modify-write from sleep
	current, err := r.ReadRegister(RegOpMode)
	if err != nil {
		return fmt.Errorf("failed to read mode register: %w", err)
	}
	r.sleep(ConfigSettleDelay)
	if err := r.WriteRegister(RegOpMode, current|OpModeLongRange); err != nil {
		return fmt.Errorf("failed to enable LoRa mode: %w", err)
	}
	r.sleep(ResetSettleDelay)

	if err := r.SetFrequency(r.Frequency); err != nil {
		return err
	}
	if err := r.SetPower(r.Power); err != nil {
		return err
	}
	if err := r.SetOCP(r.OCPMilliamps); err != nil {
		return err
	}
	if err := r.WriteRegister(RegLna, LnaBoostGain); err != nil {
		return fmt.Errorf("failed to write LNA gain: %w", err)
	}

	// CRC and timeout Msb bits share ModemConfig2 with the spreading
	// factor and must land first
	if err := r.setCrcOnTimeoutMsb(); err != nil {
		return err
	}
	if err := r.SetSpreadingFactor(r.SpreadingFactor); err != nil {
		return err
	}
	if err := r.WriteRegister(RegSymbTimeoutLsb, SymbTimeoutLsbMax); err != nil {
		return fmt.Errorf("failed to write symbol timeout Lsb: %w", err)
	}
	if err := r.SetModemConfig(r.Bandwidth, r.CodingRate); err != nil {
		return err
	}
	if err := r.SetPreambleLength(r.PreambleLength); err != nil {
		return err
	}

	// Default DIO mapping: RxDone reporting
	current, err = r.ReadRegister(RegDioMapping1)
	if err != nil {
		return fmt.Errorf("failed to read DIO mapping: %w", err)
	}
	if err := r.WriteRegister(RegDioMapping1, current|0x3F); err != nil {
		return fmt.Errorf("failed to write DIO mapping: %w", err)
	}

	if err := r.SetMode(ModeStandby); err != nil {
		return err
	}
	r.sleep(ConfigSettleDelay)

	version, err := r.ReadRegister(RegVersion)
	if err != nil {
		return fmt.Errorf("failed to read version register: %w", err)
	}
	if version != VersionSignature {
		return fmt.Errorf("%w: got 0x%02X, want 0x%02X", ErrChipNotFound, version, VersionSignature)
	}
	return nil
}
