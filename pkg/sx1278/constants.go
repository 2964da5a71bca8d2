package sx1278

import "time"

// SPI Timeouts
const (
	// BusTimeout bounds a single SPI transfer in either direction.
	// A transfer that does not complete within this window is fatal
	// to the in-progress operation and is not retried.
	BusTimeout = 2000 * time.Millisecond
)

// Settling delays between register writes that the synthesizer and
// modem apply progressively
const (
	FrequencySettleDelay = 5 * time.Millisecond
	ConfigSettleDelay    = 10 * time.Millisecond
	ResetHoldDelay       = 1 * time.Millisecond
	ResetSettleDelay     = 100 * time.Millisecond
)

// Register addresses (LoRa page)
const (
	RegFifo              = 0x00 // FIFO read/write access, auto-increments
	RegOpMode            = 0x01 // Mode bits + LoRa long-range bit
	RegFrMsb             = 0x06 // Carrier frequency, high byte
	RegFrMid             = 0x07 // Carrier frequency, middle byte
	RegFrLsb             = 0x08 // Carrier frequency, low byte
	RegPaConfig          = 0x09 // PA selection and output power
	RegOcp               = 0x0B // Over-current protection trim
	RegLna               = 0x0C // LNA gain
	RegFifoAddrPtr       = 0x0D // SPI FIFO access pointer
	RegFifoTxBaseAddr    = 0x0E // Start of TX region in the FIFO
	RegFifoRxBaseAddr    = 0x0F // Start of RX region in the FIFO
	RegFifoRxCurrentAddr = 0x10 // Address of last packet received
	RegIrqFlags          = 0x12 // Latched interrupt flags
	RegRxNbBytes         = 0x13 // Byte count of last received payload
	RegPktRssiValue      = 0x1A // RSSI of last received packet
	RegModemConfig1      = 0x1D // Bandwidth, coding rate, header mode
	RegModemConfig2      = 0x1E // Spreading factor, CRC, timeout Msb
	RegSymbTimeoutLsb    = 0x1F // RX symbol timeout, low byte
	RegPreambleMsb       = 0x20 // Preamble length, high byte
	RegPreambleLsb       = 0x21 // Preamble length, low byte
	RegPayloadLength     = 0x22 // TX payload length
	RegDioMapping1       = 0x40 // DIO0..DIO3 event mapping
	RegDioMapping2       = 0x41 // DIO4..DIO5 event mapping
	RegVersion           = 0x42 // Silicon revision
)

// RegOpMode bits
const (
	OpModeMask      = 0xF8 // Low 3 bits select the operating mode
	OpModeLongRange = 0x80 // LoRa mode enable, only writable from Sleep
)

// RegIrqFlags bits
const (
	IrqRxDone        = 0x40 // Packet reception complete
	IrqTxDone        = 0x08 // Packet transmission complete
	IrqFlagsClearAll = 0xFF // Writing ones clears every latched flag
)

// RegDioMapping1 values for DIO0
const (
	DioMappingTxDone = 0x40 // DIO0 reports TxDone
	DioMappingRxDone = 0x00 // DIO0 reports RxDone
)

// Identity
const (
	// VersionSignature is the RegVersion value of an SX1278.
	VersionSignature = 0x12
)

// Fixed configuration bytes applied during Init
const (
	LnaBoostGain      = 0x23 // Max LNA gain, boost on
	SymbTimeoutLsbMax = 0xFF // Longest RX symbol timeout
	CrcOnTimeoutMsb   = 0x07 // CRC enable + timeout Msb bits in ModemConfig2
)

// SPI address framing
const (
	addrWriteBit = 0x80 // High bit set selects a register write
	addrReadMask = 0x7F // High bit cleared selects a register read
)

// FIFO geometry
const (
	// MaxPayloadLength is the largest payload the single-packet FIFO
	// handshake can stage. The chip buffer itself is 256 bytes.
	MaxPayloadLength = 255
)

// Mode is an SX1278 operating mode. The numeric values are the chip's
// own 3-bit encoding in RegOpMode; note TX and RX continuous are not
// adjacent codes.
type Mode uint8

const (
	ModeSleep        Mode = 0x00
	ModeStandby      Mode = 0x01
	ModeTx           Mode = 0x03
	ModeRxContinuous Mode = 0x05
)

// String returns a human-readable mode name
func (m Mode) String() string {
	switch m {
	case ModeSleep:
		return "SLEEP"
	case ModeStandby:
		return "STANDBY"
	case ModeTx:
		return "TX"
	case ModeRxContinuous:
		return "RX_CONTINUOUS"
	default:
		return "UNKNOWN"
	}
}

// Bandwidth is an index into the chip's signal bandwidth table
type Bandwidth uint8

const (
	Bw7_8kHz   Bandwidth = 0
	Bw10_4kHz  Bandwidth = 1
	Bw15_6kHz  Bandwidth = 2
	Bw20_8kHz  Bandwidth = 3
	Bw31_25kHz Bandwidth = 4
	Bw41_7kHz  Bandwidth = 5
	Bw62_5kHz  Bandwidth = 6
	Bw125kHz   Bandwidth = 7
	Bw250kHz   Bandwidth = 8
	Bw500kHz   Bandwidth = 9
)

// Hz returns the occupied channel width in Hz
func (b Bandwidth) Hz() uint32 {
	bins := [...]uint32{7800, 10400, 15600, 20800, 31250, 41700, 62500, 125000, 250000, 500000}
	if int(b) >= len(bins) {
		return 0
	}
	return bins[b]
}

// CodingRate is the forward-error-correction rate index (4/5 .. 4/8)
type CodingRate uint8

const (
	Cr4_5 CodingRate = 1
	Cr4_6 CodingRate = 2
	Cr4_7 CodingRate = 3
	Cr4_8 CodingRate = 4
)

// SpreadingFactor controls symbol duration; valid values are 7 through 12
type SpreadingFactor uint8

const (
	SF7  SpreadingFactor = 7
	SF8  SpreadingFactor = 8
	SF9  SpreadingFactor = 9
	SF10 SpreadingFactor = 10
	SF11 SpreadingFactor = 11
	SF12 SpreadingFactor = 12
)

// Power output levels, pre-encoded for RegPaConfig (PA_BOOST)
const (
	Power11dBm = 0xF6
	Power14dBm = 0xF9
	Power17dBm = 0xFC
	Power20dBm = 0xFF
)

// Over-current protection limits in mA
const (
	OcpMinMilliamps = 45
	OcpMaxMilliamps = 240
	ocpEnableBit    = 1 << 5
)
