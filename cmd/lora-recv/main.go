// lora-recv: Receive LoRa packets through an SX1278 module
//
// Parks the radio in continuous receive and drains packets as DIO0
// signals RxDone, printing each payload with its RSSI. Without a DIO0
// pin the tool polls at a fixed interval instead.
//
// Examples:
//
//	# Listen with the built-in defaults (433 MHz SF7)
//	./lora-recv
//
//	# Listen with a profile, stop after 10 packets
//	./lora-recv -p 868-long-range -count 10
//
//	# Raw hex output for piping
//	./lora-recv -raw
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/herlein/golora/pkg/config"
	"github.com/herlein/golora/pkg/profiles"
	"github.com/herlein/golora/pkg/sx1278"
)

func main() {
	spiDev := flag.String("spi", "/dev/spidev0.0", "SPI device")
	nssName := flag.String("nss", "GPIO8", "Chip select pin name")
	resetName := flag.String("reset", "GPIO22", "Reset pin name")
	dio0Name := flag.String("dio0", "GPIO25", "DIO0 interrupt pin name (empty for polling)")
	configPath := flag.String("c", "", "Configuration file path")
	profileName := flag.String("p", "", "Built-in profile name")
	count := flag.Int("count", 0, "Number of packets to receive (0 = infinite)")
	pollInterval := flag.Duration("poll", 100*time.Millisecond, "Poll interval without DIO0")
	rawOutput := flag.Bool("raw", false, "Output raw hex only (for piping)")

	flag.Parse()

	radio, cleanup, err := openRadio(*spiDev, *nssName, *resetName, *dio0Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := applySettings(radio, *configPath, *profileName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := radio.Reset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: reset failed: %v\n", err)
		os.Exit(1)
	}
	if err := radio.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init failed: %v\n", err)
		os.Exit(1)
	}

	// park in continuous receive; Receive re-enters it after every drain
	if err := radio.SetMode(sx1278.ModeRxContinuous); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to enter RX mode: %v\n", err)
		os.Exit(1)
	}

	if !*rawOutput {
		fmt.Printf("Listening: %s\n", config.FromRadio(radio).Describe())
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	buf := make([]byte, sx1278.MaxPayloadLength)
	received := 0
	for *count == 0 || received < *count {
		select {
		case <-stop:
			fmt.Fprintln(os.Stderr, "Interrupted")
			return
		default:
		}

		if radio.DIO0 != nil {
			if !radio.DIO0.WaitForEdge(*pollInterval) {
				continue
			}
		} else {
			time.Sleep(*pollInterval)
		}

		n, err := radio.Receive(buf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: receive failed: %v\n", err)
			os.Exit(1)
		}
		if n == 0 {
			continue
		}

		received++
		if *rawOutput {
			fmt.Println(hex.EncodeToString(buf[:n]))
			continue
		}

		rssi, err := radio.RSSI()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: RSSI read failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[%d] %d bytes rssi=%ddBm\n", received, n, rssi)
		fmt.Printf("    hex:   %s\n", hex.EncodeToString(buf[:n]))
		fmt.Printf("    ascii: %s\n", printable(buf[:n]))
	}
}

// printable replaces non-printable bytes with dots
func printable(data []byte) string {
	out := make([]byte, len(data))
	for i, b := range data {
		if b >= 0x20 && b < 0x7F {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}

func openRadio(spiDev, nssName, resetName, dio0Name string) (*sx1278.Radio, func(), error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	port, err := spireg.Open(spiDev)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open SPI device %s: %w", spiDev, err)
	}

	conn, err := port.Connect(8*physic.MegaHertz, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		port.Close()
		return nil, nil, fmt.Errorf("failed to connect SPI: %w", err)
	}

	nss := gpioreg.ByName(nssName)
	if nss == nil {
		port.Close()
		return nil, nil, fmt.Errorf("NSS pin not found: %s", nssName)
	}
	reset := gpioreg.ByName(resetName)
	if reset == nil {
		port.Close()
		return nil, nil, fmt.Errorf("reset pin not found: %s", resetName)
	}

	var dio0 gpio.PinIn
	if dio0Name != "" {
		dio0 = gpioreg.ByName(dio0Name)
		if dio0 == nil {
			port.Close()
			return nil, nil, fmt.Errorf("DIO0 pin not found: %s", dio0Name)
		}
		if err := dio0.In(gpio.PullDown, gpio.RisingEdge); err != nil {
			port.Close()
			return nil, nil, fmt.Errorf("failed to configure DIO0: %w", err)
		}
	}

	if err := nss.Out(gpio.High); err != nil {
		port.Close()
		return nil, nil, fmt.Errorf("failed to release chip select: %w", err)
	}

	radio := sx1278.NewPeriph(conn, nss, reset, dio0)
	return radio, func() { port.Close() }, nil
}

func applySettings(radio *sx1278.Radio, configPath, profileName string) error {
	if configPath != "" && profileName != "" {
		return fmt.Errorf("-c and -p are mutually exclusive")
	}
	if configPath != "" {
		settings, err := config.LoadFromFile(configPath)
		if err != nil {
			return err
		}
		settings.ApplyToRadio(radio)
	}
	if profileName != "" {
		profile, err := profiles.FindByName(profileName)
		if err != nil {
			return err
		}
		profile.Apply(radio)
	}
	return nil
}
