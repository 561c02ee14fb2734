/*
Package i2c opens I²C buses through periph.io.

Buses are looked up in the periph.io bus registry, by device node
("/dev/i2c-1"), alias ("I2C1") or number ("1"). Where no bus can be found,
Open fails with an error matching core.ErrTransportUnavailable.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package i2c

import (
	"fmt"

	"github.com/npillmayer/bdfe/core"
	"github.com/npillmayer/schuko/tracing"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// tracer traces with key 'bdfe.preview'.
func tracer() tracing.Trace {
	return tracing.Select("bdfe.preview")
}

// DefaultBus is the bus number of the header pins on Raspberry Pi boards.
const DefaultBus = 1

// MaxAddress is the first address reserved for 10-bit addressing.
const MaxAddress = 0x78

// DevicePath returns the device node of bus.
func DevicePath(bus int) string {
	return fmt.Sprintf("/dev/i2c-%d", bus)
}

// ValidAddress is true for 7-bit slave addresses usable for devices.
func ValidAddress(addr int64) bool {
	return addr > 0 && addr < MaxAddress
}

// Device is an I²C bus with a selected slave. Every Write is sent as one
// bus transaction.
type Device struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// Open opens the bus called name and selects slave address addr.
func Open(name string, addr int) (*Device, error) {
	if !ValidAddress(int64(addr)) {
		return nil, core.Error(core.EINVALID, "invalid i2c address 0x%02x", addr)
	}
	if _, err := host.Init(); err != nil {
		return nil, core.WrapError(err, core.ETRANSPORT, "unable to initialize host drivers")
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, core.WrapError(err, core.ETRANSPORT, "unable to open i2c bus %s", name)
	}
	tracer().Debugf("opened %s, slave 0x%02x", bus, addr)
	return &Device{bus: bus, dev: &i2c.Dev{Bus: bus, Addr: uint16(addr)}}, nil
}

// Write is part of the io.Writer interface.
func (d *Device) Write(p []byte) (int, error) {
	n, err := d.dev.Write(p)
	if err != nil {
		return n, core.WrapError(err, core.ETRANSPORT, "i2c write to 0x%02x failed", d.dev.Addr)
	}
	return n, nil
}

// Close releases the bus.
func (d *Device) Close() error {
	return d.bus.Close()
}
