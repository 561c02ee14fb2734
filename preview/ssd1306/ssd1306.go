/*
Package ssd1306 drives SSD1306 compatible OLED controllers with 128×64 pixels.

The controller is talked to over an io.Writer, usually an I²C device with the
slave address already selected. Every write is one bus transaction, starting
with a control byte which tells commands from display data.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package ssd1306

import (
	"io"

	"github.com/npillmayer/bdfe/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bdfe.preview'.
func tracer() tracing.Trace {
	return tracing.Select("bdfe.preview")
}

// Control bytes.
const (
	ControlCommand byte = 0x00
	ControlData    byte = 0x40
)

// ChunkSize is the maximum number of display data bytes sent per transaction.
const ChunkSize = 32

// Orientation of the panel.
type Orientation int

const (
	Normal Orientation = iota
	UpsideDown
)

// Controller sends commands and display data to an SSD1306.
type Controller struct {
	bus io.Writer
}

// New initializes the controller attached to bus and switches the display on.
func New(bus io.Writer, orientation Orientation) (*Controller, error) {
	c := &Controller{bus: bus}
	for _, cmd := range initSequence(orientation) {
		if err := c.Command(cmd...); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("display initialized, orientation %d", orientation)
	return c, nil
}

func initSequence(orientation Orientation) [][]byte {
	segRemap, comScan := byte(0xA1), byte(0xC8)
	if orientation == UpsideDown {
		segRemap, comScan = 0xA0, 0xC0
	}
	return [][]byte{
		{0xAE},       // display off
		{0xD5, 0x80}, // clock divide ratio
		{0xA8, 0x3F}, // multiplex ratio 64
		{0xD3, 0x00}, // no display offset
		{0x40},       // start line 0
		{0x8D, 0x14}, // charge pump on
		{0x20, 0x00}, // horizontal addressing
		{segRemap},
		{comScan},
		{0xDA, 0x12}, // COM pins
		{0x81, 0xCF}, // contrast
		{0xD9, 0xF1}, // precharge
		{0xDB, 0x40}, // VCOMH deselect level
		{0xA4},       // display follows RAM
		{0xA6},       // not inverted
		{0xAF},       // display on
	}
}

// Command sends a single command with its arguments.
func (c *Controller) Command(cmd ...byte) error {
	return c.send(ControlCommand, cmd)
}

// Flush transfers the complete framebuffer to display RAM.
func (c *Controller) Flush(fb *Framebuffer) error {
	if err := c.Command(0x21, 0, Width-1); err != nil {
		return err
	}
	if err := c.Command(0x22, 0, Pages-1); err != nil {
		return err
	}
	data := fb.Bytes()
	for len(data) > 0 {
		n := ChunkSize
		if n > len(data) {
			n = len(data)
		}
		if err := c.send(ControlData, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// Off switches the display off. Display RAM is kept.
func (c *Controller) Off() error {
	return c.Command(0xAE)
}

func (c *Controller) send(control byte, payload []byte) error {
	msg := make([]byte, 0, len(payload)+1)
	msg = append(msg, control)
	msg = append(msg, payload...)
	if _, err := c.bus.Write(msg); err != nil {
		return core.WrapError(err, core.ETRANSPORT, "cannot write to display")
	}
	return nil
}
