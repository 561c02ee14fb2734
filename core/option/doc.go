/*
Package option implements optional values which may be matched against
a set of choices.

The converter uses optional integers for settings where "not requested"
has to be distinguished from every valid value, e.g., the I2C slave address
of a preview display.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package option

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bdfe.core'.
func tracer() tracing.Trace {
	return tracing.Select("bdfe.core")
}
