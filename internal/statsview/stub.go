//go:build !statsview

package statsview

import "io"

const Address = ""

// Launch does nothing without the statsview build tag.
func Launch(output io.Writer) {}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return false
}
