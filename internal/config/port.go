package config

import (
	"strconv"
	"strings"
)

// Port is a TCP port parsed leniently: a value that is not a valid non-zero
// port leaves the port at zero, and Load replaces zero with the default.
type Port uint16

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Port) UnmarshalText(text []byte) error {
	value, err := strconv.ParseUint(strings.TrimSpace(string(text)), 10, 16)
	if err != nil {
		*p = 0
		return nil
	}
	*p = Port(value)
	return nil
}

// String returns the decimal port.
func (p Port) String() string {
	return strconv.Itoa(int(p))
}
