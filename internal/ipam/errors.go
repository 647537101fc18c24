package ipam

import (
	"fmt"
	"net/netip"

	"github.com/pkg/errors"
)

// ErrNoSubnet is returned by NextAddress when no subnet has been allocated
// yet.
var ErrNoSubnet = errors.New("ipam: no subnet allocated")

// ErrAddressSpaceExhausted is returned when the pool has no subnet left, or
// when the current subnet has no host address left.
type ErrAddressSpaceExhausted struct {
	// Prefix is the pool or subnet that ran out of space.
	Prefix netip.Prefix
}

// Error returns a formatted error string naming the exhausted prefix
func (e ErrAddressSpaceExhausted) Error() string {
	return fmt.Sprintf("address space %v is exhausted", e.Prefix)
}

// IsErrAddressSpaceExhausted returns true if the cause of e is
// ErrAddressSpaceExhausted
func IsErrAddressSpaceExhausted(e error) bool {
	_, ok := errors.Cause(e).(ErrAddressSpaceExhausted)
	return ok
}

// ErrInvalidPool is returned by New if the pool and subnet size do not
// describe a usable IPv4 address space.
type ErrInvalidPool struct {
	pool       netip.Prefix
	subnetBits int
}

// Error returns a formatted error string explaining which pool is invalid
func (e ErrInvalidPool) Error() string {
	return fmt.Sprintf("pool %v cannot be split into /%d subnets", e.pool, e.subnetBits)
}

// IsErrInvalidPool returns true if the cause of e is ErrInvalidPool
func IsErrInvalidPool(e error) bool {
	_, ok := errors.Cause(e).(ErrInvalidPool)
	return ok
}
