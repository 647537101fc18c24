package ipam

import (
	"encoding/binary"
	"net/netip"
)

const (
	// DefaultPool is the pool used when none is configured.
	DefaultPool = "10.0.0.0/8"
	// DefaultSubnetBits is the prefix length of the subnets cut from the pool.
	DefaultSubnetBits = 24
)

// Allocator issues subnets and host addresses. It is not safe for concurrent
// use.
type Allocator struct {
	pool       netip.Prefix
	subnetBits int

	// next is the index of the next subnet to try.
	next     uint32
	current  netip.Prefix
	host     uint32
	reserved map[uint32]struct{}
}

// New creates an Allocator cutting pool into subnets of subnetBits length.
func New(pool netip.Prefix, subnetBits int) (*Allocator, error) {
	pool = pool.Masked()
	// at least two host addresses per subnet
	if !pool.IsValid() || !pool.Addr().Is4() || subnetBits < pool.Bits() || subnetBits > 30 {
		return nil, ErrInvalidPool{pool: pool, subnetBits: subnetBits}
	}
	return &Allocator{
		pool:       pool,
		subnetBits: subnetBits,
		reserved:   make(map[uint32]struct{}),
	}, nil
}

// Default returns an allocator over DefaultPool with DefaultSubnetBits
// subnets.
func Default() *Allocator {
	a, err := New(netip.MustParsePrefix(DefaultPool), DefaultSubnetBits)
	if err != nil {
		panic(err)
	}
	return a
}

// Pool returns the address pool.
func (a *Allocator) Pool() netip.Prefix {
	return a.pool
}

// Current returns the current subnet, or an invalid prefix before the first
// call to NewSubnet.
func (a *Allocator) Current() netip.Prefix {
	return a.current
}

func (a *Allocator) subnets() uint32 {
	return 1 << uint(a.subnetBits-a.pool.Bits())
}

func (a *Allocator) hosts() uint32 {
	return 1<<uint(32-a.subnetBits) - 2
}

func (a *Allocator) subnet(index uint32) netip.Prefix {
	base := toUint32(a.pool.Addr()) + index<<uint(32-a.subnetBits)
	return netip.PrefixFrom(fromUint32(base), a.subnetBits)
}

// NewSubnet advances to the next subnet of the pool that is not reserved.
func (a *Allocator) NewSubnet() (netip.Prefix, error) {
	for ; a.next < a.subnets(); a.next++ {
		if _, ok := a.reserved[a.next]; ok {
			continue
		}
		a.current = a.subnet(a.next)
		a.host = 0
		a.next++
		return a.current, nil
	}
	return netip.Prefix{}, ErrAddressSpaceExhausted{Prefix: a.pool}
}

// NextAddress returns the next host address of the current subnet, carrying
// the subnet's prefix length.
func (a *Allocator) NextAddress() (netip.Prefix, error) {
	if !a.current.IsValid() {
		return netip.Prefix{}, ErrNoSubnet
	}
	if a.host >= a.hosts() {
		return netip.Prefix{}, ErrAddressSpaceExhausted{Prefix: a.current}
	}
	a.host++
	addr := fromUint32(toUint32(a.current.Addr()) + a.host)
	return netip.PrefixFrom(addr, a.subnetBits), nil
}

// Reserve marks every subnet of the pool overlapping p as used. Prefixes
// outside the pool are ignored.
func (a *Allocator) Reserve(p netip.Prefix) {
	if !p.IsValid() || !p.Addr().Is4() || !a.pool.Overlaps(p) {
		return
	}
	bits := p.Bits()
	if bits < a.pool.Bits() {
		// p covers the whole pool
		p = a.pool
		bits = a.pool.Bits()
	}
	shift := uint(32 - a.subnetBits)
	first := (toUint32(p.Masked().Addr()) - toUint32(a.pool.Addr())) >> shift
	count := uint32(1)
	if bits < a.subnetBits {
		count = 1 << uint(a.subnetBits-bits)
	}
	for i := uint32(0); i < count; i++ {
		a.reserved[first+i] = struct{}{}
	}
}

// Mark is an allocation position of an Allocator.
type Mark struct {
	next    uint32
	current netip.Prefix
	host    uint32
}

// Mark returns the current allocation position.
func (a *Allocator) Mark() Mark {
	return Mark{next: a.next, current: a.current, host: a.host}
}

// Rewind returns the allocator to m. Subnets and addresses issued since m are
// handed out again; reservations made since m are kept.
func (a *Allocator) Rewind(m Mark) {
	a.next = m.next
	a.current = m.current
	a.host = m.host
}

// Reset forgets the current subnet and every reservation.
func (a *Allocator) Reset() {
	a.next = 0
	a.current = netip.Prefix{}
	a.host = 0
	a.reserved = make(map[uint32]struct{})
}

func toUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:])
}

func fromUint32(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}
