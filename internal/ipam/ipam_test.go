package ipam

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New(netip.MustParsePrefix("10.0.0.0/8"), 24)
	require.NoError(t, err)

	for _, tc := range []struct {
		pool string
		bits int
	}{
		{"10.0.0.0/16", 8},
		{"10.0.0.0/8", 31},
		{"fd00::/64", 80},
	} {
		_, err := New(netip.MustParsePrefix(tc.pool), tc.bits)
		assert.Truef(t, IsErrInvalidPool(err), "New(%s, %d) error = %v", tc.pool, tc.bits, err)
	}
}

func TestAllocate(t *testing.T) {
	a := Default()

	_, err := a.NextAddress()
	assert.Equal(t, ErrNoSubnet, err)

	subnet, err := a.NewSubnet()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/24", subnet.String())

	first, err := a.NextAddress()
	require.NoError(t, err)
	second, err := a.NextAddress()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1/24", first.String())
	assert.Equal(t, "10.0.0.2/24", second.String())

	subnet, err = a.NewSubnet()
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.0/24", subnet.String())
	third, err := a.NextAddress()
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.1/24", third.String())
	assert.False(t, subnet.Overlaps(netip.MustParsePrefix("10.0.0.0/24")))
}

func TestExhaustion(t *testing.T) {
	a, err := New(netip.MustParsePrefix("192.168.0.0/29"), 30)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := a.NewSubnet()
		require.NoError(t, err)

		_, err = a.NextAddress()
		require.NoError(t, err)
		_, err = a.NextAddress()
		require.NoError(t, err)

		_, err = a.NextAddress()
		assert.True(t, IsErrAddressSpaceExhausted(err), "a /30 has two host addresses")
	}

	_, err = a.NewSubnet()
	require.Error(t, err)
	assert.True(t, IsErrAddressSpaceExhausted(err))
	assert.Contains(t, err.Error(), "192.168.0.0/29")
}

func TestReserve(t *testing.T) {
	a := Default()
	a.Reserve(netip.MustParsePrefix("10.0.0.1/24"))
	a.Reserve(netip.MustParsePrefix("10.0.2.7/32"))
	a.Reserve(netip.MustParsePrefix("172.16.0.1/24")) // outside the pool

	subnet, err := a.NewSubnet()
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.0/24", subnet.String())

	subnet, err = a.NewSubnet()
	require.NoError(t, err)
	assert.Equal(t, "10.0.3.0/24", subnet.String())

	a.Reserve(netip.MustParsePrefix("10.1.0.0/16"))
	for i := 0; i < 252; i++ {
		_, err = a.NewSubnet()
		require.NoError(t, err)
	}
	subnet, err = a.NewSubnet()
	require.NoError(t, err)
	assert.Equal(t, "10.2.0.0/24", subnet.String())
}

func TestReset(t *testing.T) {
	a := Default()
	a.Reserve(netip.MustParsePrefix("10.0.0.0/24"))
	_, err := a.NewSubnet()
	require.NoError(t, err)

	a.Reset()
	assert.False(t, a.Current().IsValid())
	_, err = a.NextAddress()
	assert.Equal(t, ErrNoSubnet, err)

	subnet, err := a.NewSubnet()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/24", subnet.String())
}

func TestRewind(t *testing.T) {
	a := Default()
	_, err := a.NewSubnet()
	require.NoError(t, err)
	_, err = a.NextAddress()
	require.NoError(t, err)

	m := a.Mark()
	subnet, err := a.NewSubnet()
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.0/24", subnet.String())
	a.Reserve(netip.MustParsePrefix("10.0.2.0/24"))

	a.Rewind(m)
	assert.Equal(t, "10.0.0.0/24", a.Current().String())
	addr, err := a.NextAddress()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2/24", addr.String())

	subnet, err = a.NewSubnet()
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.0/24", subnet.String())
	subnet, err = a.NewSubnet()
	require.NoError(t, err)
	assert.Equal(t, "10.0.3.0/24", subnet.String(), "reservations survive a rewind")
}
