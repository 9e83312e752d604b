package safefetch

import (
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIPv4_PrivateRanges(t *testing.T) {
	cases := []string{
		"0.0.0.0", "0.255.1.1",
		"10.0.0.1", "10.255.255.255",
		"127.0.0.1", "127.1.2.3",
		"169.254.169.254",
		"172.16.0.1", "172.31.255.255",
		"192.168.0.1", "192.168.255.254",
		"100.64.0.1", "100.127.255.255",
		"192.0.0.8",
		"198.18.0.1", "198.19.255.255",
		"198.51.0.7",
		"203.0.0.9",
		"224.0.0.1", "239.255.255.250", "240.0.0.1", "255.255.255.255",
	}
	for _, ip := range cases {
		t.Run(ip, func(t *testing.T) {
			assert.Equal(t, Private, ClassifyIPv4(ip))
			assert.True(t, IsPrivateIPv4(ip))
		})
	}
}

func TestClassifyIPv4_RangeBoundaries(t *testing.T) {
	for third := 0; third < 256; third += 17 {
		for b := 16; b <= 31; b++ {
			ip := fmt.Sprintf("172.%d.%d.1", b, third)
			assert.True(t, IsPrivateIPv4(ip), ip)
		}
		for b := 64; b <= 127; b++ {
			ip := fmt.Sprintf("100.%d.%d.1", b, third)
			assert.True(t, IsPrivateIPv4(ip), ip)
		}
	}
	for a := 224; a <= 255; a++ {
		assert.True(t, IsPrivateIPv4(fmt.Sprintf("%d.1.2.3", a)))
	}

	assert.False(t, IsPrivateIPv4("172.15.255.255"))
	assert.False(t, IsPrivateIPv4("172.32.0.0"))
	assert.False(t, IsPrivateIPv4("100.63.255.255"))
	assert.False(t, IsPrivateIPv4("100.128.0.0"))
	assert.False(t, IsPrivateIPv4("223.255.255.255"))
	assert.False(t, IsPrivateIPv4("169.253.1.1"))
	assert.False(t, IsPrivateIPv4("11.0.0.1"))
}

func TestClassifyIPv4_Public(t *testing.T) {
	for _, ip := range []string{"8.8.8.8", "1.1.1.1", "93.184.216.34", "151.101.1.69"} {
		assert.Equal(t, Public, ClassifyIPv4(ip), ip)
		assert.False(t, IsPrivateIPv4(ip), ip)
	}
}

func TestClassifyIPv4_MalformedFailsClosed(t *testing.T) {
	cases := []string{
		"", "1.2.3", "1.2.3.4.5", "256.1.1.1", "1.2.3.999", "-1.2.3.4",
		"a.b.c.d", "1.2.3.x", "1..2.3", "0x7f.0.0.1", "0177.0.0.1",
		"2130706433", " 8.8.8.8", "8.8.8.8 ", "::1",
	}
	for _, ip := range cases {
		t.Run(ip, func(t *testing.T) {
			assert.Equal(t, Unparseable, ClassifyIPv4(ip))
			assert.True(t, IsPrivateIPv4(ip))
		})
	}
}

func TestClassifyIPv6(t *testing.T) {
	private := []string{
		"::1", "::",
		"fc00::1", "fdff:ffff::1",
		"fe80::1", "febf::1",
		"ff02::1", "ff00::",
		"fec0::1", "feff::1",
		"::ffff:192.168.1.1", "::ffff:127.0.0.1", "::ffff:10.0.0.1",
		"64:ff9b::a9fe:a9fe",
		"::127.0.0.1", "::10.0.0.1", "::a9fe:a9fe", "::0.0.0.2",
	}
	for _, ip := range private {
		assert.True(t, IsPrivateIPv6(ip), ip)
	}

	public := []string{"2606:4700:4700::1111", "2001:4860:4860::8888", "::ffff:8.8.8.8", "64:ff9b::808:808", "::8.8.8.8"}
	for _, ip := range public {
		assert.Equal(t, Public, ClassifyIPv6(ip), ip)
	}

	for _, ip := range []string{"", "not-an-ip", "1.2.3.4", "fe80::1%eth0", "12345::1", ":::"} {
		assert.Equal(t, Unparseable, ClassifyIPv6(ip), ip)
	}
}

func TestClassifyIP(t *testing.T) {
	assert.Equal(t, Private, ClassifyIP(net.ParseIP("10.1.2.3")))
	assert.Equal(t, Private, ClassifyIP(net.ParseIP("::ffff:10.1.2.3")))
	assert.Equal(t, Public, ClassifyIP(net.ParseIP("8.8.4.4")))
	assert.Equal(t, Private, ClassifyIP(net.ParseIP("fd00::1")))
	assert.Equal(t, Public, ClassifyIP(net.ParseIP("2001:4860:4860::8844")))
	assert.Equal(t, Unparseable, ClassifyIP(nil))
	assert.Equal(t, Unparseable, ClassifyIP(net.IP{1, 2, 3}))
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "public", Public.String())
	assert.Equal(t, "private", Private.String())
	assert.Equal(t, "unparseable", Unparseable.String())
	assert.False(t, Public.Blocked())
	assert.True(t, Unparseable.Blocked())
}
