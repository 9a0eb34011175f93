package validator

import (
	"net/netip"
	"strconv"
)

// Filter flags of IPRule. They can be combined with a bitwise or, except
// that IPv4 and IPv6 are mutually exclusive.
const (
	IPFlagIPv4        = 1 << 20
	IPFlagIPv6        = 1 << 21
	IPFlagNoResRange  = 1 << 22
	IPFlagNoPrivRange = 1 << 23

	ipFlagMask = IPFlagIPv4 | IPFlagIPv6 | IPFlagNoResRange | IPFlagNoPrivRange
)

var reservedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("169.254.0.0/16"),
	netip.MustParsePrefix("240.0.0.0/4"),
	netip.MustParsePrefix("::/128"),
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("::ffff:0:0/96"),
	netip.MustParsePrefix("fe80::/10"),
}

// IPRule checks an IP address against the configured flags. The default
// flag accepts IPv4 addresses only.
type IPRule struct {
	*Base
	flag int
}

func newIPRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	flag, err := params.Int(ParamFlag, IPFlagIPv4)
	if err != nil {
		return nil, err
	}
	return &IPRule{Base: base, flag: flag}, nil
}

func (r *IPRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	if !validIPFlag(r.flag) {
		return r.SetAndReturnError(CodeInvalidIPFlag, map[string]string{
			"%flag%": strconv.Itoa(r.flag),
		})
	}

	if !CheckIP(Stringify(r.value), r.flag) {
		return r.SetAndReturnError(CodeInvalidIP, nil)
	}

	return StatusValid
}

func validIPFlag(flag int) bool {
	if flag&^ipFlagMask != 0 {
		return false
	}
	return flag&(IPFlagIPv4|IPFlagIPv6) != IPFlagIPv4|IPFlagIPv6
}

// CheckIP reports whether s is an address allowed by flag. Without a
// family flag both IPv4 and IPv6 are accepted. Zoned addresses are rejected.
func CheckIP(s string, flag int) bool {
	addr, err := netip.ParseAddr(s)
	if err != nil || addr.Zone() != "" {
		return false
	}

	switch {
	case flag&IPFlagIPv4 != 0 && !addr.Is4():
		return false
	case flag&IPFlagIPv6 != 0 && !addr.Is6():
		return false
	case flag&IPFlagNoPrivRange != 0 && addr.IsPrivate():
		return false
	}

	if flag&IPFlagNoResRange != 0 {
		for _, p := range reservedPrefixes {
			if p.Contains(addr) {
				return false
			}
		}
	}

	return true
}
