// Package network provides the IPv4 subnet formula.
package network

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/calc-go/domain/format"
	"github.com/felixgeelhaar/calc-go/domain/formula"
	"github.com/felixgeelhaar/calc-go/domain/input"
	"github.com/felixgeelhaar/calc-go/domain/pack"
)

// New creates the network pack.
func New() *pack.Pack {
	return pack.NewBuilder("network").
		WithDescription("IPv4 addressing").
		WithVersion("1.0.0").
		AddFormulas(subnetFormula()).
		Build()
}

// IPv4 is an address as a 32-bit integer.
type IPv4 uint32

// ParseIPv4 parses dotted-decimal notation. It requires exactly four parts,
// each a non-empty decimal number from 0 to 255.
func ParseIPv4(s string) (IPv4, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("must have 4 octets, got %d", len(parts))
	}
	var ip uint32
	for i, p := range parts {
		if p == "" {
			return 0, fmt.Errorf("octet %d is empty", i+1)
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("octet %d %q is not a decimal number", i+1, p)
			}
		}
		if len(p) > 3 {
			return 0, fmt.Errorf("octet %d %q is out of range", i+1, p)
		}
		n, _ := strconv.Atoi(p)
		if n > 255 {
			return 0, fmt.Errorf("octet %d %d is out of range 0-255", i+1, n)
		}
		ip = ip<<8 | uint32(n) // #nosec G115 -- n is 0-255
	}
	return IPv4(ip), nil
}

func (ip IPv4) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(ip>>24), byte(ip>>16), byte(ip>>8), byte(ip))
}

// Binary renders the address as dotted 8-bit groups.
func (ip IPv4) Binary() string {
	return fmt.Sprintf("%08b.%08b.%08b.%08b", byte(ip>>24), byte(ip>>16), byte(ip>>8), byte(ip))
}

// Mask returns the netmask for a prefix length.
func Mask(prefix int) IPv4 {
	if prefix <= 0 {
		return 0
	}
	return IPv4(^uint32(0) << (32 - prefix))
}

// Class returns the classful network letter.
func (ip IPv4) Class() string {
	switch first := byte(ip >> 24); {
	case first < 128:
		return "A"
	case first < 192:
		return "B"
	case first < 224:
		return "C"
	case first < 240:
		return "D"
	default:
		return "E"
	}
}

// Private reports whether ip is in an RFC 1918 range.
func (ip IPv4) Private() bool {
	return ip&Mask(8) == 10<<24 ||
		ip&Mask(12) == 172<<24|16<<16 ||
		ip&Mask(16) == 192<<24|168<<16
}

// Loopback reports whether ip is in 127.0.0.0/8.
func (ip IPv4) Loopback() bool {
	return ip&Mask(8) == 127<<24
}

// Subnet describes the network containing an address.
type Subnet struct {
	Address     string `json:"address"`
	Prefix      int    `json:"prefix"`
	Class       string `json:"class"`
	Private     bool   `json:"private"`
	Loopback    bool   `json:"loopback"`
	Network     string `json:"network"`
	Broadcast   string `json:"broadcast"`
	FirstHost   string `json:"first_host"`
	LastHost    string `json:"last_host"`
	UsableHosts uint64 `json:"usable_hosts"`
	Mask        string `json:"mask"`
	Wildcard    string `json:"wildcard"`
	BinaryMask  string `json:"binary_mask"`
}

// Summary renders the subnet for the clipboard.
func (s Subnet) Summary(f *format.Formatter) []format.Line {
	return []format.Line{
		format.L("Address", s.Address+"/"+strconv.Itoa(s.Prefix)),
		format.L("Class", s.Class),
		format.L("Network", s.Network),
		format.L("Broadcast", s.Broadcast),
		format.L("Host range", s.FirstHost+" - "+s.LastHost),
		format.L("Usable hosts", f.NumberN(float64(s.UsableHosts), 0)),
		format.L("Mask", s.Mask),
		format.L("Wildcard", s.Wildcard),
	}
}

// NewSubnet computes the subnet of ip with the given prefix length.
func NewSubnet(ip IPv4, prefix int) Subnet {
	mask := Mask(prefix)
	network := ip & mask
	broadcast := network | ^mask

	first, last := network+1, broadcast-1
	var usable uint64
	switch prefix {
	case 32:
		first, last, usable = ip, ip, 1
	case 31:
		first, last, usable = network, broadcast, 2
	default:
		usable = uint64(1)<<(32-prefix) - 2
	}

	return Subnet{
		Address:     ip.String(),
		Prefix:      prefix,
		Class:       ip.Class(),
		Private:     ip.Private(),
		Loopback:    ip.Loopback(),
		Network:     network.String(),
		Broadcast:   broadcast.String(),
		FirstHost:   first.String(),
		LastHost:    last.String(),
		UsableHosts: usable,
		Mask:        mask.String(),
		Wildcard:    (^mask).String(),
		BinaryMask:  mask.Binary(),
	}
}

type subnetInput struct {
	IP     string       `json:"ip"`
	Prefix input.Number `json:"prefix"`
}

func subnetFormula() formula.Formula {
	return formula.NewBuilder("ip_subnet").
		WithTitle("IP Subnet").
		WithDescription("Network, broadcast, host range and masks of an IPv4 address and prefix").
		WithCategory("network").
		WithFields(
			formula.Text("ip", "IPv4 address, optionally with /prefix").Require(),
			formula.Number("prefix", "CIDR prefix length").Between(0, 32).WithDefault(24),
		).
		Pure().
		WithTags("network", "ip").
		WithHandler(formula.Typed(func(_ context.Context, in subnetInput) (Subnet, error) {
			var fe input.FieldErrors
			addr, prefix := in.IP, in.Prefix.Or(24)
			if i := strings.IndexByte(addr, '/'); i >= 0 {
				p, ok := input.ParseLenient(addr[i+1:])
				if !ok {
					fe.Add("prefix", "%q is not a prefix length", addr[i+1:])
				}
				addr, prefix = addr[:i], p
			}

			ip, err := ParseIPv4(addr)
			if err != nil {
				fe.Add("ip", "%s", err.Error())
			}
			if prefix != float64(int(prefix)) || prefix < 0 || prefix > 32 {
				fe.Add("prefix", "must be a whole number from 0 to 32")
			}
			if err := fe.Err(); err != nil {
				return Subnet{}, err
			}
			return NewSubnet(ip, int(prefix)), nil
		})).
		MustBuild()
}
