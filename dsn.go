package dsn

import (
	"net/url"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"

	"github.com/go-dsn/dsn/parser"
)

// Param is a single name=value pair from the DSN query part. Parameters
// keep their input order and duplicates are preserved.
type Param struct {
	Name, Value string
}

// Address is one server address: either host with an optional port, a bare
// port, or a url-encoded socket path. Path is stored decoded.
type Address struct {
	Host null.String
	Port null.Int
	Path null.String
}

// NewAddress creates an address with host and port.
func NewAddress(host string, port int64) Address {
	return Address{Host: null.StringFrom(host), Port: null.IntFrom(port)}
}

// AddressFromHost creates an address with host only.
func AddressFromHost(host string) Address {
	return Address{Host: null.StringFrom(host)}
}

// AddressFromPath creates an address with a socket path only.
// path is the decoded form, e.g. "/var/lib/postgresql".
func AddressFromPath(path string) Address {
	return Address{Path: null.StringFrom(path)}
}

// IsZero reports whether the address has no host, port, or path.
func (a Address) IsZero() bool {
	return !a.Host.Valid && !a.Port.Valid && !a.Path.Valid
}

// String renders the address back to its DSN form. A socket path is
// url-encoded again, so the result re-parses via the address rule.
func (a Address) String() string {
	switch {
	case a.Host.Valid && a.Port.Valid:
		return a.Host.String + ":" + strconv.FormatInt(a.Port.Int64, 10)
	case a.Host.Valid:
		return a.Host.String
	case a.Port.Valid:
		return ":" + strconv.FormatInt(a.Port.Int64, 10)
	case a.Path.Valid:
		return url.PathEscape(a.Path.String)
	}
	return ""
}

// Dsn holds every component recovered from a DSN string.
type Dsn struct {
	Driver    string
	Protocol  null.String
	Username  null.String
	Password  null.String
	Addresses []Address
	Database  null.String
	Fragment  null.String
	Params    []Param
}

// Parse parses a full DSN string.
//
// Two equivalent protocol spellings are accepted, driver+protocol://...
// and driver://protocol(...); both end up in Protocol.
func Parse(input string) (*Dsn, error) {
	root, e := dsnParser.Parse(input)
	if e != nil {
		return nil, e
	}

	return fromTree(root)
}

// ParseAddress parses a single address ("host", "host:port", ":port", or a
// url-encoded path). The whole input must match.
func ParseAddress(input string) (Address, error) {
	n, e := dsnParser.ParseRule("address", input)
	if e != nil {
		return Address{}, e
	}
	if n.End != len(input) {
		return Address{}, trailingInputError(n.End)
	}

	return lowerAddress(n)
}

// Param returns the value of the first parameter with the given name.
func (d *Dsn) Param(name string) (value string, found bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// String renders the DSN back to text in the canonical spelling:
// driver[+protocol]://[user[:pass]@][addresses][/database][fragment][?params].
func (d *Dsn) String() string {
	var b strings.Builder
	b.WriteString(d.Driver)
	if d.Protocol.Valid {
		b.WriteString("+")
		b.WriteString(d.Protocol.String)
	}
	b.WriteString("://")

	switch {
	case d.Username.Valid && d.Password.Valid:
		b.WriteString(d.Username.String)
		b.WriteString(":")
		b.WriteString(d.Password.String)
		b.WriteString("@")
	case d.Username.Valid:
		b.WriteString(d.Username.String)
		b.WriteString("@")
	case d.Password.Valid:
		b.WriteString(":")
		b.WriteString(d.Password.String)
		b.WriteString("@")
	}

	for i, a := range d.Addresses {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(a.String())
	}

	if d.Database.Valid {
		b.WriteString("/")
		b.WriteString(d.Database.String)
	}
	if d.Fragment.Valid {
		b.WriteString(d.Fragment.String)
	}

	for i, p := range d.Params {
		if i == 0 {
			b.WriteString("?")
		} else {
			b.WriteString("&")
		}
		b.WriteString(p.Name)
		b.WriteString("=")
		b.WriteString(p.Value)
	}

	return b.String()
}

// fromTree lowers the dsn parse tree into a Dsn. All the named parts are
// direct children of the root; username_with_password may repeat, in which
// case the last repetition wins.
func fromTree(root *parser.Node) (*Dsn, error) {
	d := &Dsn{}
	for _, n := range root.Children {
		switch n.Rule {
		case "scheme":
			if c := n.Find("driver"); c != nil {
				d.Driver = c.Text
			}
			if c := n.Find("protocol"); c != nil {
				d.Protocol = null.StringFrom(c.Text)
			}

		case "username_with_password":
			if c := n.Find("username"); c != nil {
				d.Username = null.StringFrom(c.Text)
			}
			if c := n.Find("password"); c != nil {
				d.Password = null.StringFrom(c.Text)
			}

		case "protocol_with_addresses":
			if c := n.Find("protocol"); c != nil {
				d.Protocol = null.StringFrom(c.Text)
			}
			if as := n.Find("addresses"); as != nil {
				for _, an := range as.FindAll("address") {
					a, e := lowerAddress(an)
					if e != nil {
						return nil, e
					}

					d.Addresses = append(d.Addresses, a)
				}
			}

		case "database":
			d.Database = null.StringFrom(n.Text)

		case "fragment":
			d.Fragment = null.StringFrom(n.Text)

		case "param":
			p := Param{}
			if c := n.Find("name"); c != nil {
				p.Name = c.Text
			}
			if c := n.Find("value"); c != nil {
				p.Value = c.Text
			}
			d.Params = append(d.Params, p)
		}
	}

	return d, nil
}

func lowerAddress(n *parser.Node) (Address, error) {
	var a Address
	for _, c := range n.Children {
		switch c.Rule {
		case "host":
			a.Host = null.StringFrom(c.Text)

		case "port":
			port, e := strconv.ParseUint(c.Text, 10, 16)
			if e != nil {
				return a, badPortError(c.Text, e)
			}

			a.Port = null.IntFrom(int64(port))

		case "path":
			decoded, e := url.PathUnescape(c.Text)
			if e != nil {
				return a, badPathError(c.Text, e)
			}

			a.Path = null.StringFrom(decoded)
		}
	}

	return a, nil
}
