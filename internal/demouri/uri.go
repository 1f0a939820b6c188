package demouri

import (
	"strconv"
	"strings"
)

// URI is a decomposed demo address
type URI struct {
	User     string
	Password string
	Host     string
	Port     string
}

// String rebuilds the user:password@host:port form
func (u URI) String() string {
	return u.User + ":" + u.Password + "@" + u.Host + ":" + u.Port
}

// Address returns host:port
func (u URI) Address() string {
	return u.Host + ":" + u.Port
}

// Validator reports whether a demo address is well formed. Components accept
// one so the format check can be replaced.
type Validator func(string) bool

// Decompose splits a demo address into its four parts. It only checks the
// separators; use Parse for the full format rules.
func Decompose(s string) (URI, error) {
	if s == "" {
		return URI{}, &Error{Kind: ErrKindEmpty}
	}

	credentials, server, err := splitOnce(s, "@", "address")
	if err != nil {
		if e, ok := err.(*Error); ok && e.Kind == ErrKindMissingColon {
			e.Kind = ErrKindMissingAt
		}
		return URI{}, err
	}

	user, password, err := splitOnce(credentials, ":", "credentials")
	if err != nil {
		return URI{}, err
	}

	host, port, err := splitOnce(server, ":", "server")
	if err != nil {
		return URI{}, err
	}

	return URI{User: user, Password: password, Host: host, Port: port}, nil
}

// Parse decomposes s and applies the format rules: user and host non-empty,
// port numeric in 1..65535. The password may be empty.
func Parse(s string) (URI, error) {
	u, err := Decompose(s)
	if err != nil {
		return URI{}, err
	}

	switch {
	case u.User == "":
		return URI{}, &Error{Kind: ErrKindEmptyPart, Part: "user"}
	case u.Host == "":
		return URI{}, &Error{Kind: ErrKindEmptyPart, Part: "host"}
	case u.Port == "":
		return URI{}, &Error{Kind: ErrKindEmptyPart, Part: "port"}
	}

	port, err := strconv.Atoi(u.Port)
	if err != nil {
		return URI{}, &Error{Kind: ErrKindBadPort, Part: "port", Err: err}
	}
	if port < 1 || port > 65535 {
		return URI{}, &Error{Kind: ErrKindBadPort, Part: "port"}
	}

	return u, nil
}

// Validate is the default Validator
func Validate(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// splitOnce splits s on exactly one occurrence of sep
func splitOnce(s, sep, part string) (string, string, error) {
	switch strings.Count(s, sep) {
	case 0:
		return "", "", &Error{Kind: ErrKindMissingColon, Part: part}
	case 1:
		left, right, _ := strings.Cut(s, sep)
		return left, right, nil
	default:
		return "", "", &Error{Kind: ErrKindExtraSeparator, Part: part}
	}
}
