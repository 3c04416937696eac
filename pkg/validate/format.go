package validate

import (
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// timePattern and uuidPattern have no direct Go time/net equivalent
// (a bare RFC-3339 time-of-day, and the canonical dashed UUID form),
// so they're matched the same way the reference validator matches
// them: a fixed regular expression rather than a parser.
var (
	timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9]):([0-5][0-9])(\.[0-9]{1,9})?(Z|z|[+-]([01][0-9]|2[0-3]):[0-5][0-9])$`)
	uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// validFormat checks value against the named string format. An
// unrecognized format name is treated as always valid, the same
// permissive fallback the reference validator uses.
func validFormat(name, value string) bool {
	switch name {
	case "date":
		return formatDate(value)
	case "date-time":
		_, err := time.Parse(time.RFC3339, value)
		return err == nil
	case "email":
		return formatEmail(value)
	case "hostname":
		return formatHostname(value)
	case "ipv4":
		return formatIPv4(value)
	case "ipv6":
		ip := net.ParseIP(value)
		return ip != nil && ip.To4() == nil
	case "uri":
		u, err := url.Parse(value)
		return err == nil && u.IsAbs()
	case "regex":
		_, err := regexp.Compile(value)
		return err == nil
	case "time":
		return timePattern.MatchString(value)
	case "uuid":
		return uuidPattern.MatchString(value)
	default:
		return true
	}
}

func formatDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func formatIPv4(value string) bool {
	if len(value) > 0 && value[0] == '0' {
		return false
	}
	ip := net.ParseIP(value)
	return ip != nil && ip.To4() != nil
}

// formatEmail applies the same deliberately simplified local-part
// check as the reference validator: no dot at either end of the local
// part, no consecutive dots, a bare search for "@" — the domain part
// is not validated at all.
func formatEmail(value string) bool {
	if value == "" || value[0] == '.' {
		return false
	}
	runes := []rune(value)
	for i := 0; i < len(runes)-1; i++ {
		a, b := runes[i], runes[i+1]
		if a == '.' && (b == '.' || b == '@') {
			return false
		}
		if b == '@' {
			return true
		}
	}
	return false
}

func formatHostname(value string) bool {
	if value == "" || value[0] == '-' || value[len(value)-1] == '-' || len([]rune(value)) > 255 {
		return false
	}
	for _, r := range value {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') {
			return false
		}
	}
	for _, part := range strings.Split(value, ".") {
		if len([]rune(part)) > 63 {
			return false
		}
	}
	return true
}
