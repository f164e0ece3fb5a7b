package candid

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/conn-castle/nftdeploy/internal/messages"
)

// ErrMalformed reports a reply that does not have the expected shape.
var ErrMalformed = errors.New(messages.CandidRegistryMalformed)

// Pair is one (nat, text) tuple of a vec reply.
type Pair struct {
	Nat  uint32
	Text string
}

// dfx prints tuples either positionally (record { 1 : nat32; "x" }) or with
// explicit field ids (record { 0 = 1 : nat32; 1 = "x" }).
var pairPattern = regexp.MustCompile(`record\s*\{\s*(?:0\s*=\s*)?([0-9_]+)\s*(?::\s*nat32\s*)?;\s*(?:1\s*=\s*)?"((?:[^"\\]|\\.)*)"\s*;?\s*\}`)

var (
	textLiteral   = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
	recordOpening = regexp.MustCompile(`\brecord\s*\{`)
)

// ParsePairs decodes a `(vec { record { nat32; text }; ... })` reply printed by dfx.
func ParsePairs(reply []byte) ([]Pair, error) {
	s := strings.TrimSpace(string(reply))
	if !strings.HasPrefix(s, "(") || !strings.Contains(s, "vec") {
		return nil, ErrMalformed
	}
	matches := pairPattern.FindAllStringSubmatch(s, -1)
	// Every record opening outside text literals must have matched a pair.
	if len(recordOpening.FindAllStringIndex(textLiteral.ReplaceAllString(s, `""`), -1)) != len(matches) {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, messages.CandidRegistryLeftover)
	}
	pairs := make([]Pair, 0, len(matches))
	for i, m := range matches {
		n, err := strconv.ParseUint(strings.ReplaceAll(m[1], "_", ""), 10, 32)
		if err != nil {
			return nil, fmt.Errorf(messages.CandidRegistryEntryFmt, i, m[1], err)
		}
		text, err := unquoteText(m[2])
		if err != nil {
			return nil, fmt.Errorf(messages.CandidRegistryEntryFmt, i, m[1], err)
		}
		pairs = append(pairs, Pair{Nat: uint32(n), Text: text})
	}
	return pairs, nil
}

// unquoteText reverses the escapes dfx uses inside text literals.
func unquoteText(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("dangling escape in %q", s)
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '"', '\'', '\\':
			b.WriteByte(s[i])
		case 'u':
			end := strings.IndexByte(s[i:], '}')
			if i+1 >= len(s) || s[i+1] != '{' || end < 0 {
				return "", fmt.Errorf("bad unicode escape in %q", s)
			}
			r, err := strconv.ParseUint(s[i+2:i+end], 16, 32)
			if err != nil {
				return "", err
			}
			b.WriteRune(rune(r))
			i += end
		default:
			if i+1 >= len(s) {
				return "", fmt.Errorf("bad byte escape in %q", s)
			}
			v, err := strconv.ParseUint(s[i:i+2], 16, 8)
			if err != nil {
				return "", err
			}
			b.WriteByte(byte(v))
			i++
		}
	}
	return b.String(), nil
}
