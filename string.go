package jsontree

import (
	"fmt"
	"sync/atomic"

	"github.com/mcvoid/jsontree/internal/utf16x"
)

// escapeSlashesFlag is the single process-wide "escape slashes on
// serialization" switch from §5: read-only for the duration of any
// one serialization call, defaulting to true. It is process-lifetime
// state, not per-tree state, matching parson's static
// parson_escape_slashes.
var escapeSlashesFlag atomic.Bool

func init() {
	escapeSlashesFlag.Store(true)
}

// SetEscapeSlashes sets the process-wide default for whether '/' is
// escaped as "\/" during serialization. It does not affect an
// in-flight serialization call.
func SetEscapeSlashes(enabled bool) {
	escapeSlashesFlag.Store(enabled)
}

// EscapeSlashes reports the current process-wide escape-slashes
// setting.
func EscapeSlashes() bool {
	return escapeSlashesFlag.Load()
}

// processString unescapes the body of a JSON string literal (the
// bytes between, but not including, the surrounding quotes). It
// rejects raw control bytes below 0x20 and any escape other than the
// documented set, delegating \uXXXX decoding (including surrogate
// pairing) to internal/utf16x.
//
// A literal NUL byte in input ends processing without error, mirroring
// parson's process_string walking a NUL-terminated C string — this is
// a faithful compatibility quirk, not a generic "stop on zero" rule;
// NUL produced via a unicode escape is unaffected; it is written to the
// output like any other decoded byte.
func processString(input []byte) (string, error) {
	out := make([]byte, 0, len(input)+1)
	i := 0
	for i < len(input) {
		c := input[i]
		if c == 0 {
			break
		}
		if c == '\\' {
			i++
			if i >= len(input) {
				return "", fmt.Errorf("%w: %w: dangling escape", ErrSyntax, ErrEncoding)
			}
			switch input[i] {
			case '"':
				out = append(out, '"')
				i++
			case '\\':
				out = append(out, '\\')
				i++
			case '/':
				out = append(out, '/')
				i++
			case 'b':
				out = append(out, '\b')
				i++
			case 'f':
				out = append(out, '\f')
				i++
			case 'n':
				out = append(out, '\n')
				i++
			case 'r':
				out = append(out, '\r')
				i++
			case 't':
				out = append(out, '\t')
				i++
			case 'u':
				i++
				r, n, err := decodeUnicodeEscape(input[i:])
				if err != nil {
					return "", err
				}
				var buf [4]byte
				written := utf16x.EncodeUTF8(r, buf[:])
				out = append(out, buf[:written]...)
				i += n
			default:
				return "", fmt.Errorf("%w: %w: invalid escape %q", ErrSyntax, ErrEncoding, input[i])
			}
			continue
		}
		if c < 0x20 {
			return "", fmt.Errorf("%w: %w: unescaped control byte 0x%02X", ErrSyntax, ErrEncoding, c)
		}
		// A run of raw (non-escaped, non-control) bytes may be a
		// multi-byte UTF-8 sequence; validate the whole run at once
		// rather than copying bytes through unchecked.
		start := i
		for i < len(input) && input[i] >= 0x20 && input[i] != '\\' && input[i] != 0 {
			i++
		}
		run := input[start:i]
		if err := utf16x.ValidateUTF8(run); err != nil {
			return "", fmt.Errorf("%w: %w: %v", ErrSyntax, ErrEncoding, err)
		}
		out = append(out, run...)
	}
	return string(out), nil
}

// decodeUnicodeEscape decodes a \uXXXX escape body (input starts
// right after the 'u'), following the lead/trail surrogate pairing
// described in §4.1. It returns the decoded rune and the number of
// input bytes consumed (4, or 10 for a surrogate pair including the
// second "\uXXXX").
func decodeUnicodeEscape(input []byte) (rune, int, error) {
	if len(input) < 4 {
		return 0, 0, fmt.Errorf("%w: %w: truncated \\u escape", ErrSyntax, ErrEncoding)
	}
	cu, err := utf16x.DecodeHex4(input[:4])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w: %v", ErrSyntax, ErrEncoding, err)
	}
	switch {
	case utf16x.IsTrailSurrogate(cu):
		return 0, 0, fmt.Errorf("%w: %w: trail surrogate %#04x without preceding lead surrogate", ErrSyntax, ErrEncoding, cu)
	case utf16x.IsLeadSurrogate(cu):
		if len(input) < 10 || input[4] != '\\' || input[5] != 'u' {
			return 0, 0, fmt.Errorf("%w: %w: unpaired lead surrogate %#04x", ErrSyntax, ErrEncoding, cu)
		}
		trail, err := utf16x.DecodeHex4(input[6:10])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %w: %v", ErrSyntax, ErrEncoding, err)
		}
		r, err := utf16x.CombineSurrogates(cu, trail)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %w: %v", ErrSyntax, ErrEncoding, err)
		}
		return r, 10, nil
	default:
		return rune(cu), 4, nil
	}
}

// escapeString quotes and escapes s per §4.2's serializer table:
// '"', '\\', and the C0 control range all get an escape; '/' is
// escaped iff escapeSlashes is true; everything else passes through.
func escapeString(s string, escapeSlashes bool) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			out = append(out, '\\', '"')
		case c == '\\':
			out = append(out, '\\', '\\')
		case c == '\b':
			out = append(out, '\\', 'b')
		case c == '\f':
			out = append(out, '\\', 'f')
		case c == '\n':
			out = append(out, '\\', 'n')
		case c == '\r':
			out = append(out, '\\', 'r')
		case c == '\t':
			out = append(out, '\\', 't')
		case c < 0x20:
			out = append(out, fmt.Sprintf(`\u%04x`, c)...)
		case c == '/':
			if escapeSlashes {
				out = append(out, '\\', '/')
			} else {
				out = append(out, '/')
			}
		default:
			out = append(out, c)
		}
	}
	out = append(out, '"')
	return string(out)
}

// EscapeString quotes and escapes s using the current process-wide
// escape-slashes setting.
func EscapeString(s string) string {
	return escapeString(s, EscapeSlashes())
}

// EscapeStringSlashes quotes and escapes s, overriding the
// process-wide escape-slashes setting for this call. canon uses this
// to force solidus-unescaped output regardless of the caller's global
// default, since RFC 8785 forbids escaping '/'.
func EscapeStringSlashes(s string, escapeSlashes bool) string {
	return escapeString(s, escapeSlashes)
}
