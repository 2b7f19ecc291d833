// Package scanner implements the PostScript Level-2 lexical surface
// (spec.md §6): tokens, literal/executable names, procedure arrays, strings
// (paren-nested and hex), numbers (integer/real/radix), and comments.
// `%%BoundingBox:` and every other `%`-comment is skipped with no
// interpreter effect.
package scanner

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/pserrors"
)

// Scanner reads tokens from an in-memory PostScript source buffer. Its
// shape — options-free, position-tracked, operating directly on a string —
// mirrors the teacher's lexer.Lexer (one rune of lookahead, line/column
// tracking) scaled down to PostScript's much smaller surface grammar.
type Scanner struct {
	src  string
	pos  int
	line int
	col  int
}

// New returns a Scanner over src.
func New(src string) *Scanner {
	return &Scanner{src: src, line: 1, col: 0}
}

// Pos returns the byte offset the scanner has consumed so far, so a caller
// streaming tokens from a growing or externally-positioned buffer (the
// executable-file case, spec.md §4.6) can resume a fresh Scanner where the
// last one left off.
func (s *Scanner) Pos() int { return s.pos }

func (s *Scanner) peek() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *Scanner) peekAt(off int) byte {
	if s.pos+off >= len(s.src) {
		return 0
	}
	return s.src[s.pos+off]
}

func (s *Scanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	return c
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '{', '}', '[', ']', '<', '>', '/', '%':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return c != 0
	}
	return false
}

func (s *Scanner) skipWhitespaceAndComments() {
	for s.pos < len(s.src) {
		c := s.peek()
		if isSpace(c) {
			s.advance()
			continue
		}
		if c == '%' {
			for s.pos < len(s.src) && s.peek() != '\n' {
				s.advance()
			}
			continue
		}
		break
	}
}

// Next reads the next token from the source, building procedure arrays
// (`{ ... }`) recursively so executable arrays come back as one Object
// (spec.md §3.3: "Executable arrays are procedures"). ok is false at EOF.
// `[`/`<<` are emitted as literal mark Objects and `]`/`>>` as executable
// names, leaving construction to the execution loop and internal/ops (not
// the scanner): `]` resolves to the operator that builds an array from the
// entries above the mark. No built-in operator is registered under `>>`, so
// executing it signals undefined.
func (s *Scanner) Next(ctx *pscontext.Context) (object.Object, bool, error) {
	s.skipWhitespaceAndComments()
	if s.pos >= len(s.src) {
		return object.Object{}, false, nil
	}

	c := s.peek()
	switch {
	case c == '(':
		return s.scanString(ctx)
	case c == '<' && s.peekAt(1) == '<':
		s.advance()
		s.advance()
		return object.MarkObject(), true, nil
	case c == '<':
		return s.scanHexString(ctx)
	case c == '>' && s.peekAt(1) == '>':
		s.advance()
		s.advance()
		return ctx.Names.ConsName(object.Global, ">>").SetExecutable(true), true, nil
	case c == '{':
		return s.scanProcedure(ctx)
	case c == '}':
		return object.Object{}, false, pserrors.New(pserrors.SyntaxError, "unmatched }")
	case c == '[':
		s.advance()
		return object.MarkObject(), true, nil
	case c == ']':
		s.advance()
		return ctx.Names.ConsName(object.Global, "]").SetExecutable(true), true, nil
	case c == '/':
		s.advance()
		if s.peek() == '/' {
			// "//name" (immediately-evaluated name) is a Level-2 extension this
			// interpreter treats the same as a literal name for binding lookups;
			// no distinct behavior is required by spec.md's operation list.
			s.advance()
		}
		raw := s.scanRegular()
		return ctx.Names.ConsName(object.Global, raw), true, nil
	default:
		raw := s.scanRegular()
		if raw == "" {
			return object.Object{}, false, pserrors.New(pserrors.SyntaxError, "unexpected character %q", c)
		}
		if n, ok := scanNumber(raw); ok {
			return n, true, nil
		}
		return ctx.Names.ConsName(object.Global, raw).SetExecutable(true), true, nil
	}
}

// scanRegular reads a maximal run of non-delimiter, non-whitespace bytes —
// the shape of a name or number token.
func (s *Scanner) scanRegular() string {
	start := s.pos
	for s.pos < len(s.src) {
		c := s.peek()
		if isSpace(c) || isDelim(c) {
			break
		}
		s.advance()
	}
	return s.src[start:s.pos]
}

func (s *Scanner) scanProcedure(ctx *pscontext.Context) (object.Object, bool, error) {
	s.advance() // consume '{'
	var elems []object.Object
	for {
		s.skipWhitespaceAndComments()
		if s.pos >= len(s.src) {
			return object.Object{}, false, pserrors.New(pserrors.SyntaxError, "unterminated procedure")
		}
		if s.peek() == '}' {
			s.advance()
			break
		}
		tok, ok, err := s.Next(ctx)
		if err != nil {
			return object.Object{}, false, err
		}
		if !ok {
			return object.Object{}, false, pserrors.New(pserrors.SyntaxError, "unterminated procedure")
		}
		elems = append(elems, tok)
	}
	arr, err := arrayFromElements(ctx, elems)
	if err != nil {
		return object.Object{}, false, err
	}
	return arr.SetExecutable(true), true, nil
}

func (s *Scanner) scanString(ctx *pscontext.Context) (object.Object, bool, error) {
	s.advance() // consume '('
	var b strings.Builder
	depth := 1
	for {
		if s.pos >= len(s.src) {
			return object.Object{}, false, pserrors.New(pserrors.SyntaxError, "unterminated string")
		}
		c := s.advance()
		switch c {
		case '(':
			depth++
			b.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return makeLiteralString(ctx, b.String())
			}
			b.WriteByte(c)
		case '\\':
			if s.pos >= len(s.src) {
				return object.Object{}, false, pserrors.New(pserrors.SyntaxError, "unterminated escape in string")
			}
			esc := s.advance()
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case '\\', '(', ')':
				b.WriteByte(esc)
			case '\n':
				// line continuation: escaped newline contributes nothing
			case '\r':
				if s.peek() == '\n' {
					s.advance()
				}
			default:
				if esc >= '0' && esc <= '7' {
					val := int(esc - '0')
					for i := 0; i < 2 && s.peek() >= '0' && s.peek() <= '7'; i++ {
						val = val*8 + int(s.advance()-'0')
					}
					b.WriteByte(byte(val))
				} else {
					b.WriteByte(esc)
				}
			}
		default:
			b.WriteByte(c)
		}
	}
}

func (s *Scanner) scanHexString(ctx *pscontext.Context) (object.Object, bool, error) {
	s.advance() // consume '<'
	var digits []byte
	for {
		if s.pos >= len(s.src) {
			return object.Object{}, false, pserrors.New(pserrors.SyntaxError, "unterminated hex string")
		}
		c := s.advance()
		if c == '>' {
			break
		}
		if isSpace(c) {
			continue
		}
		digits = append(digits, c)
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	for i := 0; i < len(out); i++ {
		hi, err1 := strconv.ParseUint(string(digits[i*2:i*2+1]), 16, 8)
		lo, err2 := strconv.ParseUint(string(digits[i*2+1:i*2+2]), 16, 8)
		if err1 != nil || err2 != nil {
			return object.Object{}, false, pserrors.New(pserrors.SyntaxError, "invalid hex digit in string")
		}
		out[i] = byte(hi<<4 | lo)
	}
	return makeLiteralString(ctx, string(out))
}

func makeLiteralString(ctx *pscontext.Context, s string) (object.Object, bool, error) {
	obj, err := newString(ctx, []byte(s))
	if err != nil {
		return object.Object{}, false, err
	}
	return obj, true, nil
}

// scanNumber recognizes integer, real, and radix ("base#digits") numeric
// literals (spec.md §6). ok is false if raw isn't a valid number, in which
// case the caller treats it as a name instead.
func scanNumber(raw string) (object.Object, bool) {
	if raw == "" {
		return object.Object{}, false
	}
	if i := strings.IndexByte(raw, '#'); i > 0 {
		base, err := strconv.Atoi(raw[:i])
		if err != nil || base < 2 || base > 36 {
			return object.Object{}, false
		}
		digits := raw[i+1:]
		neg := false
		if strings.HasPrefix(digits, "-") {
			neg = true
			digits = digits[1:]
		}
		v, err := strconv.ParseInt(digits, base, 64)
		if err != nil {
			return object.Object{}, false
		}
		if neg {
			v = -v
		}
		return object.IntObject(int32(v)), true
	}
	if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return object.IntObject(int32(v)), true
	}
	if f, err := strconv.ParseFloat(raw, 32); err == nil {
		if looksNumeric(raw) {
			return object.RealObject(float32(f)), true
		}
	}
	return object.Object{}, false
}

// looksNumeric guards against ParseFloat accepting things like "Inf" or
// "NaN", which are names in PostScript, not numbers.
func looksNumeric(raw string) bool {
	for _, c := range raw {
		switch {
		case c >= '0' && c <= '9':
		case c == '+' || c == '-' || c == '.' || c == 'e' || c == 'E':
		default:
			return false
		}
	}
	return true
}
