// SPDX-License-Identifier: MPL-2.0

package scriptcheck

import "strings"

type (
	// reference is one dotted chain found in a script.
	reference struct {
		chain    string
		line     int
		col      int
		isImport bool
		// stmtStart and stmtEnd delimit the whole import statement,
		// keyword through ';'. Unset for code references.
		stmtStart int
		stmtEnd   int
	}

	scanner struct {
		src       []byte
		pos       int
		line      int
		lineStart int
		refs      []reference
	}
)

// scanReferences lexes Haxe source and returns every import path and every
// dotted identifier chain that is not a member access on an expression.
// Comments, string literals, package declarations and conditional
// compilation lines are skipped.
func scanReferences(src []byte) []reference {
	s := &scanner{src: src, line: 1}
	s.run()
	return s.refs
}

func (s *scanner) run() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\n':
			s.newline()
		case c == '/' && s.peek(1) == '/':
			s.skipLine()
		case c == '/' && s.peek(1) == '*':
			s.skipBlockComment()
		case c == '"' || c == '\'':
			s.skipString(c)
		case c == '#':
			s.skipLine()
		case isDigit(c):
			s.skipNumber()
		case isIdentStart(c):
			s.identifier()
		default:
			s.pos++
		}
	}
}

func (s *scanner) identifier() {
	start := s.pos
	afterDot := s.prevSignificant() == '.'
	chain, end := s.readChain(start)

	switch chain {
	case "package":
		s.skipTo(';')
		return
	case "import", "using":
		s.pos = end
		s.importStatement(start)
		return
	}

	s.pos = end
	if afterDot || s.isFieldName(chain, end) {
		return
	}
	s.refs = append(s.refs, reference{chain: chain, line: s.line, col: start - s.lineStart + 1})
}

func (s *scanner) importStatement(keywordStart int) {
	s.skipSpaces()
	if s.pos >= len(s.src) || !isIdentStart(s.src[s.pos]) {
		return
	}
	pathStart := s.pos
	line, col := s.line, pathStart-s.lineStart+1
	chain, end := s.readChain(pathStart)
	if strings.HasPrefix(string(s.src[end:]), ".*") {
		end += 2
	}
	s.pos = end
	s.skipTo(';')

	s.refs = append(s.refs, reference{
		chain:     chain,
		line:      line,
		col:       col,
		isImport:  true,
		stmtStart: keywordStart,
		stmtEnd:   s.pos,
	})
}

// readChain reads ident ('.' ident)* starting at start. Whitespace is not
// allowed inside a chain.
func (s *scanner) readChain(start int) (string, int) {
	i := start
	for {
		for i < len(s.src) && isIdentPart(s.src[i]) {
			i++
		}
		if i+1 < len(s.src) && s.src[i] == '.' && isIdentStart(s.src[i+1]) {
			i++
			continue
		}
		return string(s.src[start:i]), i
	}
}

// isFieldName reports whether a single identifier is followed by ':', as in
// an object literal key, a declaration or a parameter name.
func (s *scanner) isFieldName(chain string, end int) bool {
	if strings.Contains(chain, ".") {
		return false
	}
	for i := end; i < len(s.src); i++ {
		switch s.src[i] {
		case ' ', '\t', '\r':
			continue
		case ':':
			return i+1 >= len(s.src) || s.src[i+1] != ':'
		default:
			return false
		}
	}
	return false
}

func (s *scanner) prevSignificant() byte {
	for i := s.pos - 1; i >= 0; i-- {
		switch s.src[i] {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return s.src[i]
		}
	}
	return 0
}

func (s *scanner) peek(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

func (s *scanner) newline() {
	s.pos++
	s.line++
	s.lineStart = s.pos
}

func (s *scanner) skipLine() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *scanner) skipSpaces() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\r':
			s.pos++
		case '\n':
			s.newline()
		default:
			return
		}
	}
}

// skipTo advances past the next occurrence of c, or to the end of the line
// when c does not appear on it.
func (s *scanner) skipTo(c byte) {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case c:
			s.pos++
			return
		case '\n':
			return
		default:
			s.pos++
		}
	}
}

func (s *scanner) skipBlockComment() {
	s.pos += 2
	for s.pos < len(s.src) {
		if s.src[s.pos] == '*' && s.peek(1) == '/' {
			s.pos += 2
			return
		}
		if s.src[s.pos] == '\n' {
			s.newline()
			continue
		}
		s.pos++
	}
}

func (s *scanner) skipString(quote byte) {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos++
			if s.pos < len(s.src) && s.src[s.pos] == '\n' {
				s.newline()
			} else {
				s.pos++
			}
		case quote:
			s.pos++
			return
		case '\n':
			s.newline()
		default:
			s.pos++
		}
	}
}

func (s *scanner) skipNumber() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if isIdentPart(c) || (c == '.' && isDigit(s.peek(1))) {
			s.pos++
			continue
		}
		return
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
