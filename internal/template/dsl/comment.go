package dsl

// StripComments removes // line comments and /* */ block comments that sit
// outside JSON string literals. Newlines inside removed comments are kept so
// line numbers stay stable. An unterminated block comment runs to the end.
func StripComments(data []byte) []byte {
	out := make([]byte, 0, len(data))

	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}

		if c == '/' && i+1 < len(data) {
			switch data[i+1] {
			case '/':
				i += 2
				for i < len(data) && data[i] != '\n' {
					i++
				}
				if i < len(data) {
					out = append(out, '\n')
				}
				continue
			case '*':
				out = append(out, ' ')
				i += 2
				for i < len(data) && !(data[i] == '*' && i+1 < len(data) && data[i+1] == '/') {
					if data[i] == '\n' {
						out = append(out, '\n')
					}
					i++
				}
				// skip the closing "*/"
				i++
				continue
			}
		}

		out = append(out, c)
	}

	return out
}
