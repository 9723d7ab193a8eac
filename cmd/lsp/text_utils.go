package main

func getLine(content string, lineIndex int) string {
	start := 0
	currentLine := 0
	n := len(content)

	for i := 0; i < n; i++ {
		if content[i] == '\n' {
			if currentLine == lineIndex {
				return content[start:i]
			}
			start = i + 1
			currentLine++
		}
	}

	if currentLine == lineIndex {
		return content[start:]
	}

	return ""
}

// isInsideComment reports whether char on line falls after a YAML '#'
// comment marker. Quoted scalars are skipped.
func isInsideComment(content string, line, char int) bool {
	lineStr := getLine(content, line)
	var quote byte
	for i := 0; i < len(lineStr) && i < char; i++ {
		b := lineStr[i]
		switch {
		case quote != 0:
			if b == quote {
				quote = 0
			}
		case b == '"' || b == '\'':
			quote = b
		case b == '#' && (i == 0 || lineStr[i-1] == ' ' || lineStr[i-1] == '\t'):
			return true
		}
	}
	return false
}
