package datafile

import "strings"

// FilterComments returns the lines whose first character is not '#', in order.
func FilterComments(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// StripComments removes full-line '#' comments from text and joins the
// remaining lines with no separator. A trailing '\r' is removed from each line.
func StripComments(text string) string {
	return strings.Join(FilterComments(splitLines(text)), "")
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
