package tui

// truncateLeft shortens text to width runes, keeping the end, which for paths
// is the file name.
func truncateLeft(text string, width int) string {
	runes := []rune(text)
	if width <= 0 {
		return ""
	}
	if len(runes) <= width {
		return text
	}
	if width <= 3 {
		return string(runes[len(runes)-width:])
	}
	return "..." + string(runes[len(runes)-width+3:])
}
