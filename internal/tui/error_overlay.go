package tui

// renderErrorBanner renders the last controller error above the current
// screen. It never blocks input.
func renderErrorBanner(err error, width int) string {
	if err == nil {
		return ""
	}

	text := "Error: " + humanizeError(err) + "   ctrl+x: dismiss"
	if width > 8 {
		text = fitText(text, width-4)
	}
	return bannerStyle.Render(errorStyle.Render(text))
}
