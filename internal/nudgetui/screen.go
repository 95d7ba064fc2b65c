package nudgetui

import (
	"fmt"
	"strings"
)

// ANSI escape codes
const (
	escClear      = "\x1b[2J"
	escHome       = "\x1b[H"
	escHideCursor = "\x1b[?25l"
	escBold       = "\x1b[1m"
	escDim        = "\x1b[2m"
	escReset      = "\x1b[0m"
	escCyan       = "\x1b[36m"
	escYellow     = "\x1b[33m"
	escRed        = "\x1b[31m"
	escGreen      = "\x1b[32m"
)

func (l *Loop) render() {
	l.updateSize()

	var sb strings.Builder

	// Hide cursor during render
	sb.WriteString(escHideCursor)
	sb.WriteString(escReset)
	sb.WriteString(escClear)
	sb.WriteString(escHome)

	width := l.width
	if width < 1 {
		width = 1
	}

	// Header
	sb.WriteString(escBold)
	sb.WriteString(escCyan)
	sb.WriteString(centerText("edgegrab interactive", width))
	sb.WriteString(escReset)
	sb.WriteString("\r\n")
	sb.WriteString(strings.Repeat("─", width))
	sb.WriteString("\r\n")

	// Target window block
	title := l.title
	if title == "" {
		title = escDim + "(untitled)" + escReset
	}
	sb.WriteString(truncateANSI(fmt.Sprintf("  window  %s0x%08x%s  %s",
		escCyan, l.window, escReset, title), width))
	sb.WriteString("\r\n")
	sb.WriteString(truncateANSI(fmt.Sprintf("  rect    (%d, %d)  %dx%d",
		l.winX, l.winY, l.winW, l.winH), width))
	sb.WriteString("\r\n")

	snapState := escDim + "off" + escReset
	if l.snapMode {
		snapState = escGreen + "on" + escReset
	}
	sb.WriteString(truncateANSI(fmt.Sprintf("  step    %s%dpx%s  snap mode %s",
		escYellow, l.step, escReset, snapState), width))
	sb.WriteString("\r\n")
	sb.WriteString(truncateANSI(fmt.Sprintf("  edges   left %d  right %d  top %d  bottom %d",
		l.sides["left"], l.sides["right"], l.sides["top"], l.sides["bottom"]), width))
	sb.WriteString("\r\n")
	sb.WriteString("\r\n")

	// Divider
	sb.WriteString(strings.Repeat("─", width))
	sb.WriteString("\r\n")

	// Status line
	sb.WriteString(truncateANSI(l.renderStatus(), width))
	sb.WriteString("\r\n")

	// Footer with keybindings
	sb.WriteString(truncateANSI(l.renderFooter(), width))

	fmt.Print(sb.String())
}

func (l *Loop) renderStatus() string {
	if l.lastErr != "" {
		return fmt.Sprintf("%sError: %s%s", escRed, l.lastErr, escReset)
	}
	if l.lastMsg != "" {
		return l.lastMsg
	}
	return escDim + "Arrow keys nudge the window; resisted edges hold it in place." + escReset
}

func (l *Loop) renderFooter() string {
	keys := []string{
		"arrows/hjkl:nudge", "shift+arrows/HJKL:snap", "s:snap-mode",
		"+/-:step", "0:reset", "tab:window", "r:refresh", "q/esc/^C:quit",
	}
	return escDim + strings.Join(keys, "  ") + escReset
}

func centerText(text string, width int) string {
	visibleLen := visibleLength(text)
	if visibleLen >= width {
		return text
	}
	padding := (width - visibleLen) / 2
	return strings.Repeat(" ", padding) + text
}

// visibleLength returns the visible length of a string, ignoring ANSI codes.
func visibleLength(s string) int {
	inEscape := false
	length := 0
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		length++
	}
	return length
}

func truncateANSI(text string, width int) string {
	if width < 1 {
		return ""
	}
	if visibleLength(text) <= width {
		return text
	}

	var sb strings.Builder
	inEscape := false
	visible := 0
	for _, r := range text {
		if r == '\x1b' {
			inEscape = true
			sb.WriteRune(r)
			continue
		}
		if inEscape {
			sb.WriteRune(r)
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}

		if visible >= width-1 {
			break
		}
		sb.WriteRune(r)
		visible++
	}

	sb.WriteString("…")
	sb.WriteString(escReset)
	return sb.String()
}
