package tui

import "time"

const (
	// manualScrollTimeout is how long a manual scroll suppresses
	// auto-follow.
	manualScrollTimeout = 10 * time.Second

	// manualScrollWords is the number of further correctly typed words that
	// also re-enables auto-follow, whichever comes first. Skipped and
	// mistyped commits do not count.
	manualScrollWords = 3

	// tailBiasProgress is the typing progress beyond which the translation
	// pane starts drifting toward its tail.
	tailBiasProgress = 0.7

	// snapProgress is the progress beyond which the translation pane jumps
	// straight to the bottom instead of drifting.
	snapProgress = 0.9

	// maxScrollJump caps how many lines one update may move the
	// translation pane.
	maxScrollJump = 4
)

// followOffset keeps currentLine inside the visible window, moving the
// offset only when it falls outside. The offset is clamped to the content.
func followOffset(offset, currentLine, visible, total int) int {
	maxOffset := total - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if currentLine < offset {
		offset = currentLine
	} else if visible > 0 && currentLine >= offset+visible {
		offset = currentLine - visible + 1
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// translationOffset positions the translation pane. It follows the current
// line, drifts toward the tail once progress passes tailBiasProgress, caps
// the per-update movement at maxScrollJump, and snaps to the bottom once
// progress passes snapProgress.
func translationOffset(offset, currentLine, visible, total int, progress float64) int {
	maxOffset := total - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if progress >= snapProgress {
		return maxOffset
	}

	target := followOffset(offset, currentLine, visible, total)
	if progress >= tailBiasProgress {
		biased := int(float64(maxOffset) * progress)
		if biased > target {
			target = biased
		}
	}

	if target > offset+maxScrollJump {
		target = offset + maxScrollJump
	} else if target < offset-maxScrollJump {
		target = offset - maxScrollJump
	}
	if target > maxOffset {
		target = maxOffset
	}
	if target < 0 {
		target = 0
	}
	return target
}

// manualScroll tracks a user-initiated scroll of the translation pane, which
// pauses auto-follow until it expires. The word counter is the session's
// correctly-typed count, so skips and typos do not shorten the pause.
type manualScroll struct {
	active    bool
	at        time.Time
	correctAt int
}

func (m *manualScroll) mark(now time.Time, correctWords int) {
	m.active = true
	m.at = now
	m.correctAt = correctWords
}

// suppressed reports whether auto-follow is still paused, clearing the mark
// once it expires.
func (m *manualScroll) suppressed(now time.Time, correctWords int) bool {
	if !m.active {
		return false
	}
	if now.Sub(m.at) >= manualScrollTimeout || correctWords-m.correctAt >= manualScrollWords {
		m.active = false
		return false
	}
	return true
}
