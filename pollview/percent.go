// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollview

// Percentage returns votes as a whole percentage of total, rounding halves up.
// A zero total yields 0 for any count.
func Percentage(votes, total int) int {
	if total <= 0 {
		return 0
	}
	// round(100*v/t) == floor((200*v + t) / 2t) for non-negative v, t
	return (200*votes + total) / (2 * total)
}

// OptionResult is one row of the results view.
type OptionResult struct {
	Label   string
	Votes   int
	Percent int
}
