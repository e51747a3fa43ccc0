// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollview

import "testing"

func TestPercentage(t *testing.T) {
	tests := []struct {
		name  string
		votes int
		total int
		want  int
	}{
		{"three of four", 3, 4, 75},
		{"one of four", 1, 4, 25},
		{"none of zero", 0, 0, 0},
		{"zero total ignores votes", 7, 0, 0},
		{"all", 5, 5, 100},
		{"none of some", 0, 9, 0},
		{"third rounds down", 1, 3, 33},
		{"two thirds rounds up", 2, 3, 67},
		{"half rounds up", 1, 8, 13},
		{"another half", 1, 200, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.votes, tt.total); got != tt.want {
				t.Errorf("Percentage(%d, %d) = %d, want %d", tt.votes, tt.total, got, tt.want)
			}
		})
	}
}

func TestPercentageBounds(t *testing.T) {
	for total := 1; total <= 60; total++ {
		for votes := 0; votes <= total; votes++ {
			p := Percentage(votes, total)
			if p < 0 || p > 100 {
				t.Fatalf("Percentage(%d, %d) = %d, outside [0, 100]", votes, total, p)
			}
		}
	}
}
