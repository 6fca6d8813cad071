package watchprogress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleted(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		duration float64
		want     bool
	}{
		{"not started", 0, 7200, false},
		{"halfway", 3600, 7200, false},
		{"at threshold", 6480, 7200, true},
		{"finished", 7200, 7200, true},
		{"unknown duration", 3600, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WatchProgress{ProgressSeconds: tt.progress, DurationSeconds: tt.duration}
			assert.Equal(t, tt.want, w.Completed())
		})
	}
}
