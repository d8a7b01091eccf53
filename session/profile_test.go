package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileFor(t *testing.T) {
	tests := []struct {
		name string
		want Profile
	}{
		{"BOB", Profile{Name: "BOB", StartLevel: -1, DeleteRank: -1}},
		{"JEFF", Profile{Name: "JEFF", Commentary: true, StartLevel: -1, DeleteRank: -1}},
		{"JOSEPH", Profile{Name: "JOSEPH", StartLevel: 15, DeleteRank: -1}},
		{"INTENSE", Profile{Name: "INTENSE", AlwaysIntense: true, StartLevel: -1, DeleteRank: -1}},
		{"LOGAN", Profile{Name: "LOGAN", AlwaysIntense: true, StartLevel: 16, DeleteRank: -1}},
		{"MARK", Profile{Name: "MARK", AlwaysIntense: true, StartLevel: 16, DeleteRank: -1}},
		{"DEL0", Profile{Name: "DEL0", StartLevel: -1, DeleteRank: 0}},
		{"DEL9", Profile{Name: "DEL9", StartLevel: -1, DeleteRank: 9}},
		{"DEL10", Profile{Name: "DEL10", StartLevel: -1, DeleteRank: -1}},
		{"DELX", Profile{Name: "DELX", StartLevel: -1, DeleteRank: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProfileFor(tt.name))
		})
	}
}

func TestProfileSpecial(t *testing.T) {
	assert.False(t, ProfileFor("AI").Special())
	assert.True(t, ProfileFor("JEFF").Special())
	assert.True(t, ProfileFor("DEL3").Special())
}
