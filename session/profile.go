package session

import (
	"strconv"
	"strings"
)

// AIName is recorded for games the autoplay agent finished.
const AIName = "AI"

// Profile adjusts a game for the player name that started it.
type Profile struct {
	Name string
	// Commentary plays the JEFF voice lines.
	Commentary    bool
	AlwaysIntense bool
	// StartLevel replaces the selected start level when >= 0.
	StartLevel int
	// DeleteRank removes the n-th displayed high score name when >= 0.
	DeleteRank int
}

var defaultProfile = Profile{StartLevel: -1, DeleteRank: -1}

var profiles = map[string]Profile{
	"JEFF":    {Commentary: true, StartLevel: -1, DeleteRank: -1},
	"JOSEPH":  {StartLevel: 15, DeleteRank: -1},
	"INTENSE": {AlwaysIntense: true, StartLevel: -1, DeleteRank: -1},
	"LOGAN":   {AlwaysIntense: true, StartLevel: 16, DeleteRank: -1},
	"MARK":    {AlwaysIntense: true, StartLevel: 16, DeleteRank: -1},
}

// ProfileFor looks up the overrides for name. Names without an entry get
// the default profile. DEL0 through DEL9 delete a score.
func ProfileFor(name string) Profile {
	p, ok := profiles[name]
	if !ok {
		p = defaultProfile
		if rank, ok := strings.CutPrefix(name, "DEL"); ok && len(rank) == 1 {
			if n, err := strconv.Atoi(rank); err == nil {
				p.DeleteRank = n
			}
		}
	}
	p.Name = name
	return p
}

func (p Profile) Special() bool {
	return p.Commentary || p.AlwaysIntense || p.StartLevel >= 0 || p.DeleteRank >= 0
}
