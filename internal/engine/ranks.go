package engine

// RankDefinition is one rung of the career ladder. The table is ordered
// by strictly increasing MinXP and the first entry starts at 0.
type RankDefinition struct {
	Title string
	MinXP int
}

// MaxLevelTitle is the sentinel next-rank title once the top of the
// ladder is passed; MaxLevelXP is its unreachable threshold.
const (
	MaxLevelTitle = "max_level"
	MaxLevelXP    = 99999
)

// Ranks is the 30-rung ladder, three grades per tier.
var Ranks = []RankDefinition{
	{Title: "RECRUIT I", MinXP: 0},
	{Title: "RECRUIT II", MinXP: 300},
	{Title: "RECRUIT III", MinXP: 700},

	{Title: "PRIVATE I", MinXP: 1200},
	{Title: "PRIVATE II", MinXP: 1800},
	{Title: "PRIVATE III", MinXP: 2500},

	{Title: "CORPORAL I", MinXP: 3300},
	{Title: "CORPORAL II", MinXP: 4200},
	{Title: "CORPORAL III", MinXP: 5200},

	{Title: "SERGEANT I", MinXP: 6300},
	{Title: "SERGEANT II", MinXP: 7500},
	{Title: "SERGEANT III", MinXP: 8800},

	{Title: "LIEUTENANT I", MinXP: 10200},
	{Title: "LIEUTENANT II", MinXP: 11700},
	{Title: "LIEUTENANT III", MinXP: 13300},

	{Title: "CAPTAIN I", MinXP: 15000},
	{Title: "CAPTAIN II", MinXP: 16800},
	{Title: "CAPTAIN III", MinXP: 18700},

	{Title: "MAJOR I", MinXP: 20700},
	{Title: "MAJOR II", MinXP: 22800},
	{Title: "MAJOR III", MinXP: 25000},

	{Title: "COLONEL I", MinXP: 27300},
	{Title: "COLONEL II", MinXP: 29700},
	{Title: "COLONEL III", MinXP: 32200},

	{Title: "GENERAL I", MinXP: 34800},
	{Title: "GENERAL II", MinXP: 37500},
	{Title: "GENERAL III", MinXP: 40300},

	{Title: "WARLORD I", MinXP: 43200},
	{Title: "WARLORD II", MinXP: 46200},
	{Title: "WARLORD III", MinXP: 50000},
}

// Rank is the derived standing for an XP total.
type Rank struct {
	Title     string
	Index     int
	NextTitle string
	NextXP    int
	MaxLevel  bool
}

// RankFor returns the last ladder entry whose MinXP does not exceed xp,
// plus the next threshold. Equality counts as attained. Pure and
// monotonic in xp.
func RankFor(xp int) Rank {
	if xp < 0 {
		xp = 0
	}

	cur := 0
	for i := range Ranks {
		if Ranks[i].MinXP <= xp {
			cur = i
		} else {
			break
		}
	}

	r := Rank{Title: Ranks[cur].Title, Index: cur}
	if cur+1 < len(Ranks) {
		r.NextTitle = Ranks[cur+1].Title
		r.NextXP = Ranks[cur+1].MinXP
	} else {
		r.NextTitle = MaxLevelTitle
		r.NextXP = MaxLevelXP
		r.MaxLevel = true
	}
	return r
}

// RankIndex returns the ladder position of a title, or -1 when unknown.
func RankIndex(title string) int {
	for i := range Ranks {
		if Ranks[i].Title == title {
			return i
		}
	}
	return -1
}

// LevelForXP is the coarse display level: one level per 1000 XP.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/1000 + 1
}
