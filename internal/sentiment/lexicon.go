package sentiment

// maxValence is the normalisation ceiling for a single token.
const maxValence = 5.0

// negators invert the valence of the token that follows them.
var negators = map[string]struct{}{
	"not":     {},
	"no":      {},
	"never":   {},
	"nothing": {},
	"hardly":  {},
	"isn't":   {},
	"wasn't":  {},
	"don't":   {},
	"didn't":  {},
	"doesn't": {},
	"can't":   {},
	"cannot":  {},
	"won't":   {},
}

// lexicon maps tokens to valences in [-5, 5]. The word list follows the
// AFINN convention: everyday evaluative vocabulary with hand-assigned
// integer strengths.
var lexicon = map[string]float64{
	// strongly positive
	"amazing":     4,
	"awesome":     4,
	"excellent":   4,
	"fantastic":   4,
	"wonderful":   4,
	"brilliant":   4,
	"outstanding": 4,
	"superb":      4,
	"thrilled":    4,
	"ecstatic":    5,
	"overjoyed":   5,
	"perfect":     4,
	"incredible":  4,
	"delighted":   4,
	"blissful":    4,

	// positive
	"love":      3,
	"loved":     3,
	"loving":    3,
	"great":     3,
	"happy":     3,
	"happier":   3,
	"happiest":  3,
	"joy":       3,
	"joyful":    3,
	"beautiful": 3,
	"best":      3,
	"excited":   3,
	"exciting":  3,
	"grateful":  3,
	"thankful":  3,
	"proud":     3,
	"success":   3,
	"succeeded": 3,
	"win":       3,
	"won":       3,
	"cheerful":  3,
	"laughed":   3,
	"laughing":  3,
	"fun":       3,

	// mildly positive
	"good":        2,
	"better":      2,
	"nice":        2,
	"enjoy":       2,
	"enjoyed":     2,
	"glad":        2,
	"pleased":     2,
	"pleasant":    2,
	"calm":        2,
	"relaxed":     2,
	"relaxing":    2,
	"peaceful":    2,
	"comfortable": 2,
	"satisfied":   2,
	"hope":        2,
	"hopeful":     2,
	"like":        2,
	"liked":       2,
	"smile":       2,
	"smiled":      2,
	"productive":  2,
	"refreshed":   2,
	"warm":        2,
	"friendly":    2,
	"interesting": 2,
	"progress":    2,
	"improved":    2,
	"improving":   2,
	"fine":        1,
	"okay":        1,
	"ok":          1,

	// mildly negative
	"tired":         -2,
	"tiring":        -2,
	"bored":         -2,
	"boring":        -2,
	"annoyed":       -2,
	"annoying":      -2,
	"worried":       -2,
	"worry":         -2,
	"stress":        -2,
	"stressed":      -2,
	"stressful":     -2,
	"bad":           -2,
	"worse":         -2,
	"difficult":     -2,
	"hard":          -2,
	"problem":       -2,
	"problems":      -2,
	"struggle":      -2,
	"struggled":     -2,
	"struggling":    -2,
	"slow":          -1,
	"meh":           -1,
	"disappointing": -2,
	"disappointed":  -2,
	"confused":      -2,
	"confusing":     -2,
	"lonely":        -2,
	"frustrating":   -2,
	"frustrated":    -2,
	"upset":         -2,
	"unhappy":       -2,

	// negative
	"sad":      -3,
	"sadness":  -3,
	"angry":    -3,
	"anger":    -3,
	"hate":     -3,
	"hated":    -3,
	"terrible": -3,
	"awful":    -3,
	"horrible": -3,
	"worst":    -3,
	"fail":     -3,
	"failed":   -3,
	"failure":  -3,
	"cry":      -3,
	"cried":    -3,
	"crying":   -3,
	"sick":     -3,
	"pain":     -3,
	"painful":  -3,
	"hurt":     -3,
	"scared":   -3,
	"afraid":   -3,
	"fear":     -3,
	"anxious":  -3,
	"anxiety":  -3,
	"lost":     -3,
	"broke":    -3,
	"broken":   -3,
	"exhausted": -3,

	// strongly negative
	"depressed":  -4,
	"depression": -4,
	"miserable":  -4,
	"hopeless":   -4,
	"devastated": -4,
	"grief":      -4,
	"despair":    -4,
	"nightmare":  -4,
	"furious":    -4,
	"disgusting": -4,
	"unbearable": -4,
}
