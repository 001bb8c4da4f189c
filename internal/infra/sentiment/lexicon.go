package sentiment

// lexicon is a compact AFINN-style polarity word list tuned for news
// vocabulary. Scores range from -5 (strongly negative) to +5 (strongly
// positive); words absent from the list contribute nothing.
var lexicon = map[string]int{
	// positive
	"achieve":      2,
	"advance":      2,
	"agree":        1,
	"agreement":    1,
	"amazing":      4,
	"approval":     2,
	"approve":      2,
	"awesome":      4,
	"benefit":      2,
	"benefits":     2,
	"best":         3,
	"better":       2,
	"boost":        2,
	"breakthrough": 3,
	"calm":         2,
	"celebrate":    3,
	"confident":    2,
	"excellent":    3,
	"exciting":     3,
	"fantastic":    4,
	"gain":         2,
	"gains":        2,
	"glad":         3,
	"good":         3,
	"great":        3,
	"growth":       2,
	"happy":        3,
	"healthy":      2,
	"hope":         2,
	"hopeful":      2,
	"improve":      2,
	"improved":     2,
	"improvement":  2,
	"innovative":   2,
	"love":         3,
	"opportunity":  2,
	"optimistic":   2,
	"outstanding":  5,
	"peace":        2,
	"popular":      3,
	"profit":       2,
	"profits":      2,
	"progress":     2,
	"promising":    2,
	"prosperity":   3,
	"recover":      2,
	"recovery":     2,
	"relief":       2,
	"resolve":      2,
	"safe":         1,
	"secure":       2,
	"strong":       2,
	"stronger":     2,
	"succeed":      3,
	"success":      2,
	"successful":   3,
	"superb":       5,
	"support":      2,
	"thrive":       3,
	"triumph":      4,
	"win":          4,
	"winner":       4,
	"winning":      4,
	"wins":         4,
	"won":          3,
	"wonderful":    4,

	// negative
	"abandon":    -2,
	"abuse":      -3,
	"accident":   -2,
	"afraid":     -2,
	"alarming":   -2,
	"angry":      -3,
	"attack":     -1,
	"attacks":    -1,
	"awful":      -3,
	"bad":        -3,
	"bankrupt":   -3,
	"collapse":   -2,
	"concern":    -2,
	"concerns":   -2,
	"conflict":   -2,
	"corrupt":    -3,
	"corruption": -3,
	"crash":      -2,
	"crisis":     -3,
	"damage":     -3,
	"danger":     -2,
	"dangerous":  -2,
	"dead":       -3,
	"decline":    -2,
	"destroy":    -3,
	"destroyed":  -3,
	"die":        -3,
	"died":       -3,
	"disaster":   -2,
	"dispute":    -2,
	"fail":       -2,
	"failed":     -2,
	"failure":    -2,
	"fear":       -2,
	"fears":      -2,
	"fraud":      -4,
	"hate":       -3,
	"horrible":   -3,
	"hurt":       -2,
	"kill":       -3,
	"killed":     -3,
	"lawsuit":    -2,
	"lose":       -3,
	"loses":      -3,
	"loss":       -3,
	"losses":     -3,
	"lost":       -3,
	"panic":      -3,
	"poor":       -2,
	"problem":    -2,
	"problems":   -2,
	"recession":  -2,
	"risk":       -2,
	"risks":      -2,
	"scandal":    -3,
	"scam":       -2,
	"shortage":   -2,
	"terrible":   -3,
	"threat":     -2,
	"threats":    -2,
	"violence":   -3,
	"war":        -2,
	"warning":    -2,
	"weak":       -2,
	"worst":      -3,
	"wrong":      -2,
}
