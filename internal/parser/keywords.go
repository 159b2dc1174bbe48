package parser

// classifyOrder is the tie-break priority for keyword classification. When
// two types score the same nonzero hit count, the earliest entry wins. This
// ordering is deliberate policy, not an artifact of map iteration.
var classifyOrder = []ActivityType{
	TypeWork,
	TypeExercise,
	TypeMeal,
	TypeStudy,
	TypeSocial,
	TypeTravel,
}

// keywordTable maps each non-OTHER type to its trigger words. The sets are
// disjoint: a word triggers exactly one type. Matching is whole-word and
// case-insensitive over the normalized text.
var keywordTable = map[ActivityType][]string{
	TypeWork: {
		"work", "working", "meeting", "conference", "office", "project",
		"coding", "development", "standup", "task",
	},
	TypeExercise: {
		"exercise", "workout", "gym", "run", "running", "jog", "jogging",
		"walk", "walking", "bike", "cycling", "swim", "swimming", "yoga",
		"fitness",
	},
	TypeMeal: {
		"meal", "breakfast", "lunch", "dinner", "eat", "eating", "food",
		"restaurant", "cooking", "snack",
	},
	TypeStudy: {
		"study", "studying", "reading", "research", "learning", "course",
		"lecture", "homework", "assignment",
	},
	TypeSocial: {
		"social", "friends", "family", "party", "hangout", "coffee",
		"drinks", "date", "gathering",
	},
	TypeTravel: {
		"travel", "drive", "driving", "commute", "flight", "train", "bus",
		"trip", "journey",
	},
}

// tagByName resolves an explicit leading type tag. All seven enum names are
// valid tags, including "other".
var tagByName = map[string]ActivityType{
	"work":     TypeWork,
	"exercise": TypeExercise,
	"meal":     TypeMeal,
	"study":    TypeStudy,
	"social":   TypeSocial,
	"travel":   TypeTravel,
	"other":    TypeOther,
}
