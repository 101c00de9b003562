package labels

// emotionMap collapses fine-grained manual emotion words into coarse emotions.
var emotionMap = map[string]string{
	"happy":     "joy",
	"excited":   "joy",
	"proud":     "joy",
	"grateful":  "joy",
	"relieved":  "joy",
	"motivated": "joy",
	"loved":     "joy",
	"satisfied": "joy",

	"sad":         "sadness",
	"lonely":      "sadness",
	"tired":       "sadness",
	"ashamed":     "sadness",
	"embarrassed": "sadness",
	"bored":       "sadness",
	"guilty":      "sadness",

	"angry":      "anger",
	"frustrated": "anger",

	"afraid":   "fear",
	"anxious":  "fear",
	"stressed": "fear",

	"surprised": "surprise",
	"disgusted": "disgust",
	"neutral":   "neutral",
	"mixed":     "mixed",
}

// canonicalEmotionNames is scanned in order; the first substring hit wins.
var canonicalEmotionNames = []string{
	"Joy", "Sadness", "Anger", "Fear", "Surprise", "Disgust", "Neutral", "Mixed",
}

// domainClusters lists every canonical domain with its surface forms.
// The canonical label itself is always an alias of the cluster.
var domainClusters = map[string][]string{
	"exercise/fitness":                   {"exercise", "fitness"},
	"family":                             {"family"},
	"friends":                            {"friends"},
	"relationships/marriage/partnership": {"relationships", "marriage", "partnership"},
	"love/romance":                       {"love", "romance"},
	"food/eating":                        {"food", "eating"},
	"sleep/rest":                         {"sleep", "rest"},
	"health/medical":                     {"health", "medical"},
	"work/career":                        {"work", "career"},
	"money/finances":                     {"money", "finances", "finance"},
	"school/learning":                    {"school", "learning"},
	"spirituality/religion":              {"spirituality", "religion"},
	"recreation/leisure":                 {"recreation", "leisure"},
	"travel/nature":                      {"travel", "nature"},
	"creativity/art":                     {"creativity", "art"},
	"community/society/politics":         {"community", "society", "politics"},
	"technology/media/internet":          {"technology", "media", "internet"},
	"self/growth/habits":                 {"self", "growth", "habits"},
}

var domainAlias = buildDomainAlias(domainClusters)

func buildDomainAlias(clusters map[string][]string) map[string]string {
	alias := make(map[string]string)
	for canon, forms := range clusters {
		alias[canon] = canon
		for _, f := range forms {
			alias[f] = canon
		}
	}
	return alias
}

// emotionAdjacency is stored directionally. Use EmotionsAdjacent to test it.
var emotionAdjacency = map[string][]string{
	"joy":      {"neutral"},
	"neutral":  {"joy", "sadness"},
	"sadness":  {"anger", "fear", "neutral"},
	"anger":    {"sadness"},
	"fear":     {"sadness"},
	"surprise": {},
	"disgust":  {"anger", "sadness"},
	"mixed":    {"joy", "sadness", "anger", "fear", "surprise", "disgust", "neutral"},
}

type domainPair struct {
	a, b string
}

// domainAdjacency holds one ordering per related pair.
var domainAdjacency = map[domainPair]struct{}{
	{"love/romance", "relationships/marriage/partnership"}: {},
	{"work/career", "money/finances"}:                      {},
	{"health/medical", "exercise/fitness"}:                 {},
	{"food/eating", "health/medical"}:                      {},
	{"family", "friends"}:                                  {},
	{"travel/nature", "recreation/leisure"}:                {},
	{"creativity/art", "recreation/leisure"}:               {},
	{"technology/media/internet", "recreation/leisure"}:    {},
	{"school/learning", "self/growth/habits"}:              {},
}

// CoarseEmotionSet is the closed set emotionMap collapses into.
var CoarseEmotionSet = []string{
	"joy", "sadness", "anger", "fear", "surprise", "disgust", "neutral", "mixed",
}

// CanonicalDomainLabels returns the canonical domain labels in sorted order.
func CanonicalDomainLabels() []string {
	out := make([]string, 0, len(domainClusters))
	for canon := range domainClusters {
		out = append(out, canon)
	}
	return sortedSet(out)
}
