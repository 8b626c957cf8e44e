package muscle

import "strings"

// aliases lists free-text synonyms for each canonical muscle. Keys of the lookup index are
// lowercased; matching never goes beyond trim + lowercase.
var aliases = map[ID][]string{
	Trapezius:     {"traps", "trap", "trapezius muscle", "upper traps"},
	UpperBack:     {"upper back", "rhomboids", "rhomboid", "lats", "latissimus dorsi", "latissimus", "teres major"},
	LowerBack:     {"lower back", "erector spinae", "erectors", "spinal erectors", "lumbar"},
	Chest:         {"pecs", "pectorals", "pectoralis major", "pectoralis", "pec"},
	Biceps:        {"bicep", "biceps brachii", "brachialis"},
	Triceps:       {"tricep", "triceps brachii"},
	Forearm:       {"forearms", "brachioradialis", "wrist flexors", "wrist extensors", "grip"},
	BackDeltoids:  {"rear delts", "rear deltoids", "rear delt", "posterior deltoid", "back delts"},
	FrontDeltoids: {"front delts", "front deltoids", "front delt", "anterior deltoid", "shoulders", "deltoids", "delts"},
	Abs:           {"abdominals", "rectus abdominis", "core", "six pack"},
	Obliques:      {"oblique", "external obliques", "internal obliques", "side abs"},
	Adductor:      {"adductors", "inner thigh", "inner thighs", "hip adductors"},
	Abductors:     {"abductor", "outer thigh", "outer thighs", "hip abductors", "gluteus medius"},
	Hamstring:     {"hamstrings", "hams", "biceps femoris"},
	Quadriceps:    {"quads", "quad", "quadricep", "thighs"},
	Calves:        {"calf", "gastrocnemius", "gastrocs"},
	Gluteal:       {"glutes", "glute", "gluteus maximus", "buttocks"},
	Head:          {"face", "skull"},
	Neck:          {"neck muscles", "sternocleidomastoid"},
	Knees:         {"knee"},
	LeftSoleus:    {"left soleus", "soleus left"},
	RightSoleus:   {"right soleus", "soleus right"},
}

var aliasIndex map[string]ID

func init() {
	buildAliasIndex()
}

func buildAliasIndex() {
	aliasIndex = make(map[string]ID)
	for id, names := range aliases {
		for _, name := range names {
			aliasIndex[strings.ToLower(name)] = id
		}
	}
}

// Normalize resolves a reference to its canonical muscle. Unknown or empty input
// reports false and is meant to be skipped silently.
func Normalize(r Ref) (ID, bool) {
	if r.id.Valid() {
		return r.id, true
	}
	if r.id != "" {
		return NormalizeString(string(r.id))
	}
	return NormalizeString(r.text)
}

// NormalizeString resolves free text such as "Erector Spinae" or " CHEST " to a muscle
func NormalizeString(s string) (ID, bool) {
	if id := ID(s); id.Valid() {
		return id, true
	}

	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", false
	}

	if id := ID(key); id.Valid() {
		return id, true
	}

	id, ok := aliasIndex[key]
	return id, ok
}
