package muscle

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ID is the canonical identifier for one anatomical muscle region
type ID string

const (
	Trapezius     ID = "trapezius"
	UpperBack     ID = "upper-back"
	LowerBack     ID = "lower-back"
	Chest         ID = "chest"
	Biceps        ID = "biceps"
	Triceps       ID = "triceps"
	Forearm       ID = "forearm"
	BackDeltoids  ID = "back-deltoids"
	FrontDeltoids ID = "front-deltoids"
	Abs           ID = "abs"
	Obliques      ID = "obliques"
	Adductor      ID = "adductor"
	Abductors     ID = "abductors"
	Hamstring     ID = "hamstring"
	Quadriceps    ID = "quadriceps"
	Calves        ID = "calves"
	Gluteal       ID = "gluteal"
	Head          ID = "head"
	Neck          ID = "neck"
	Knees         ID = "knees"
	LeftSoleus    ID = "left-soleus"
	RightSoleus   ID = "right-soleus"
)

// All lists every canonical muscle in declaration order
var All = []ID{
	Trapezius, UpperBack, LowerBack, Chest, Biceps, Triceps, Forearm,
	BackDeltoids, FrontDeltoids, Abs, Obliques, Adductor, Abductors,
	Hamstring, Quadriceps, Calves, Gluteal, Head, Neck, Knees,
	LeftSoleus, RightSoleus,
}

var known = func() map[ID]struct{} {
	m := make(map[ID]struct{}, len(All))
	for _, id := range All {
		m[id] = struct{}{}
	}
	return m
}()

// Valid reports whether id is one of the canonical muscles
func (id ID) Valid() bool {
	_, ok := known[id]
	return ok
}

func (id ID) String() string {
	return string(id)
}

// Label returns a human readable name, e.g. "Front Deltoids"
func (id ID) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(id), "-", " "))
}

// Ref is a muscle reference as supplied by callers: either a canonical ID or free text
// that still has to be resolved through Normalize.
type Ref struct {
	id   ID
	text string
}

// Canonical wraps a canonical ID
func Canonical(id ID) Ref {
	return Ref{id: id}
}

// Text wraps a free-text muscle name
func Text(s string) Ref {
	return Ref{text: s}
}

// Refs converts plain strings into text references
func Refs(values ...string) []Ref {
	refs := make([]Ref, 0, len(values))
	for _, v := range values {
		refs = append(refs, Text(v))
	}
	return refs
}

// IDs converts canonical IDs into references
func IDs(ids ...ID) []Ref {
	refs := make([]Ref, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, Canonical(id))
	}
	return refs
}

func (r Ref) String() string {
	if r.id != "" {
		return string(r.id)
	}
	return r.text
}

// MarshalText implements encoding.TextMarshaler
func (r Ref) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Data files always carry text;
// resolution happens later in Normalize.
func (r *Ref) UnmarshalText(b []byte) error {
	*r = Text(string(b))
	return nil
}

// Exercise describes one exercise and the muscles it engages
type Exercise struct {
	Name      string `json:"name" yaml:"name"`
	Muscles   []Ref  `json:"muscles" yaml:"muscles"`
	Frequency int    `json:"frequency,omitempty" yaml:"frequency,omitempty"`
}

// Weight returns the amount this exercise adds to each of its muscles
func (e Exercise) Weight() int {
	if e.Frequency <= 0 {
		return 1
	}
	return e.Frequency
}

// Stat is the aggregated exercise list and total frequency for one muscle
type Stat struct {
	Exercises []string `json:"exercises"`
	Frequency int      `json:"frequency"`
}

// Stats holds a Stat for every canonical muscle
type Stats map[ID]Stat

// ClickEvent is delivered to click callbacks
type ClickEvent struct {
	Muscle ID   `json:"muscle"`
	Data   Stat `json:"data"`
}

// String formats the event as a one-line log entry, e.g. CHEST (2) -> ["Bench Press","Dips"]
func (e ClickEvent) String() string {
	exercises := e.Data.Exercises
	if exercises == nil {
		exercises = []string{}
	}
	names, _ := json.Marshal(exercises)
	return fmt.Sprintf("%s (%d) -> %s", strings.ToUpper(string(e.Muscle)), e.Data.Frequency, names)
}
