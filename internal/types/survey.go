// internal/types/survey.go
package types

import "strconv"

// --------------------------------------------
// Rating scale
// --------------------------------------------
const (
	MinScore = 1
	MaxScore = 5
)

// --------------------------------------------
// Scenario column layout of the survey export
// --------------------------------------------
type Range struct {
	Name  string `json:"name"`
	Start int    `json:"start"` // inclusive
	End   int    `json:"end"`   // exclusive
}

func (r Range) Len() int { return r.End - r.Start }

var (
	ScenarioA = Range{Name: "Scenario A", Start: 4, End: 19}
	ScenarioB = Range{Name: "Scenario B", Start: 19, End: 34}
)

// MinColumns is the narrowest header that still holds both scenarios.
const MinColumns = 34

// --------------------------------------------
// Questions, same order in both scenarios
// --------------------------------------------
type Question struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// Short returns the "Q1".."Q15" tick label.
func (q Question) Short() string {
	return "Q" + strconv.Itoa(q.Index+1)
}

var QuestionLabels = []string{
	"Fair treatment",
	"Fair criteria",
	"Chance to be heard",
	"Similar cases",
	"Trust in practice",
	"Care about users",
	"Comfort with decisions",
	"Problems handled",
	"Know responsible",
	"Clear challenge",
	"Human oversight",
	"Follow-up",
	"End-users involved",
	"Appeal process",
	"Quality control",
}

func Questions() []Question {
	out := make([]Question, len(QuestionLabels))
	for i, l := range QuestionLabels {
		out[i] = Question{Index: i, Label: l}
	}
	return out
}

// --------------------------------------------
// Open-ended answers. Headers must match exactly,
// surrounding whitespace included.
// --------------------------------------------
const (
	FairnessTextHeader = "  What made this system feel more or less fair or trustworthy? | Бұл жүйенің әділ немесе сенімді болуына не әсер етті? | Что сделало эту систему более или менее справедливой и достоверной?  "
	FeatureTextHeader  = "   Which feature most improves accountability? | Қай элемент жүйенің жауапкершілігін арттырады? | Какой элемент лучше всего повышает ответственность системы?  "
)
