package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/types"
)

type AgeSummary struct {
	Valid   int        `json:"valid"`
	Missing int        `json:"missing"`
	Mean    types.Stat `json:"mean"`
	Min     types.Stat `json:"min"`
	Max     types.Stat `json:"max"`
}

type Category struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Demographics is a descriptive profile of the respondents.
type Demographics struct {
	Respondents int        `json:"respondents"`
	Age         AgeSummary `json:"age"`
	Gender      []Category `json:"gender"`
	Field       []Category `json:"field_of_study"`
}

// Summarize profiles age, gender and field of study. Age is coerced to a
// number; anything unparseable counts as missing.
func Summarize(responses []types.Response, log *logger.Logger) Demographics {
	var (
		sum      float64
		lo, hi   = math.Inf(1), math.Inf(-1)
		age      AgeSummary
		byGender = map[string]int{}
		byField  = map[string]int{}
	)
	for _, r := range responses {
		if v, err := strconv.ParseFloat(strings.TrimSpace(r.Age), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			age.Valid++
			sum += v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		} else {
			age.Missing++
		}
		if g := strings.TrimSpace(r.Gender); g != "" {
			byGender[g]++
		}
		if f := strings.TrimSpace(r.Field); f != "" {
			byField[f]++
		}
	}
	if age.Valid > 0 {
		age.Mean = types.NewStat(sum / float64(age.Valid))
		age.Min = types.NewStat(lo)
		age.Max = types.NewStat(hi)
	}
	d := Demographics{
		Respondents: len(responses),
		Age:         age,
		Gender:      rank(byGender),
		Field:       rank(byField),
	}
	log.WithFields(map[string]interface{}{
		"respondents":  d.Respondents,
		"age_valid":    age.Valid,
		"age_mean":     age.Mean.OrZero(),
		"genders":      len(d.Gender),
		"study_fields": len(d.Field),
	}).Info("demographics summarized")
	return d
}

func rank(m map[string]int) []Category {
	out := make([]Category, 0, len(m))
	for k, v := range m {
		out = append(out, Category{Value: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
