// Package funddata generates the synthetic fact rows used by the ETL demo.
package funddata

import (
	"fmt"
	"math/rand"

	"github.com/ManivannanSenthilrajan/issueboard/internal/pivot"
)

var (
	Funds   = []string{"Fund_A", "Fund_B", "Fund_C"}
	Metrics = []string{"Cost Leverage", "Par Value", "Watch List"}
	Columns = []string{"Public Loan", "Price", "Private Loan"}
)

type Fact struct {
	Fund    string `json:"fund"`
	Metric  string `json:"metric"`
	Column  string `json:"column"`
	Quarter string `json:"quarter"`
	Value   string `json:"value"`
}

// Generate returns one fact per fund x metric x column combination. Numeric
// values are uniform in [0,100) rounded to 2dp; Watch List is Yes/No.
func Generate(quarter string, rnd *rand.Rand) []Fact {
	out := make([]Fact, 0, len(Funds)*len(Metrics)*len(Columns))
	for _, fund := range Funds {
		for _, metric := range Metrics {
			for _, col := range Columns {
				v := fmt.Sprintf("%.2f", rnd.Float64()*100)
				if metric == "Watch List" {
					v = "No"
					if rnd.Intn(2) == 1 { v = "Yes" }
				}
				out = append(out, Fact{Fund: fund, Metric: metric, Column: col, Quarter: quarter, Value: v})
			}
		}
	}
	return out
}

// ToPivot flattens facts into pivot input, keying rows by fund and metric.
func ToPivot(facts []Fact) []pivot.Fact {
	out := make([]pivot.Fact, 0, len(facts))
	for _, f := range facts {
		out = append(out, pivot.Fact{Row: f.Fund + " / " + f.Metric, Col: f.Column, Value: f.Value})
	}
	return out
}
