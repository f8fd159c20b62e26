package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlow(t *testing.T) {
	dot := Flow()
	assert.True(t, strings.HasPrefix(dot, "digraph flow {"))
	for _, n := range []string{"Landing", "ETL", "Master", "Model"} {
		assert.Contains(t, dot, n+" [label=")
	}
	assert.Contains(t, dot, "Landing -> ETL;")
	assert.Contains(t, dot, "Master -> Model;")
	assert.Contains(t, dot, "rankdir=LR")
}

func TestStarSchema(t *testing.T) {
	dot := StarSchema()
	assert.Contains(t, dot, "Fund_Facts")
	for _, dim := range []string{"Fund", "Metric", "Column", "Date"} {
		assert.Contains(t, dot, "Facts -> "+dim+";")
	}
}

func TestOutputIsStable(t *testing.T) {
	assert.Equal(t, Flow(), Flow())
	assert.Equal(t, StarSchema(), StarSchema())
}
