// Package diagram emits the static Graphviz DOT diagrams for the ETL demo.
// Hand-written DOT keeps the output byte-stable; no graph library is needed
// for two fixed diagrams.
package diagram

import (
	"fmt"
	"strings"
)

// Flow renders the end-to-end ETL process diagram.
func Flow() string {
	b := &strings.Builder{}
	b.WriteString("digraph flow {\n")
	b.WriteString("  rankdir=LR;\n  bgcolor=\"white\";\n  nodesep=1.0;\n  splines=ortho;\n")
	node(b, "Landing", "Step 1:\\nLanding Zone\\n29 Excel Files", "folder", "#f2f2f2")
	node(b, "ETL", "Step 2:\\nETL Pipeline\\n(Unpivot + Clean + Append)", "box", "#ffe6cc")
	node(b, "Master", "Step 3:\\nMaster File\\n(consolidated CSV in Reporting Zone)", "cylinder", "#d9ead3")
	node(b, "Model", "Step 4:\\nStar Schema\\nFund_Facts + Dimensions", "box3d", "#cfe2f3")
	b.WriteString("  Landing -> ETL;\n  ETL -> Master;\n  Master -> Model;\n")
	b.WriteString("}\n")
	return b.String()
}

// StarSchema renders the fact/dimension model diagram.
func StarSchema() string {
	b := &strings.Builder{}
	b.WriteString("digraph schema {\n")
	b.WriteString("  rankdir=TB;\n  bgcolor=\"white\";\n  nodesep=0.6;\n")
	node(b, "Facts", "Fund_Facts\\n(Fund_ID, Metric_ID, Column_ID, Date_ID, Value)", "box", "lightblue")
	node(b, "Fund", "Fund Dimension\\n(Fund_ID, Fund_Name)", "box", "#f2f2f2")
	node(b, "Metric", "Metric Dimension\\n(Metric_ID, Metric_Name)", "box", "#f2f2f2")
	node(b, "Column", "Column Dimension\\n(Column_ID, Column_Name)", "box", "#f2f2f2")
	node(b, "Date", "Date Dimension\\n(Date_ID, Quarter, Year)", "box", "#f2f2f2")
	for _, dim := range []string{"Fund", "Metric", "Column", "Date"} {
		fmt.Fprintf(b, "  Facts -> %s;\n", dim)
	}
	b.WriteString("}\n")
	return b.String()
}

func node(b *strings.Builder, id, label, shape, fill string) {
	fmt.Fprintf(b, "  %s [label=\"%s\" shape=%s style=filled fillcolor=\"%s\"];\n", id, label, shape, fill)
}
