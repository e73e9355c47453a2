package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/AI-call-center/modern-dashboard/internal/presentation/graph"
	"github.com/AI-call-center/modern-dashboard/pkg/flow"
	"github.com/AI-call-center/modern-dashboard/pkg/templates"
)

// ListFlows prints one line per flow: ID, title and step IDs.
func ListFlows(w io.Writer, catalog *flow.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTEPS")
	for _, def := range catalog.List() {
		ids := make([]string, len(def.Steps))
		for i, s := range def.Steps {
			ids[i] = s.ID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", def.ID, def.Title, strings.Join(ids, " → "))
	}
	return tw.Flush()
}

// ValidateFile parses a flow file and checks it for consistency.
func ValidateFile(path string) (*flow.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := flow.Parse(data)
	if err != nil {
		return nil, err
	}
	if _, err := def.Registry(); err != nil {
		return nil, err
	}
	return def, nil
}

// Graph writes the Mermaid diagram of a flow.
func Graph(w io.Writer, def *flow.Definition) error {
	_, err := io.WriteString(w, graph.GenerateMermaid(def, nil))
	return err
}

// SearchTemplates prints the templates matching q, grouped by kind.
func SearchTemplates(w io.Writer, catalog *templates.Catalog, q templates.Query) (int, error) {
	found := catalog.Search(q)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tTITLE\tTAGS")
	for _, t := range found {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Kind, t.Title, strings.Join(t.Tags, ","))
	}
	return len(found), tw.Flush()
}
