package main

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	ftm "github.com/arp242/followthemoney"
	"github.com/arp242/followthemoney/graph"
)

var exportGraphCmd = &cobra.Command{
	Use:   "export-graph entities.json",
	Short: "Export entities as a property graph",
	Long:  "Read a file of JSON-lines entities and print the derived property graph as JSON nodes and edges.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel()
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		g := graph.New()
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
		for scanner.Scan() {
			if len(scanner.Bytes()) == 0 {
				continue
			}
			entity, err := ftm.FromJSON(m, scanner.Bytes())
			if err != nil {
				return err
			}
			if err := g.AddEntity(entity); err != nil {
				return err
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		type nodeOut struct {
			ID      string `json:"id"`
			Caption string `json:"caption"`
			Schema  string `json:"schema"`
		}
		type edgeOut struct {
			ID       string `json:"id"`
			Source   string `json:"source"`
			Target   string `json:"target"`
			Type     string `json:"type"`
			Label    string `json:"label,omitempty"`
			Caption  string `json:"caption,omitempty"`
			Directed bool   `json:"directed"`
		}
		out := struct {
			Nodes []nodeOut `json:"nodes"`
			Edges []edgeOut `json:"edges"`
		}{}
		for _, node := range g.Nodes() {
			out.Nodes = append(out.Nodes, nodeOut{ID: node.ID, Caption: node.Caption, Schema: node.Schema.Name})
		}
		for _, edge := range g.Edges() {
			out.Edges = append(out.Edges, edgeOut{
				ID:       edge.ID,
				Source:   edge.SourceID,
				Target:   edge.TargetID,
				Type:     edge.Type,
				Label:    edge.Label,
				Caption:  edge.Caption,
				Directed: edge.Directed,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}
