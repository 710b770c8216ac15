package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	ftm "github.com/arp242/followthemoney"
)

var validateWorkers int

func init() {
	validateCmd.Flags().IntVar(&validateWorkers, "workers", runtime.GOMAXPROCS(0), "Number of concurrent validation workers")
}

var validateCmd = &cobra.Command{
	Use:   "validate entities.json",
	Short: "Validate entities against the model",
	Long: `Validate a file of JSON-lines entities ({"id": ..., "schema": ..., "properties": ...})
against the loaded model. Every invalid entity is reported with its full
per-property error mapping; the command fails when any entity is invalid.`,
	Args: cobra.ExactArgs(1),
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

		type failure struct {
			line int
			err  error
		}
		var (
			mu       sync.Mutex
			failures []failure
		)
		var eg errgroup.Group
		eg.SetLimit(validateWorkers)

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
		lineno := 0
		for scanner.Scan() {
			lineno++
			if len(scanner.Bytes()) == 0 {
				continue
			}
			line := lineno
			buf := append([]byte(nil), scanner.Bytes()...)
			eg.Go(func() error {
				entity, err := ftm.FromJSON(m, buf)
				if err == nil {
					err = entity.Validate()
				}
				if err != nil {
					mu.Lock()
					failures = append(failures, failure{line: line, err: err})
					mu.Unlock()
				}
				return nil
			})
		}
		if err := scanner.Err(); err != nil {
			return err
		}
		if err := eg.Wait(); err != nil {
			return err
		}

		sort.Slice(failures, func(i, j int) bool { return failures[i].line < failures[j].line })
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", f.line, f.err)
		}
		if len(failures) > 0 {
			return fmt.Errorf("%d of %d entities failed validation", len(failures), lineno)
		}
		fmt.Printf("%d entities are valid\n", lineno)
		return nil
	},
}
