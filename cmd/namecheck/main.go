// namecheck prověří zadané názvy firem proti ARES z příkazové řádky.
// Názvy se čtou z argumentů, nebo po řádcích ze stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/tonnybx78/cz-name-checker/checker"
	"github.com/tonnybx78/cz-name-checker/export"
	"github.com/tonnybx78/cz-name-checker/registry"
	"github.com/tonnybx78/cz-name-checker/server"
)

func main() {
	baseURL := flag.String("base-url", "", "endpoint ARES (výchozí veřejné API)")
	limit := flag.Int("limit", 60, "počet záznamů tahaných z ARES na dotaz")
	high := flag.Float64("high", 85, "horní práh podobnosti")
	medium := flag.Float64("medium", 70, "střední práh podobnosti")
	workers := flag.Int("workers", 4, "počet souběžných kontrol")
	output := flag.String("o", "", "soubor pro export výsledků (.json, .csv nebo .xlsx)")
	logLevel := flag.String("log-level", "warn", "úroveň logování")
	flag.Parse()

	names := flag.Args()
	if len(names) == 0 {
		names = readLines(os.Stdin)
	}
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "Zadej aspoň jeden název jako argument nebo na stdin.")
		os.Exit(2)
	}

	logger := server.NewLogger(*logLevel)
	client := registry.NewClient(*baseURL, logger)

	chk, err := checker.New(client, nil, checker.Options{
		Thresholds: checker.Thresholds{High: *high, Medium: *medium},
		FetchLimit: *limit,
		Workers:    *workers,
	}, logger)
	if err != nil {
		log.Fatalf("Chyba konfigurace: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results := chk.CheckAll(ctx, names)
	printTable(results)

	if *output != "" {
		if err := export.WriteFile(*output, results); err != nil {
			log.Fatalf("Chyba exportu: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Výsledky uloženy do %s\n", *output)
	}
}

func readLines(f *os.File) []string {
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func printTable(results []checker.Result) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NÁZEV\tVÝSLEDEK\tSKÓRE\tNEJBLIŽŠÍ SHODA")
	for _, r := range results {
		note := r.MatchedName
		if len(r.Warnings) > 0 {
			note += " (!)"
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\n", r.Candidate, r.Label, r.Score, note)
	}
	w.Flush()
}
