// Command normalize maps a raw workflow payload to the canonical analytics JSON.
//
//	normalize -username hespress payload.json
//	curl -s $N8N_WEBHOOK_URL ... | normalize -username hespress
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/normalizer"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/policy"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	username := fs.String("username", "", "username the payload was fetched for")
	verbose := fs.Bool("v", false, "log detected shape and counts to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "usage: normalize -username NAME [FILE]")
		return 2
	}

	data, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "normalize: %v\n", err)
		return 1
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	n := normalizer.New(normalizer.WithLogger(logger))
	result, err := n.TransformJSON(policy.CleanUsername(*username), data)
	if err != nil {
		fmt.Fprintf(stderr, "normalize: %v\n", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(stderr, "normalize: writing output: %v\n", err)
		return 1
	}
	return 0
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
