package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"kartesia/internal/storage"
	"kartesia/pkg/kartesia"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out *os.File) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "new":
		return runNew(ctx, args[1:], out)
	case "render":
		return runRender(ctx, args[1:], out)
	case "eval":
		return runEval(ctx, args[1:], out)
	case "mutate":
		return runMutate(ctx, args[1:], out)
	case "list":
		return runList(ctx, args[1:], out)
	case "delete":
		return runDelete(ctx, args[1:], out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\n\nusage: kartesiactl <new|render|eval|mutate|list|delete> [flags]", msg)
}

func printUsage(out *os.File) {
	fmt.Fprintln(out, "kartesiactl manages archived CGP expressions")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "commands:")
	fmt.Fprintln(out, "  new      create a random expression from a topology (flags or -config file)")
	fmt.Fprintln(out, "  render   print the human-readable dump of an expression")
	fmt.Fprintln(out, "  eval     evaluate an expression on one input point")
	fmt.Fprintln(out, "  mutate   apply a mutation operator to an expression")
	fmt.Fprintln(out, "  list     list archived expressions")
	fmt.Fprintln(out, "  delete   remove an archived expression")
}

func storeFlags(fs *flag.FlagSet) (store *string, dbPath *string) {
	store = fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath = fs.String("db", "kartesia.db", "sqlite database path")
	return store, dbPath
}

func newClient(ctx context.Context, storeKind, dbPath string) (*kartesia.Client, error) {
	return kartesia.New(ctx, kartesia.Options{StoreKind: storeKind, DBPath: dbPath})
}

func runNew(ctx context.Context, args []string, out *os.File) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	store, dbPath := storeFlags(fs)
	configPath := fs.String("config", "", "JSON config file with the create request")
	inputs := fs.Int("inputs", 1, "number of inputs")
	outputs := fs.Int("outputs", 1, "number of outputs")
	rows := fs.Int("rows", 1, "number of rows")
	cols := fs.Int("cols", 10, "number of columns")
	levelsBack := fs.Int("levels-back", 10, "levels-back window")
	arity := fs.Int("arity", 2, "basis function arity")
	kernels := fs.String("kernels", "sum,diff,mul,div", "comma-separated kernel names")
	seed := fs.Int64("seed", 1, "random seed")
	notes := fs.String("notes", "", "free-form notes stored with the expression")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var req kartesia.CreateRequest
	if *configPath != "" {
		loaded, err := loadCreateRequestFromConfig(*configPath)
		if err != nil {
			return err
		}
		req = loaded
	} else {
		req = kartesia.CreateRequest{
			Topology: topologySpec(*inputs, *outputs, *rows, *cols, *levelsBack, *arity),
			Kernels:  splitNames(*kernels),
			Seed:     *seed,
			Notes:    *notes,
		}
	}

	client, err := newClient(ctx, *store, *dbPath)
	if err != nil {
		return err
	}
	defer client.Close()

	summary, err := client.Create(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(out, summary)
}

func runRender(ctx context.Context, args []string, out *os.File) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	store, dbPath := storeFlags(fs)
	id := fs.String("id", "", "expression id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("render requires -id")
	}

	client, err := newClient(ctx, *store, *dbPath)
	if err != nil {
		return err
	}
	defer client.Close()

	dump, err := client.Render(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Fprint(out, dump)
	return nil
}

func runEval(ctx context.Context, args []string, out *os.File) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	store, dbPath := storeFlags(fs)
	id := fs.String("id", "", "expression id")
	inputs := fs.String("inputs", "", "comma-separated input values")
	symbolic := fs.Bool("symbolic", false, "also print the symbolic form of each output")
	persist := fs.Bool("persist", false, "archive the evaluation result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("eval requires -id")
	}
	point, err := parseFloats(*inputs)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, *store, *dbPath)
	if err != nil {
		return err
	}
	defer client.Close()

	summary, err := client.Evaluate(ctx, kartesia.EvalRequest{
		ID:       *id,
		Inputs:   point,
		Symbolic: *symbolic,
		Persist:  *persist,
	})
	if err != nil {
		return err
	}
	return printJSON(out, summary)
}

func runMutate(ctx context.Context, args []string, out *os.File) error {
	fs := flag.NewFlagSet("mutate", flag.ContinueOnError)
	store, dbPath := storeFlags(fs)
	id := fs.String("id", "", "expression id")
	operator := fs.String("operator", "active", "point, random, active, active_function, active_connection or output")
	indexes := fs.String("indexes", "", "comma-separated gene indexes (point operator)")
	count := fs.Int("count", 1, "number of genes to mutate (random and active operators)")
	seed := fs.Int64("seed", 1, "random seed for the mutation stream")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("mutate requires -id")
	}
	idxs, err := parseInts(*indexes)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, *store, *dbPath)
	if err != nil {
		return err
	}
	defer client.Close()

	summary, err := client.Mutate(ctx, kartesia.MutateRequest{
		ID:       *id,
		Operator: *operator,
		Indexes:  idxs,
		Count:    *count,
		Seed:     *seed,
	})
	if err != nil {
		return err
	}
	return printJSON(out, summary)
}

func runList(ctx context.Context, args []string, out *os.File) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	store, dbPath := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, *store, *dbPath)
	if err != nil {
		return err
	}
	defer client.Close()

	summaries, err := client.List(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, summaries)
}

func runDelete(ctx context.Context, args []string, out *os.File) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	store, dbPath := storeFlags(fs)
	id := fs.String("id", "", "expression id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("delete requires -id")
	}

	client, err := newClient(ctx, *store, *dbPath)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted %s\n", *id)
	return nil
}

func printJSON(out *os.File, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitNames(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseFloats(csv string) ([]float64, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad input value %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseInts(csv string) ([]int, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad gene index %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}
