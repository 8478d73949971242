package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"schema-mapper/internal/catalog"
	"schema-mapper/internal/config"
	"schema-mapper/internal/csvdata"
	"schema-mapper/internal/executor"
	"schema-mapper/internal/llm"
	"schema-mapper/internal/logger"
	"schema-mapper/internal/mapping"
	"schema-mapper/internal/parser"
	"schema-mapper/internal/reporter"
)

// listFlag collects a flag that may be repeated or comma-separated
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(value string) error {
	*l = append(*l, splitList(value)...)
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  schema-mapper [-config path] infer -schema <url|file> [-schema ...] [-models a,b | -db-type ...] [-llm]")
	fmt.Println("  schema-mapper [-config path] crud -models a,b [-base /api]")
	fmt.Println("  schema-mapper [-config path] csv -file data.csv")
}

// errUsage is returned after the usage text has been printed
var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			log.Print(err)
		}
		os.Exit(1)
	}
}

// run executes the selected subcommand. Deferred cleanup runs before main exits.
func run(args []string) error {
	fs := flag.NewFlagSet("schema-mapper", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath, "Path to configuration file")
	fs.Usage = usage
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if fs.NArg() < 1 {
		usage()
		return errUsage
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	appLogger, err := logger.NewLogger(cfg.Logging.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()
	appLogger.SetDetailed(cfg.Reporting.Detailed)

	// Initialize reporter
	rep := reporter.NewReporter(reporter.ReportingConfig{
		Format:    cfg.Reporting.Format,
		OutputDir: cfg.Reporting.OutputDir,
		Detailed:  cfg.Reporting.Detailed,
	})

	args = fs.Args()
	switch args[0] {
	case "infer":
		err = runInfer(cfg, appLogger, rep, args[1:])
	case "crud":
		err = runCRUD(cfg, rep, args[1:])
	case "csv":
		err = runCSV(cfg, appLogger, rep, args[1:])
	default:
		usage()
		return errUsage
	}
	if err != nil {
		appLogger.Printf("Error: %v\n", err)
	}
	return err
}

func runInfer(cfg *config.Config, appLogger *logger.Logger, rep *reporter.Reporter, args []string) error {
	inferCmd := flag.NewFlagSet("infer", flag.ContinueOnError)

	var schemas, models listFlag
	inferCmd.Var(&schemas, "schema", "Schema URL or file (repeatable, comma-separated)")
	inferCmd.Var(&models, "models", "Available model names (comma-separated)")
	dbType := inferCmd.String("db-type", cfg.Database.Type, "Database type (postgres|mysql|sqlserver|sqlite)")
	dbHost := inferCmd.String("db-host", cfg.Database.Host, "Database host")
	dbPort := inferCmd.Int("db-port", cfg.Database.Port, "Database port")
	dbName := inferCmd.String("db-name", cfg.Database.Name, "Database name, or file for sqlite")
	dbUser := inferCmd.String("db-user", cfg.Database.User, "Database user")
	dbPassword := inferCmd.String("db-password", cfg.Database.Password, "Database password")
	useLLM := inferCmd.Bool("llm", cfg.LLM.Enabled, "Ask the LLM to suggest models for unmapped endpoints")

	// Parse flags
	if err := inferCmd.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if len(schemas) == 0 {
		fmt.Println("Error: at least one -schema is required")
		inferCmd.Usage()
		return errUsage
	}

	ctx := context.Background()

	// Models come from the flag, or from the database tables
	if len(models) == 0 && *dbType != "" {
		cat, err := catalog.Open(catalog.DBConfig{
			Type:     *dbType,
			Host:     *dbHost,
			Port:     *dbPort,
			Database: *dbName,
			User:     *dbUser,
			Password: *dbPassword,
		})
		if err != nil {
			return err
		}
		defer cat.Close()

		listCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Runner.Timeout)*time.Second)
		models, err = cat.ListModels(listCtx)
		cancel()
		if err != nil {
			return err
		}
	}
	fmt.Printf("Using %d models\n", len(models))

	skipRules := make([]mapping.SkipRule, 0, len(cfg.Mapping.SkipPatterns))
	for _, p := range cfg.Mapping.SkipPatterns {
		skipRules = append(skipRules, mapping.SkipRule{Pattern: p.Pattern, Category: p.Category})
	}
	inferer := mapping.NewInferer(mapping.Options{SkipRules: skipRules})

	runner := executor.NewRunner(executor.Config{
		Concurrent: cfg.Runner.Concurrent,
		MaxWorkers: cfg.Runner.MaxWorkers,
		Timeout:    cfg.Runner.Timeout,
		Retry: executor.RetryConfig{
			Attempts: cfg.Runner.Retry.Attempts,
			Delay:    time.Duration(cfg.Runner.Retry.Delay) * time.Second,
		},
	}, inferer, func(source string) executor.SchemaLoader {
		return parser.NewSwaggerParser(source).WithLogger(appLogger)
	}, appLogger)

	var suggester llm.LLMClient
	if *useLLM {
		client, err := llm.NewClient(&llm.Config{
			Provider:    cfg.LLM.Provider,
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			BaseURL:     cfg.LLM.BaseURL,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		}, appLogger)
		if err != nil {
			return fmt.Errorf("failed to initialize LLM client: %w", err)
		}
		suggester = client
	}

	failed := 0
	for _, res := range runner.RunInference(ctx, schemas, models) {
		report := reporter.NewReport(reporter.KindInference, res.Source)
		if res.Error != nil {
			failed++
			report.Error = res.Error.Error()
			fmt.Printf("%s: %v\n", res.Source, res.Error)
		} else {
			if suggester != nil {
				refined, err := llm.Refine(ctx, suggester, res.Result)
				if err != nil {
					appLogger.Printf("LLM refinement stopped for %s: %v\n", res.Source, err)
				}
				fmt.Printf("%s: LLM refined %d suggestions\n", res.Source, refined)
			}
			report.Inference = res.Result
			fmt.Printf("%s: %d mapped, %d unmapped, %d skipped (%s)\n", res.Source,
				len(res.Result.Mappings), len(res.Result.Unmapped), len(res.Result.Skipped), res.Duration)
		}

		paths, err := rep.GenerateReport(report)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Printf("Report written to %s\n", p)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d schemas failed to load", failed, len(schemas))
	}
	return nil
}

func runCRUD(cfg *config.Config, rep *reporter.Reporter, args []string) error {
	crudCmd := flag.NewFlagSet("crud", flag.ContinueOnError)

	var models listFlag
	crudCmd.Var(&models, "models", "Model names (comma-separated)")
	base := crudCmd.String("base", cfg.Mapping.BasePath, "Base path for generated routes")

	if err := crudCmd.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if len(models) == 0 {
		fmt.Println("Error: -models is required")
		crudCmd.Usage()
		return errUsage
	}

	endpoints := mapping.SynthesizeCRUD(models, mapping.CRUDOptions{BasePath: *base})
	for _, e := range endpoints {
		fmt.Printf("%-6s %-30s -> %s (%s)\n", e.Method, e.Pattern, e.SourceModel, e.ResponseType)
	}

	report := reporter.NewReport(reporter.KindCRUD, strings.Join(models, ","))
	report.Endpoints = endpoints
	paths, err := rep.GenerateReport(report)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("Report written to %s\n", p)
	}
	return nil
}

func runCSV(cfg *config.Config, appLogger *logger.Logger, rep *reporter.Reporter, args []string) error {
	csvCmd := flag.NewFlagSet("csv", flag.ContinueOnError)
	file := csvCmd.String("file", "", "Path to CSV file")
	maxRows := csvCmd.Int("max-rows", cfg.CSV.MaxRows, "Maximum data rows to keep")

	if err := csvCmd.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *file == "" {
		fmt.Println("Error: -file is required")
		csvCmd.Usage()
		return errUsage
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("failed to read CSV file: %w", err)
	}

	report := reporter.NewReport(reporter.KindDataset, *file)
	dataset, err := csvdata.ParseDataset(string(data), csvdata.Options{MaxRows: *maxRows, MaxBytes: cfg.CSV.MaxBytes})
	appLogger.LogDatasetParse(*file, dataset, err)
	if err != nil {
		report.Error = err.Error()
		if _, repErr := rep.GenerateReport(report); repErr != nil {
			appLogger.Printf("Failed to write report: %v\n", repErr)
		}
		return fmt.Errorf("failed to parse %s: %w", *file, err)
	}

	for i, column := range dataset.Columns {
		fmt.Printf("%-24s %s\n", column, dataset.ColumnTypes[i])
	}
	fmt.Printf("%d rows", len(dataset.Rows))
	if dataset.Truncated {
		fmt.Printf(" (truncated from %d)", dataset.OriginalRowCount)
	}
	fmt.Println()

	report.Dataset = dataset
	paths, err := rep.GenerateReport(report)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("Report written to %s\n", p)
	}
	return nil
}
