package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"sortd/internal/config"
	"sortd/internal/crawler"
	"sortd/internal/history"
	"sortd/internal/journal"
	"sortd/internal/mover"
	"sortd/internal/oracle"
	"sortd/internal/report"
	"sortd/internal/resolve"
	"sortd/internal/taxonomy"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "sortd",
		Short: "AI-assisted file organizer",
	}

	cfgPath  string
	provider string
	model    string
	apiKey   string
	endpoint string
	workers  int
	refine   bool
	noRefine bool
	fresh    bool
	exportTo string

	destDir string
	yes     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "", "Path to config.yaml (default: ./config.yaml when present)")
	pf.StringVar(&provider, "provider", "", "AI provider: ollama, openai, grok or gemini")
	pf.StringVar(&model, "model", "", "Model name (empty picks the provider default)")
	pf.StringVar(&apiKey, "api-key", "", "API key for hosted providers")
	pf.StringVar(&endpoint, "endpoint", "", "Provider endpoint override")

	for _, cmd := range []*cobra.Command{scanCmd, organizeCmd} {
		cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size (0 = auto)")
		cmd.Flags().BoolVar(&refine, "refine", true, "Run the second, refinement pass")
		cmd.Flags().BoolVar(&noRefine, "no-refine", false, "Disable the refinement pass")
		cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore cached suggestions for this run")
		cmd.Flags().StringVar(&exportTo, "export", "", "Write the results to a CSV file")
	}
	organizeCmd.Flags().StringVar(&destDir, "dest", "", "Destination root (default: the scanned folder's parent)")
	organizeCmd.Flags().BoolVar(&yes, "yes", false, "Execute the moves instead of printing them")

	cacheCmd.AddCommand(cacheClearCmd)

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(organizeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(modelsCmd)
}

// loadConfig layers the CLI flags over the file and environment config.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if provider != "" {
		cfg.AI.Provider = provider
	}
	if model != "" {
		cfg.AI.Model = model
	}
	if apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if endpoint != "" {
		cfg.AI.Endpoint = endpoint
	}
	if workers > 0 {
		cfg.Scan.Workers = workers
	}
	if cmd.Flags().Changed("refine") {
		cfg.Scan.Refine = refine
	}
	if noRefine {
		cfg.Scan.Refine = false
	}
	if fresh {
		cfg.Scan.IgnoreCache = true
	}
	return cfg
}

// scanFolder picks the folder to work on: argument, then config, then
// the working directory.
func scanFolder(cfg *config.Config, args []string) string {
	root := cfg.Scan.Root
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		log.Fatalf("Failed to resolve %s: %v", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		log.Fatalf("Not a directory: %s", abs)
	}
	return abs
}

func newOracle(ctx context.Context, cfg *config.Config) oracle.Oracle {
	client, err := oracle.New(ctx, oracle.Options{
		Provider: cfg.AI.Provider,
		Model:    cfg.AI.Model,
		APIKey:   cfg.AI.APIKey,
		Endpoint: cfg.AI.Endpoint,
	})
	if err != nil {
		log.Fatalf("Failed to create %s oracle: %v", cfg.AI.Provider, err)
	}
	return client
}

func buildPolicy(cfg *config.Config, snapshot *taxonomy.Snapshot) resolve.Policy {
	policy := resolve.Policy{
		RootName:         snapshot.RootName(),
		StayUnderRoot:    cfg.Guardrails.StayUnderRoot,
		PreferFolderMove: cfg.Guardrails.PreferFolderMove,
		Naming:           namingStyle(cfg, snapshot),
		Aliases:          resolve.DefaultAliases,
		TopLevel:         snapshot.TopLevel(),
	}
	if cfg.Guardrails.PinTerraform {
		policy.Pins = append(policy.Pins, resolve.Pin{
			Suffixes: crawler.TerraformExts,
			Subpath:  resolve.TerraformSubpath,
		})
	}
	return policy
}

func namingStyle(cfg *config.Config, snapshot *taxonomy.Snapshot) string {
	switch strings.ToLower(strings.TrimSpace(cfg.Guardrails.NamingConvention)) {
	case "auto":
		return taxonomy.DetectNamingStyle(snapshot.TopLevel())
	case "kebab":
		return taxonomy.StyleKebab
	case "snake":
		return taxonomy.StyleSnake
	default:
		return ""
	}
}

// watchInterrupt wires Ctrl+C to soft cancellation: the first signal
// stops new oracle work, a second one aborts in-flight requests.
func watchInterrupt(session *resolve.Session) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt)
	go func() {
		<-sigs
		fmt.Println("\n🛑 Cancelling; in-flight requests will finish. Press Ctrl+C again to abort.")
		session.CancelAll()
		<-sigs
		cancel()
	}()
	return ctx
}

// runResolve is the shared front half of scan and organize: crawl the
// folder and resolve a destination for every file found.
func runResolve(cmd *cobra.Command, args []string) (*config.Config, string, []resolve.Outcome, *resolve.Session) {
	cfg := loadConfig(cmd)
	root := scanFolder(cfg, args)

	fmt.Printf("📂 Scanning %s\n", root)

	// 1. Crawl
	var files []crawler.FileMeta
	if err := crawler.NewCrawler().Scan(root, func(meta crawler.FileMeta) error {
		files = append(files, meta)
		return nil
	}); err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
	fmt.Printf("✅ Found %d files\n", len(files))
	if len(files) == 0 {
		return cfg, root, nil, nil
	}

	// 2. Open the suggestion cache
	store, err := history.Open(cfg.History.Backend, cfg.HistoryPath())
	if err != nil {
		log.Fatalf("Failed to open history store: %v", err)
	}
	defer store.Close()

	// 3. Build the session over the current folder taxonomy
	snapshot := taxonomy.NewSnapshot(root)
	session := resolve.NewSession(store, buildPolicy(cfg, snapshot), snapshot, cfg.Guardrails.SnapCutoff)
	ctx := watchInterrupt(session)

	client := newOracle(ctx, cfg)
	fmt.Printf("🧠 Resolving with %s...\n", client.Name())

	jw := journal.NewWriter("")
	defer jw.Close()

	// 4. Resolve everything through the worker pool
	orch := resolve.NewOrchestrator(session, client, resolve.Options{
		Workers:          cfg.Scan.Workers,
		Refine:           cfg.Scan.Refine,
		IgnoreCache:      cfg.Scan.IgnoreCache,
		ContextSignature: cfg.Scan.ContextSignature,
		Journal:          jw,
	})

	done := 0
	outcomes := orch.Run(ctx, files, func(resolve.Outcome) {
		done++
		fmt.Printf("\r⏳ Resolved %d/%d", done, len(files))
	})
	fmt.Println()

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].File.RelPath < outcomes[j].File.RelPath
	})
	fmt.Printf("📝 Journal: %s\n", jw.Path())
	return cfg, root, outcomes, session
}

func exportResults(outcomes []resolve.Outcome) {
	if exportTo == "" {
		return
	}
	if err := report.ExportCSV(exportTo, outcomes); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	fmt.Printf("💾 Results exported to %s\n", exportTo)
}

var scanCmd = &cobra.Command{
	Use:   "scan [folder]",
	Short: "Resolve a destination for every file and print the plan",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, _, outcomes, _ := runResolve(cmd, args)
		if len(outcomes) == 0 {
			return
		}
		fmt.Println()
		report.PrintSummary(os.Stdout, outcomes)
		exportResults(outcomes)
	},
}

var organizeCmd = &cobra.Command{
	Use:   "organize [folder]",
	Short: "Resolve destinations and move the files",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, root, outcomes, session := runResolve(cmd, args)
		if len(outcomes) == 0 {
			return
		}
		fmt.Println()
		report.PrintSummary(os.Stdout, outcomes)
		exportResults(outcomes)

		if session.Cancelled() {
			fmt.Println("🛑 Scan cancelled; nothing was moved.")
			return
		}
		if !yes {
			fmt.Println("🔎 Dry run. Re-run with --yes to execute the moves above.")
			return
		}

		items := make([]mover.Item, 0, len(outcomes))
		for _, o := range outcomes {
			if o.Status == resolve.StatusCancelled {
				continue
			}
			items = append(items, mover.Item{Source: o.File.Path, Target: o.Path})
		}

		dest := destDir
		if dest == "" {
			dest = filepath.Dir(root)
		}
		isProject, _ := taxonomy.DetectProject(root)

		fmt.Printf("🚚 Moving %d items to %s\n", len(items), dest)
		res := mover.New(mover.Options{
			DestRoot:         dest,
			ScanRoot:         root,
			RootName:         filepath.Base(root),
			StayUnderRoot:    cfg.Guardrails.StayUnderRoot,
			PreferFolderMove: cfg.Guardrails.PreferFolderMove,
			IsProject:        isProject,
			OnProgress: func(done, total int) {
				fmt.Printf("\r⏳ Moved %d/%d", done, total)
			},
		}).Execute(items)
		fmt.Println()
		fmt.Printf("✨ Done: %d moved, %d failed\n", res.Moved, res.Failed)
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the suggestion cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached suggestion",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		store, err := history.Open(cfg.History.Backend, cfg.HistoryPath())
		if err != nil {
			log.Fatalf("Failed to open history store: %v", err)
		}
		defer store.Close()
		if err := store.InvalidateAll(); err != nil {
			log.Fatalf("Failed to clear cache: %v", err)
		}
		fmt.Printf("🗑️  Cleared %s\n", cfg.HistoryPath())
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the configured AI provider answers",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		ctx := context.Background()
		client := newOracle(ctx, cfg)
		fmt.Printf("🔌 Pinging %s...\n", client.Name())
		if err := client.Ping(ctx); err != nil {
			log.Fatalf("Ping failed: %v", err)
		}
		fmt.Println("✅ Provider is reachable and the model answers.")
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models the local Ollama server has pulled",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		names, err := oracle.NewOllama(cfg.AI.Model, cfg.AI.Endpoint).ListModels(context.Background())
		if err != nil {
			log.Fatalf("Failed to list models: %v", err)
		}
		if len(names) == 0 {
			fmt.Println("No models pulled yet.")
			return
		}
		for _, name := range names {
			fmt.Printf("  - %s\n", name)
		}
	},
}
