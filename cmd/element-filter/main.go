package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/element-filter/internal/fetcher"
	"github.com/bnema/element-filter/internal/filter"
	"github.com/bnema/element-filter/internal/index"
	"github.com/bnema/element-filter/internal/logging"
	"github.com/bnema/element-filter/internal/models"
	"github.com/bnema/element-filter/internal/output"
	"github.com/bnema/element-filter/internal/pipeline"
	"github.com/bnema/element-filter/internal/selector"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	cfg     models.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "element-filter",
	Short: "Filter HTML documents with selector blacklists and whitelists before indexing",
	Long: `A tool that strips boilerplate from HTML pages (blacklist) or keeps only
their main content (whitelist) using simple CSS-like selectors, and writes
the extracted text as index documents.`,
	SilenceUsage: true,
}

var filterCmd = &cobra.Command{
	Use:   "filter [sources...]",
	Short: "Filter pages (URLs or files) and write index documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFilter,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configured selector lists",
	RunE:  runCheck,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	RunE:  runInit,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./configs/element_filter.toml)")

	filterCmd.Flags().StringP("output", "o", "./output", "output directory")
	filterCmd.Flags().Bool("dry-run", false, "filter without writing files")
	filterCmd.Flags().Bool("print", false, "print extracted text to stdout")
	filterCmd.Flags().Bool("verbose", false, "verbose output")

	rootCmd.AddCommand(filterCmd, checkCmd, initCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("element_filter")
		viper.SetConfigType("toml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("element_filter")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("selector.blacklist", "")
	v.SetDefault("selector.whitelist", "")
	v.SetDefault("selector.storage_field", "")
	v.SetDefault("selector.protected_urls", "")
	v.SetDefault("selector.trace", false)
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.retries", 3)
	v.SetDefault("http.rate_per_host", 2.0)
	v.SetDefault("pipeline.workers", 4)
	v.SetDefault("output.max_documents_per_file", output.MaxDocumentsPerFile)
	v.SetDefault("output.generate_manifest", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
}

func runFilter(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	printText, _ := cmd.Flags().GetBool("print")
	verbose, _ := cmd.Flags().GetBool("verbose")

	logCfg := cfg.Log
	if verbose || cfg.Selector.Trace {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var opts []filter.Option
	if cfg.Selector.Trace {
		opts = append(opts, filter.WithObserver(filter.ZapObserver(logger.Named("trace"))))
	}

	// Selector errors are fatal before any document is processed
	f, err := filter.FromConfig(cfg.Selector, opts...)
	if err != nil {
		return err
	}
	logConfigured(logger, f)

	p := &pipeline.Pipeline{
		Filter:  f,
		Indexer: index.New(cfg.Selector.StorageField),
		Fetcher: fetcher.New(cfg.HTTP),
		Workers: cfg.Pipeline.Workers,
		Logger:  logger.Named("pipeline"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Filtering %d documents...\n", len(args))
	if dryRun {
		fmt.Println("[DRY RUN] No files will be written")
	}

	docs, stats, err := p.Run(ctx, args)
	if err != nil {
		return err
	}
	docs = output.Deduplicate(docs)

	if printText {
		for _, d := range docs {
			fmt.Printf("\n== %s\n%s\n", d.URL, documentText(d, cfg.Selector.StorageField))
		}
	}

	fmt.Printf("\n  Documents: %d (failed: %d)\n", stats.Documents, stats.Failed)
	fmt.Printf("  Modes: %d whitelist, %d blacklist, %d protected, %d passthrough\n",
		stats.Whitelisted, stats.Blacklisted, stats.Protected, stats.Passthrough)
	if verbose {
		fmt.Printf("  Nodes: %d pruned, %d collected\n", stats.Pruned, stats.Collected)
	}

	if dryRun || len(docs) == 0 {
		fmt.Println("\nDone!")
		return nil
	}

	files, err := output.WriteDocuments(outputDir, "index", docs, output.NewSplitter(cfg.Output.MaxDocumentsPerFile))
	if err != nil {
		return fmt.Errorf("writing documents: %w", err)
	}

	if cfg.Output.GenerateManifest {
		manifest := output.NewManifest(time.Now())
		manifest.Sources = len(args)
		manifest.Documents = len(docs)
		manifest.Failed = stats.Failed
		manifest.Modes = output.Modes{
			Protected:   stats.Protected,
			Whitelisted: stats.Whitelisted,
			Blacklisted: stats.Blacklisted,
			Passthrough: stats.Passthrough,
		}
		manifest.Files = files
		if err := output.WriteJSON(outputDir, "manifest.json", manifest); err != nil {
			return fmt.Errorf("writing manifest: %w", err)
		}
	}

	fmt.Printf("  Written: %s\n", strings.Join(files, ", "))
	fmt.Println("\nDone!")
	return nil
}

// documentText returns the text the indexer reads for a document
func documentText(d index.Document, storageField string) string {
	if v, ok := d.Fields[strings.TrimSpace(storageField)]; ok {
		return v
	}
	return d.Content
}

func logConfigured(logger *zap.Logger, f *filter.Filter) {
	c := f.Config()
	if !c.Blacklist.Empty() {
		logger.Info("configured blacklist", zap.Stringer("selectors", c.Blacklist))
	}
	if !c.Whitelist.Empty() {
		logger.Info("configured whitelist", zap.Stringer("selectors", c.Whitelist))
	}
	if c.StorageField != "" {
		logger.Info("configured storage field", zap.String("field", c.StorageField))
	}
	if len(c.ProtectedURLs) > 0 {
		logger.Info("configured protected urls", zap.Int("count", len(c.ProtectedURLs)))
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	if !cfg.Selector.HasSelectors() {
		fmt.Println("No selectors configured: documents pass through unfiltered")
		return nil
	}

	lists := []struct {
		key   string
		value string
	}{
		{"selector.whitelist", cfg.Selector.Whitelist},
		{"selector.blacklist", cfg.Selector.Blacklist},
	}

	for _, l := range lists {
		p := selector.New()
		set, err := p.ParseList(l.value)
		if err != nil {
			return &filter.ConfigError{Key: l.key, Err: err}
		}
		if set.Empty() {
			continue
		}

		stats := p.Stats()
		fmt.Printf("[%s] %d selectors\n", l.key, set.Len())
		for i := 0; i < set.Len(); i++ {
			fmt.Printf("  - %s\n", set.At(i))
		}
		fmt.Printf("  types: %d, ids: %d, classes: %d, attributes: %d\n",
			stats.Kinds[selector.KindType], stats.Kinds[selector.KindID],
			stats.Kinds[selector.KindClass], stats.Kinds[selector.KindAttribute])
	}

	if strings.TrimSpace(cfg.Selector.Whitelist) != "" && strings.TrimSpace(cfg.Selector.Blacklist) != "" {
		fmt.Println("Note: whitelist is set, blacklist is ignored")
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := "./configs/element_filter.toml"
	if cfgFile != "" {
		configPath = cfgFile
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	defaultConfig := `# Element filter configuration

# Selector lists are comma-separated compound selectors built from
# tag names, #id, .class and [attribute=value], e.g. div.ad#top[data-x=1].
# If the whitelist is set it wins and the blacklist is ignored.
[selector]
blacklist = "script,style,nav,footer,.ad-banner"
whitelist = ""
# Write filtered text to this field instead of replacing the content
storage_field = ""
# Comma-separated URLs that are never filtered
protected_urls = ""
trace = false

[http]
timeout = "30s"
retries = 3
rate_per_host = 2.0

[pipeline]
workers = 4

[output]
max_documents_per_file = 1000
generate_manifest = true

[log]
level = "info"
format = "console"
file = ""
`

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return err
	}

	fmt.Printf("Created config file: %s\n", configPath)
	return nil
}
