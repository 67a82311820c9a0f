package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pders01/drclip/internal/config"
	"github.com/pders01/drclip/internal/debuglog"
	"github.com/pders01/drclip/internal/site"
	"github.com/pders01/drclip/internal/ui"
	"github.com/pders01/drclip/internal/validation"
	"github.com/pders01/drclip/internal/viewer"
)

// Version is the version of the application, set at build time
var Version = "dev"

var flags struct {
	keyword    string
	headline   string
	output     string
	configPath string
	site       string
	logLevel   string
	headless   bool
	open       bool
	quiet      bool
}

var rootCmd = &cobra.Command{
	Use:          "drclip",
	Short:        "Find a DR.dk article by headline and save it as PDF",
	SilenceUsage: true,
	RunE:         runRoot,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", ui.AppName, Version)
		fmt.Println("Article clipper for DR.dk")
		fmt.Println("github.com/pders01/drclip")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		configFile := filepath.Join(config.Dir(), "config.toml")
		if err := config.GenerateDefaultConfig(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated default configuration at: %s\n", configFile)
	},
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the known site profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := site.NewRegistry(config.Dir(), ".")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range registry.Names() {
			p, _ := registry.Get(name)
			fmt.Fprintf(out, "%-12s %s\n", name, ui.HelpStyle.Render(p.Description))
		}
		return nil
	},
}

func init() {
	addRunFlags(rootCmd)
	configCmd.AddCommand(configGenCmd)
	rootCmd.AddCommand(versionCmd, configCmd, sitesCmd)
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&flags.keyword, "keyword", "k", config.DefaultKeyword, "search keyword")
	f.StringVarP(&flags.headline, "headline", "t", config.DefaultHeadline, "text the wanted teaser must contain")
	f.StringVarP(&flags.output, "output", "o", "", "PDF output path (overrides config)")
	f.BoolVar(&flags.headless, "headless", true, "run the browser without a window")
	f.StringVar(&flags.configPath, "config", "", "path to configuration file")
	f.StringVar(&flags.site, "site", "", "site profile to use (overrides config)")
	f.BoolVar(&flags.open, "open", false, "open the PDF when done")
	f.BoolVar(&flags.quiet, "quiet", false, "skip startup banner")
	f.StringVar(&flags.logLevel, "log-level", "", "log level: off, error, warn, info, debug")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.File); err != nil {
		return err
	}
	defer debuglog.Close()

	if !flags.quiet {
		ui.ShowBanner(cmd.OutOrStdout(), Version)
	}

	registry, err := site.NewRegistry(config.Dir(), ".")
	if err != nil {
		return err
	}
	profile, err := registry.Get(cfg.Site.Profile)
	if err != nil {
		return err
	}
	profile, err = checkProfile(profile)
	if err != nil {
		return err
	}

	r := &runner{
		cfg:     cfg,
		profile: profile,
		out:     cmd.OutOrStdout(),
		launch:  launchRod,
		view:    viewer.New(cfg).Open,
	}
	return r.run(cmd.Context())
}

// applyFlags copies explicitly set flags over the loaded config and checks
// the values the search cannot run without.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("keyword") {
		cfg.Search.Keyword = flags.keyword
	}
	if f.Changed("headline") {
		cfg.Search.Headline = flags.headline
	}
	if f.Changed("output") {
		cfg.Output.Path = flags.output
	}
	if f.Changed("headless") {
		cfg.Browser.Headless = flags.headless
	}
	if f.Changed("site") {
		cfg.Site.Profile = flags.site
	}
	if f.Changed("open") {
		cfg.Output.Open = flags.open
	}
	if f.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}

	cfg.Search.Keyword = strings.TrimSpace(cfg.Search.Keyword)
	if cfg.Search.Keyword == "" {
		return errors.New("keyword must not be empty")
	}
	// An empty headline would match the first teaser.
	if strings.TrimSpace(cfg.Search.Headline) == "" {
		return errors.New("headline must not be empty")
	}

	path, err := validation.NewOutputPathValidator().ValidateAndSanitize(cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	cfg.Output.Path = path
	return nil
}

// checkProfile validates the profile and normalizes its URLs. Built-in
// profiles must point at public hosts; user profiles may target local
// servers.
func checkProfile(p *site.Profile) (*site.Profile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	v := validation.NewURLValidator()
	if p.Custom {
		v = validation.NewPermissiveURLValidator()
	}
	checked := *p

	var err error
	if checked.BaseURL, err = v.ValidateAndNormalize(p.BaseURL); err != nil {
		return nil, fmt.Errorf("site %s: base_url: %w", p.Name, err)
	}
	if checked.SearchURL, err = v.ValidateAndNormalize(p.SearchURL); err != nil {
		return nil, fmt.Errorf("site %s: search_url: %w", p.Name, err)
	}
	if p.HomeURL == "" {
		checked.HomeURL = checked.BaseURL
	} else if checked.HomeURL, err = v.ValidateAndNormalize(p.HomeURL); err != nil {
		return nil, fmt.Errorf("site %s: home_url: %w", p.Name, err)
	}
	return &checked, nil
}
