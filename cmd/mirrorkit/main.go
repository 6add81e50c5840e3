package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/fcolombo/mirrorkit/difflib"
	"github.com/fcolombo/mirrorkit/fs"
	"github.com/fcolombo/mirrorkit/goquery"
	"github.com/fcolombo/mirrorkit/htmltomarkdown"
	mkslog "github.com/fcolombo/mirrorkit/slog"
	"github.com/fcolombo/mirrorkit/sqlite"
	"github.com/fcolombo/mirrorkit/transform"
	"github.com/fcolombo/mirrorkit/wget"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// History database path. Set before calling Run().
	DBPath string

	// SQLite database used for run history.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mirrorkit"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mirrorkit --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fileCfg, err := LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	deps.FileCfg = fileCfg
	deps.Config = fileCfg.EngineConfig()

	// History database is only needed by commands that read or write it.
	if cmd == "history" || (cmd == "refactor" && !cli.Refactor.NoHistory) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set MIRRORKIT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.DB = m.DB
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	// Core services.
	scorer := difflib.NewScorer()
	deps.Store = mkslog.NewLoggingPageStore(fs.NewPageStore(), deps.Logger)
	deps.Extractor = mkslog.NewLoggingExtractor(goquery.NewExtractor(), deps.Logger)
	deps.Scorer = scorer
	deps.Locator = goquery.NewLocator(scorer)
	deps.Artifacts = fs.NewArtifactWriter()
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Transformer = &transform.Transformer{Logger: deps.Logger}
	rate := cli.Mirror.Rate
	if rate <= 0 {
		rate = 2
	}
	deps.Wget = &wget.Runner{
		Limiter: wget.NewDomainLimiter(rate),
		Logger:  deps.Logger,
		Output:  stderr,
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("MIRRORKIT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "mirrorkit.db"
	}
	dir := filepath.Join(home, ".mirrorkit")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "mirrorkit.db")
}
