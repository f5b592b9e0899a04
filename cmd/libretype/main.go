// Package main provides the CLI entrypoint for libretype.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/libretype/libretype/internal/config"
	"github.com/libretype/libretype/internal/library"
	"github.com/libretype/libretype/internal/model"
	"github.com/libretype/libretype/internal/practice"
	"github.com/libretype/libretype/internal/stats"
	"github.com/libretype/libretype/internal/translate"
	"github.com/libretype/libretype/internal/tui"
)

const (
	defaultLang     = "fr"
	defaultTarget   = "en"
	defaultMinutes  = 3
	defaultLayout   = "qwerty"
	defaultProvider = "openai"
	defaultModel    = "gpt-4o-mini"
)

var (
	practiceBook     string
	practiceLang     string
	practiceTarget   string
	practiceTimed    bool
	practiceMinutes  int
	practiceLayout   string
	practiceTranslat bool
	practiceProvider string
	practiceModel    string
	practiceBooksDir string

	langsAll bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "libretype",
		Short:         "Typing practice over real books, with live translation",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceBook, "book", "", "path to a text file (skips the library picker)")
	rootCmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "source language code for --book files")
	rootCmd.Flags().StringVar(&practiceTarget, "target", defaultTarget, "translation target language code")
	rootCmd.Flags().BoolVar(&practiceTimed, "timed", false, "end the session on a timer")
	rootCmd.Flags().IntVar(&practiceMinutes, "minutes", defaultMinutes, "timer length in minutes (1, 3 or 5)")
	rootCmd.Flags().StringVar(&practiceLayout, "layout", defaultLayout, "keyboard layout (qwerty, azerty, qwertz)")
	rootCmd.Flags().BoolVar(&practiceTranslat, "translate", true, "show a live translation pane")
	rootCmd.Flags().StringVar(&practiceProvider, "provider", defaultProvider, "translation backend provider")
	rootCmd.Flags().StringVar(&practiceModel, "model", defaultModel, "translation backend model")
	rootCmd.Flags().StringVar(&practiceBooksDir, "books-dir", "", "books directory (default: XDG data dir)")

	rootCmd.AddCommand(newLibraryCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyBoolConfig(cmd, "timed", &practiceTimed, fileCfg.Practice.Timed)
	applyIntConfig(cmd, "minutes", &practiceMinutes, fileCfg.Practice.TimerMinutes)
	applyStringConfig(cmd, "layout", &practiceLayout, fileCfg.Practice.KeyboardLayout)
	applyStringConfig(cmd, "books-dir", &practiceBooksDir, fileCfg.Practice.BooksDir)
	applyBoolConfig(cmd, "translate", &practiceTranslat, fileCfg.Translation.Enabled)
	applyStringConfig(cmd, "target", &practiceTarget, fileCfg.Translation.TargetLang)
	applyStringConfig(cmd, "provider", &practiceProvider, fileCfg.Translation.Provider)
	applyStringConfig(cmd, "model", &practiceModel, fileCfg.Translation.Model)

	cfg := model.Config{
		Lang:           practiceLang,
		TargetLang:     practiceTarget,
		Timed:          practiceTimed,
		TimerMinutes:   practiceMinutes,
		KeyboardLayout: practiceLayout,
		Translate:      practiceTranslat,
		Provider:       practiceProvider,
		Model:          practiceModel,
		BooksDir:       resolveBooksDir(practiceBooksDir),
		BookPath:       practiceBook,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	logger, closeLog, err := openLogger(config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer closeLog()

	book, err := selectBook(cfg)
	if err != nil {
		return err
	}
	if book == nil {
		// Picker dismissed.
		return nil
	}

	text, err := library.Load(*book)
	if err != nil {
		return fmt.Errorf("failed to load book: %w", err)
	}

	langCode := library.LanguageCode(book.Language)
	session := practice.NewSession(book.Title, text, langCode, cfg.Timed, cfg.TimerMinutes)
	if len(session.Words()) == 0 {
		return fmt.Errorf("no practicable text in %s", book.Path)
	}

	var live *translate.Live
	if cfg.Translate {
		live = translate.NewLive(
			translatorFactory(cfg),
			book.Language,
			library.LanguageName(cfg.TargetLang),
			langCode,
			cfg.KeyboardLayout,
			logger,
		)
	}

	m := tui.NewModel(cfg, session, live, tui.KeymapFromConfig(fileCfg.Keymap), logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// translatorFactory defers backend construction until the first keystroke,
// so a missing API key surfaces as a pane status instead of a startup error.
func translatorFactory(cfg model.Config) translate.Factory {
	return func(context.Context) (translate.Translator, error) {
		if !library.KnownCode(cfg.TargetLang) {
			return nil, fmt.Errorf("target language %q: %w", cfg.TargetLang, translate.ErrUnknownLanguage)
		}
		return translate.NewLLM(cfg.Provider, cfg.Model)
	}
}

// selectBook resolves the book to practice: a --book path directly, otherwise
// the library picker. A nil book with nil error means the picker was
// dismissed.
func selectBook(cfg model.Config) (*model.Book, error) {
	if cfg.BookPath != "" {
		info, err := os.Stat(cfg.BookPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open book: %w", err)
		}
		return &model.Book{
			Title:    library.TitleFromFilename(filepath.Base(cfg.BookPath)),
			Path:     cfg.BookPath,
			Language: library.LanguageName(cfg.Lang),
			ModTime:  info.ModTime(),
		}, nil
	}

	books, err := scanLibrary(cfg.BooksDir)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, noBooksError(cfg.BooksDir)
	}

	picker := tui.NewPicker(books)
	program := tea.NewProgram(picker, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("failed to run book picker: %w", err)
	}
	return picker.Selected(), nil
}

// scanLibrary walks the books directory with the sqlite catalog as a
// validation cache. A broken catalog degrades to an uncached scan.
func scanLibrary(booksDir string) ([]model.Book, error) {
	cat, err := library.OpenCatalog(config.DefaultCatalogPath())
	if err != nil {
		logErrf("catalog unavailable, scanning without cache: %v\n", err)
		return library.Scan(booksDir)
	}
	defer func() {
		if cerr := cat.Close(); cerr != nil {
			logErrf("failed to close catalog: %v\n", cerr)
		}
	}()

	books, err := library.ScanCached(context.Background(), booksDir, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to scan library: %w", err)
	}
	if err := cat.Prune(context.Background()); err != nil {
		logErrf("failed to prune catalog: %v\n", err)
	}
	return books, nil
}

func newLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "List validated books in the library",
		Args:  cobra.NoArgs,
		RunE:  runLibraryCmd,
	}
	cmd.Flags().StringVar(&practiceBooksDir, "books-dir", "", "books directory (default: XDG data dir)")
	return cmd
}

func runLibraryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "books-dir", &practiceBooksDir, fileCfg.Practice.BooksDir)
	booksDir := resolveBooksDir(practiceBooksDir)

	books, err := scanLibrary(booksDir)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return noBooksError(booksDir)
	}

	titleWidth := maxTitleWidth(books)
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{
			runewidth.Truncate(b.Title, titleWidth, "…"),
			b.Language,
			fmt.Sprint(b.WordCount),
		})
	}
	lines := stats.FormatTable(
		[]string{"Title", "Language", "Words"},
		rows,
		map[int]bool{2: true},
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// maxTitleWidth bounds the title column so the table fits the terminal,
// leaving room for the language and word-count columns.
func maxTitleWidth(books []model.Book) int {
	termWidth := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		termWidth = w
	}
	width := termWidth - 24
	if width < 16 {
		width = 16
	}
	longest := 0
	for _, b := range books {
		if w := runewidth.StringWidth(b.Title); w > longest {
			longest = w
		}
	}
	if longest < width {
		width = longest
	}
	return width
}

func newLangsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "langs",
		Short: "List languages present in the library",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
	cmd.Flags().BoolVar(&langsAll, "all", false, "list every supported language instead")
	cmd.Flags().StringVar(&practiceBooksDir, "books-dir", "", "books directory (default: XDG data dir)")
	return cmd
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	if langsAll {
		for _, name := range library.Languages() {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", name, library.LanguageCode(name)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "books-dir", &practiceBooksDir, fileCfg.Practice.BooksDir)
	booksDir := resolveBooksDir(practiceBooksDir)

	entries, err := os.ReadDir(booksDir)
	if err != nil {
		if os.IsNotExist(err) {
			return noBooksError(booksDir)
		}
		return fmt.Errorf("failed to read books directory: %w", err)
	}
	found := false
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", name, library.LanguageCode(name)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		found = true
	}
	if !found {
		return noBooksError(booksDir)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func resolveBooksDir(dir string) string {
	if dir != "" {
		return dir
	}
	return config.DefaultBooksDir()
}

func noBooksError(booksDir string) error {
	lines := []string{
		fmt.Sprintf("no valid books found in %s", booksDir),
		"Expected layout: <books-dir>/<Language>/<title>.txt, e.g.",
		fmt.Sprintf("  %s", filepath.Join(booksDir, "French", "candide.txt")),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

// openLogger writes structured logs to a file: the terminal belongs to the
// TUI while a session runs.
func openLogger(path string) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, nil))
	closeLog := func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}
	return logger, closeLog, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Timed {
		switch cfg.TimerMinutes {
		case 1, 3, 5:
		default:
			return fmt.Errorf("--minutes must be 1, 3 or 5")
		}
	}
	switch cfg.KeyboardLayout {
	case "qwerty", "azerty", "qwertz":
	default:
		return fmt.Errorf("--layout must be one of qwerty, azerty, qwertz")
	}
	if cfg.Translate {
		if cfg.Provider == "" {
			return fmt.Errorf("--provider must not be empty when translation is on")
		}
		if cfg.Model == "" {
			return fmt.Errorf("--model must not be empty when translation is on")
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# libretype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q              # Source language code for --book files
# timed = false          # End the session on a timer
# timer-minutes = %d     # Timer length (1, 3 or 5)
# keyboard-layout = %q   # qwerty, azerty or qwertz
# books-dir = ""         # Books directory (default: XDG data dir)

[translation]
# enabled = true
# target-lang = %q       # Translation target language code
# provider = %q          # openai, anthropic, gemini, ollama, deepseek, mistral, groq
# model = %q

[keymap]
# skip-word = "tab"
# skip-line = "ctrl+n"
# skip-block = "ctrl+o"
# scroll-up = "pgup"
# scroll-down = "pgdown"
# quit = "esc"
`,
		defaultLang,
		defaultMinutes,
		defaultLayout,
		defaultTarget,
		defaultProvider,
		defaultModel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
