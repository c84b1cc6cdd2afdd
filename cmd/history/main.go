package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"mathmountain/internal/config"
	"mathmountain/internal/logger"
	"mathmountain/internal/service"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	clearCmd := flag.NewFlagSet("clear", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: history_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")
	importReplace := importCmd.Bool("replace", false, "Replace the stored history instead of merging (WARNING: destructive)")

	// Clear flags
	clearYes := clearCmd.Bool("yes", false, "Skip the confirmation prompt")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	slots, closer, err := service.OpenSlotStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open history store")
	}
	defer closer.Close()

	history := service.NewHistoryService(slots, cfg.HistorySlot, cfg.HistoryCap, log)
	backupService := service.NewBackupService(history, log)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		err = handleExport(ctx, backupService, *exportOutput, log)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		err = handleImport(ctx, backupService, *importInput, *importReplace, log)

	case "list":
		listCmd.Parse(os.Args[2:])
		err = handleList(ctx, history)

	case "clear":
		clearCmd.Parse(os.Args[2:])
		err = handleClear(ctx, history, *clearYes, log)

	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("History command failed")
	}
}

func handleExport(ctx context.Context, backupService *service.BackupService, outputPath string, log zerolog.Logger) error {
	// Generate default filename if not provided
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("history_%s.json", timestamp)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := backupService.Export(ctx, outputPath); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fileInfo, err := os.Stat(outputPath)
	if err == nil {
		log.Info().Int64("bytes", fileInfo.Size()).Msg("Export complete")
	}
	return nil
}

func handleImport(ctx context.Context, backupService *service.BackupService, inputPath string, replace bool, log zerolog.Logger) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	if replace && !confirm("WARNING: This will replace the stored history. Type 'yes' to confirm: ") {
		log.Info().Msg("Import cancelled")
		return nil
	}

	n, err := backupService.Import(ctx, inputPath, replace)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Printf("Import complete! History now holds %d sessions.\n", n)
	return nil
}

func handleList(ctx context.Context, history *service.HistoryService) error {
	sessions, err := history.Load(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No practice sessions yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tDATE\tSCORE\tRESULT")
	for _, s := range sessions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\t%d%% (%s)\n", s.ID, s.Type, s.Date, s.Correct, s.Total, s.Percentage, s.Badge())
	}
	return w.Flush()
}

func handleClear(ctx context.Context, history *service.HistoryService, yes bool, log zerolog.Logger) error {
	if !yes && !confirm("WARNING: This will delete all practice history. Type 'yes' to confirm: ") {
		log.Info().Msg("Clear cancelled")
		return nil
	}
	return history.Clear(ctx)
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line) == "yes"
}

func printUsage() {
	fmt.Println("Math Mountain History Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  history export [options]    Export practice history to a JSON file")
	fmt.Println("  history import [options]    Import practice history from a JSON file")
	fmt.Println("  history list                List stored sessions, most recent first")
	fmt.Println("  history clear [-yes]        Delete all stored sessions")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: history_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -replace          Replace stored history instead of merging (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  HISTORY_BACKEND   sql or redis (default: sql)")
	fmt.Println("  DB_TYPE           Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH           SQLite database path (default: ./mathmountain.db)")
	fmt.Println("  DATABASE_URL      PostgreSQL or MySQL connection URL")
	fmt.Println("  REDIS_URL         Redis URL when HISTORY_BACKEND=redis")
	fmt.Println("  HISTORY_SLOT      Storage key for the history (default: mathMountainHistory)")
}
