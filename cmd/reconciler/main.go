package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"agri-reconciliation/internal/config"
	"agri-reconciliation/internal/domain"
	"agri-reconciliation/internal/gateway"
	"agri-reconciliation/internal/logger"
	"agri-reconciliation/internal/usecase"
)

func main() {
	// Define command-line flags
	mode := flag.String("mode", "list", "What to do: list, statement or bulk")
	category := flag.String("category", string(domain.CategoryWallet), "Listing category: wallet, loan, purchase, payroll, organization or all")
	page := flag.Int("page", 1, "Listing page")
	search := flag.String("search", "", "Listing search text")
	status := flag.String("status", "", "Listing status filter")
	startDateStr := flag.String("start", "", "Listing start date (YYYY-MM-DD)")
	endDateStr := flag.String("end", "", "Listing end date (YYYY-MM-DD)")
	walletType := flag.String("wallet-type", "", "Listing wallet type filter")
	listingOut := flag.String("export", "", "Also write the listing page as CSV to this path")
	farmerID := flag.String("farmer", "", "Farmer id (statement mode)")
	farmersFile := flag.String("farmers", "", "CSV file of farmer ids, first column (bulk mode)")
	sectionsStr := flag.String("sections", "all", "Comma-separated statement sections: wallet,loans,transactions,purchases,sessions,activity or all")
	outPath := flag.String("out", "", "Statement output path (statement mode, defaults to EXPORT_DIR/<farmer>.<format>)")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// --- Dependency Injection (Wiring the application) ---
	transport, err := gateway.NewHTTPTransport(cfg.APIBaseURL, cfg.APIToken, cfg.HTTPTimeout, zl)
	if err != nil {
		zl.Fatal("transport setup failed", zap.Error(err))
	}
	assembler := usecase.NewStatementAssembler()

	var output any
	switch *mode {
	case "list":
		filters, err := parseFilters(*search, *status, *startDateStr, *endDateStr, *walletType)
		if err != nil {
			zl.Fatal("invalid listing filters", zap.Error(err))
		}
		fetcher := usecase.NewCategoryFetcher(transport, zl)
		controller := usecase.NewController(fetcher, cfg.PageSize, zl)

		view, err := controller.Navigate(ctx, domain.Category(*category), filters, *page)
		if err != nil {
			zl.Fatal("listing failed", zap.Error(err))
		}
		if *listingOut != "" {
			title := fmt.Sprintf("%s transactions, page %d", view.Category, view.Page)
			if err := writeFile(*listingOut, func(w io.Writer) error {
				return gateway.NewCSVRenderer().Render(ctx, assembler.Listing(title, view.Rows), w)
			}); err != nil {
				zl.Fatal("listing export failed", zap.Error(err))
			}
		}
		output = view

	case "statement", "bulk":
		sel, err := parseSections(*sectionsStr)
		if err != nil {
			zl.Fatal("invalid sections", zap.Error(err))
		}
		exporter := usecase.NewStatementExporter(
			gateway.NewFinancialDetailSource(transport),
			assembler,
			newRenderer(cfg.ExportFormat),
			cfg.BulkConcurrency,
			zl,
		)
		if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
			zl.Fatal("cannot create export directory", zap.Error(err))
		}
		openFor := func(id string) (io.WriteCloser, error) {
			return os.Create(filepath.Join(cfg.ExportDir, safeName(id)+"."+cfg.ExportFormat))
		}

		if *mode == "statement" {
			if *farmerID == "" {
				fmt.Println("Error: -farmer is required in statement mode.")
				flag.Usage()
				os.Exit(1)
			}
			path := *outPath
			if path == "" {
				path = filepath.Join(cfg.ExportDir, safeName(*farmerID)+"."+cfg.ExportFormat)
			}
			if err := writeFile(path, func(w io.Writer) error {
				return exporter.Export(ctx, *farmerID, sel, w)
			}); err != nil {
				zl.Fatal("statement export failed", zap.Error(err))
			}
			output = map[string]string{"farmerId": *farmerID, "path": path}
			break
		}

		if *farmersFile == "" {
			fmt.Println("Error: -farmers is required in bulk mode.")
			flag.Usage()
			os.Exit(1)
		}
		ids, err := gateway.NewCSVFarmerList().FarmerIDs(ctx, *farmersFile)
		if err != nil {
			zl.Fatal("cannot read farmer list", zap.Error(err))
		}
		result, err := exporter.ExportBulk(ctx, ids, sel, openFor)
		if err != nil {
			zl.Fatal("bulk export failed", zap.Error(err))
		}
		failed := make(map[string]string, len(result.Failed))
		for id, ferr := range result.Failed {
			failed[id] = ferr.Error()
		}
		output = map[string]any{"exported": result.Exported, "failed": failed, "dir": cfg.ExportDir}

	default:
		fmt.Printf("Error: unknown mode %q.\n", *mode)
		flag.Usage()
		os.Exit(1)
	}

	// --- Present the Output ---
	out, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		zl.Fatal("failed to encode output", zap.Error(err))
	}
	fmt.Println(string(out))
}

func newRenderer(format string) usecase.ReportRenderer {
	if format == "pdf" {
		return gateway.NewPDFRenderer()
	}
	return gateway.NewCSVRenderer()
}

func parseFilters(search, status, start, end, walletType string) (domain.Filters, error) {
	f := domain.Filters{Search: search, Status: status, WalletType: walletType}
	var err error
	if start != "" {
		if f.DateStart, err = time.Parse(time.DateOnly, start); err != nil {
			return f, fmt.Errorf("start date: %w", err)
		}
	}
	if end != "" {
		if f.DateEnd, err = time.Parse(time.DateOnly, end); err != nil {
			return f, fmt.Errorf("end date: %w", err)
		}
	}
	return f, nil
}

func parseSections(list string) (domain.SectionSelection, error) {
	var sel domain.SectionSelection
	for _, name := range strings.Split(list, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "all":
			sel = domain.AllSections()
		case "wallet":
			sel.Wallet = true
		case "loans":
			sel.Loans = true
		case "transactions":
			sel.Transactions = true
		case "purchases":
			sel.Purchases = true
		case "sessions":
			sel.Sessions = true
		case "activity":
			sel.Activity = true
		case "":
		default:
			return sel, fmt.Errorf("unknown section %q", name)
		}
	}
	return sel, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func safeName(id string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, id)
}
