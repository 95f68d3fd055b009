// Command importer runs a markdown import against a problem form: it parses
// the document through the admin parse endpoint, prints the preview, applies
// it to the form and saves the form back to the problem store.
// Usage: importer -file problem.md [-problem <uuid>] [-yes] [-preview-xlsx out.xlsx] [-dry-run]
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"probimport/internal/config"
	"probimport/internal/domain"
	"probimport/internal/form"
	"probimport/internal/logger"
	"probimport/internal/markdown"
	"probimport/internal/parseclient"
	"probimport/internal/port"
	"probimport/internal/preview"
	"probimport/internal/repository/postgres"
	"probimport/internal/rowsync"
	"probimport/internal/service"
)

const (
	exitOK    = 0
	exitUsage = 2
	exitFail  = 1
)

type options struct {
	file        string
	problemID   uuid.UUID
	yes         bool
	previewXLSX string
	dryRun      bool
}

func parseArgs(args []string) (options, error) {
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts options
	var problem string
	fs.StringVar(&opts.file, "file", "", "markdown file to import (- for stdin)")
	fs.StringVar(&problem, "problem", "", "ID of the problem to import into; empty creates a new problem")
	fs.BoolVar(&opts.yes, "yes", false, "apply without asking for confirmation")
	fs.StringVar(&opts.previewXLSX, "preview-xlsx", "", "also write the preview to this XLSX file")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "apply to the form but do not save it")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.file == "" {
		return options{}, errors.New("-file is required")
	}
	if problem != "" {
		id, err := uuid.Parse(problem)
		if err != nil {
			return options{}, fmt.Errorf("invalid -problem: %w", err)
		}
		opts.problemID = id
	}
	return opts, nil
}

// pageBase returns the admin page the import runs on: the change page of an
// existing problem, the configured add page otherwise.
func pageBase(addPage string, id uuid.UUID) string {
	if id == uuid.Nil {
		return addPage
	}
	base := strings.TrimSuffix(addPage, "/")
	base = strings.TrimSuffix(base, "/add")
	return base + "/" + id.String() + "/change/"
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "importer: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: importer -file problem.md [-problem <uuid>] [-yes] [-preview-xlsx out.xlsx] [-dry-run]")
		os.Exit(exitUsage)
	}
	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "importer: %v\n", err)
		os.Exit(exitFail)
	}
	os.Exit(exitOK)
}

func run(opts options, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	text, err := readText(opts.file, stdin)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var problems service.ProblemService
	f := form.NewProblemForm(nil)
	if !opts.dryRun || opts.problemID != uuid.Nil {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer func() { _ = db.Close() }()
		problems = service.NewProblemService(postgres.NewProblemRepo(db))
	}
	if opts.problemID != uuid.Nil {
		existing, err := problems.GetByID(ctx, opts.problemID)
		if err != nil {
			return fmt.Errorf("loading problem %s: %w", opts.problemID, err)
		}
		f.Load(existing)
	}

	importerCfg := cfg.Importer
	if importerCfg.Token == "" {
		tok, err := service.NewAuthService(cfg.JWT).IssueToken("importer", true)
		if err != nil {
			return fmt.Errorf("issuing token: %w", err)
		}
		importerCfg.Token = tok.AccessToken
	}
	remote := parseclient.NewClient(&config.ImporterConfig{
		PageBase:    pageBase(importerCfg.PageBase, opts.problemID),
		Token:       importerCfg.Token,
		TimeoutSecs: importerCfg.TimeoutSecs,
	}, log)
	var client port.ParseClient = remote
	if importerCfg.LocalFallback {
		client = parseclient.NewFallback([]parseclient.Source{
			{Name: "remote", Client: remote},
			{Name: "local", Client: parseclient.NewLocal(markdown.NewParser(cfg.Parse))},
		}, 0, log)
	}

	ctrl := service.NewImportController(client, f, f.TestCases, rowsync.Options{
		BaseDelay:  importerCfg.BaseDelay,
		RowTimeout: importerCfg.RowTimeout,
	}, log)

	if _, err := ctrl.Open(); err != nil {
		return err
	}
	if err := ctrl.Edit(text); err != nil {
		return err
	}
	view, err := ctrl.Submit(ctx)
	if err != nil {
		ctrl.Cancel()
		return fmt.Errorf("parsing %s: %w", opts.file, err)
	}

	fmt.Fprintln(stdout, view.Text())
	if opts.previewXLSX != "" {
		if err := writePreview(opts.previewXLSX, *view); err != nil {
			ctrl.Cancel()
			return err
		}
		fmt.Fprintf(stdout, "preview written to %s\n", opts.previewXLSX)
	}

	if !opts.yes && !confirm(stdin, stdout) {
		ctrl.Cancel()
		fmt.Fprintln(stdout, "import cancelled")
		return nil
	}

	res, err := ctrl.Confirm(ctx)
	if err != nil {
		return fmt.Errorf("applying import: %w", err)
	}
	f.TestCases.Wait()
	fmt.Fprintf(stdout, "applied: %d fields, %d/%d test cases filled, %d dropped, %d ambiguous, %d existing rows marked for deletion\n",
		res.FieldsBound, res.Rows.Filled, res.Rows.Requested, res.Rows.Dropped, res.Rows.Ambiguous, res.Rows.MarkedDeleted)

	if opts.dryRun {
		return nil
	}

	p, err := f.Problem()
	if err != nil {
		return fmt.Errorf("reading form: %w", err)
	}
	p.ID = opts.problemID
	saved, err := problems.Save(ctx, p)
	if err != nil {
		return fmt.Errorf("saving problem: %w", err)
	}
	log.Info("problem saved",
		zap.String("id", saved.ID.String()),
		zap.Int("test_cases", len(saved.TestCases)),
	)
	fmt.Fprintf(stdout, "saved problem %s (%s)\n", saved.ID, saved.Title)
	return nil
}

func readText(path string, stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("reading %s: %w", path, domain.ErrEmptyInput)
	}
	return string(b), nil
}

func writePreview(path string, v preview.View) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := preview.WriteXLSX(out, v); err != nil {
		_ = out.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return out.Close()
}

func confirm(stdin io.Reader, stdout io.Writer) bool {
	fmt.Fprint(stdout, "Apply to the problem form? [y/N] ")
	line, _ := bufio.NewReader(stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
