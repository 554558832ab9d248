package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/nikbrunner/linkscan/internal/browser"
	"github.com/nikbrunner/linkscan/internal/exporter"
	"github.com/nikbrunner/linkscan/internal/extract"
	"github.com/nikbrunner/linkscan/internal/importer"
	"github.com/nikbrunner/linkscan/internal/logger"
	"github.com/nikbrunner/linkscan/internal/model"
	"github.com/nikbrunner/linkscan/internal/picker"
	"github.com/nikbrunner/linkscan/internal/scan"
	"github.com/nikbrunner/linkscan/internal/search"
	"github.com/nikbrunner/linkscan/internal/selection"
	"github.com/nikbrunner/linkscan/internal/tree"
	"github.com/nikbrunner/linkscan/internal/writer"
)

// scanAction opens the link panel. The panel scans the source itself so the
// terminal shows progress while a page loads.
func scanAction(c *cli.Context) error {
	e, err := setup(c, true)
	if err != nil {
		return err
	}
	defer e.close()

	src, err := sourceFrom(c, e.cfg)
	if err != nil {
		return err
	}

	panel := picker.New(picker.Params{
		Source: src,
		Tree:   e.lib,
		Saver: writer.New(writer.Params{
			Store:       e.lib,
			Concurrency: e.cfg.Writer.Concurrency,
			Logger:      e.log,
		}),
		Opener:       browser.New(e.cfg.Browser.OpenCommand),
		ScanTimeout:  e.cfg.Timeouts.Scan,
		StoreTimeout: e.cfg.Timeouts.Store,
		Logger:       e.log,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if readsStdin(src) {
		// Page text arrives on stdin, so keys come from the terminal.
		opts = append(opts, tea.WithInputTTY())
	}

	if _, err := tea.NewProgram(panel, opts...).Run(); err != nil {
		return fmt.Errorf("run panel: %w", err)
	}
	return nil
}

func readsStdin(src scan.Source) bool {
	r, ok := src.(scan.Reader)
	return ok && (r.Path == "" || r.Path == "-") && r.In == nil
}

// extractAction prints the links found on a page, one per line.
func extractAction(c *cli.Context) error {
	e, err := setup(c, false)
	if err != nil {
		return err
	}
	defer e.close()

	text, err := scanText(c, e)
	if err != nil {
		return err
	}
	urls := extract.URLs(text)

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if urls == nil {
			urls = []string{}
		}
		return enc.Encode(urls)
	}
	for _, u := range urls {
		fmt.Println(u)
	}
	return nil
}

// saveAction writes links from a page as bookmarks without the panel.
func saveAction(c *cli.Context) error {
	if c.String("folder") != "" && c.String("new-folder") != "" {
		return errors.New("only one of --folder, --new-folder may be given")
	}
	if c.Bool("all") == (c.String("select") != "") {
		return errors.New("give exactly one of --all, --select")
	}

	e, err := setup(c, false)
	if err != nil {
		return err
	}
	defer e.close()

	text, err := scanText(c, e)
	if err != nil {
		return err
	}

	items := extract.Items(text)
	if c.Bool("all") {
		items = selection.ToggleAll(items)
	} else {
		if items, err = selectIndexes(items, c.String("select")); err != nil {
			return err
		}
	}

	target := model.NoFolder()
	switch {
	case c.String("folder") != "":
		target = model.ExistingFolder(c.String("folder"))
	case c.IsSet("new-folder"):
		target = model.NewFolderTarget(c.String("new-folder"))
	}

	w := writer.New(writer.Params{
		Store:       e.lib,
		Concurrency: e.cfg.Writer.Concurrency,
		Logger:      e.log,
	})
	ctx, cancel := context.WithTimeout(c.Context, e.cfg.Timeouts.Store)
	defer cancel()

	return printOutcome(w.Write(ctx, selection.Checked(items), target))
}

func printOutcome(out writer.Outcome) error {
	switch out.Status {
	case writer.NothingToDo:
		if out.Reason == writer.ReasonInvalidFolderTitle {
			return errors.New("folder title cannot be empty")
		}
		fmt.Println("No links selected")
		return nil
	case writer.Success:
		fmt.Printf("Bookmarked %d links\n", len(out.Created))
		return nil
	}

	for _, f := range out.Failed {
		fmt.Fprintf(os.Stderr, "failed: %s: %v\n", f.URL, f.Err)
	}
	fmt.Printf("Bookmarked %d links, %d failed\n", len(out.Created), len(out.Failed))
	return fmt.Errorf("%d of %d bookmarks failed", len(out.Failed), len(out.Created)+len(out.Failed))
}

// selectIndexes checks the items named by a 1-based, comma-separated list.
func selectIndexes(items []model.LinkItem, list string) ([]model.LinkItem, error) {
	seen := make(map[int]bool)
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("bad --select entry %q: %w", field, err)
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		if items, err = selection.ToggleOne(items, n-1); err != nil {
			return nil, fmt.Errorf("--select %d: %w", n, err)
		}
	}
	return items, nil
}

func scanText(c *cli.Context, e *env) (string, error) {
	src, err := sourceFrom(c, e.cfg)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(c.Context, e.cfg.Timeouts.Scan)
	defer cancel()

	text, err := src.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("scan: %w", err)
	}
	e.log.Debug("scanned page", logger.Int("bytes", len(text)))
	return text, nil
}

// foldersAction lists every folder with its ID, as accepted by save --folder.
func foldersAction(c *cli.Context) error {
	e, err := setup(c, false)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := context.WithTimeout(c.Context, e.cfg.Timeouts.Store)
	defer cancel()

	root, err := e.lib.GetTree(ctx)
	if err != nil {
		return fmt.Errorf("load folders: %w", err)
	}

	for _, r := range search.FuzzySearchFolders(tree.FlattenAll(root.Children), c.String("filter")) {
		fmt.Printf("%s\t%s\n", r.Folder.ID, r.Folder.Title)
	}
	return nil
}

func importAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowSubcommandHelp(c)
	}

	e, err := setup(c, false)
	if err != nil {
		return err
	}
	defer e.close()

	file, err := os.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer file.Close()

	res, err := importer.Parse(file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", file.Name(), err)
	}

	added, skipped, err := e.lib.Import(c.Context, res.Folders, res.Bookmarks)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d bookmarks, %d folders", added, len(res.Folders))
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
	return nil
}

func exportAction(c *cli.Context) error {
	out := c.Args().First()
	if out == "" {
		var err error
		if out, err = exporter.DefaultExportPath(); err != nil {
			return fmt.Errorf("default export path: %w", err)
		}
	}

	e, err := setup(c, false)
	if err != nil {
		return err
	}
	defer e.close()

	store, err := e.lib.Snapshot(c.Context)
	if err != nil {
		return err
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := exporter.Write(file, store); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}

	fmt.Printf("Exported %d bookmarks, %d folders to %s\n",
		len(store.Bookmarks), len(store.Folders), out)
	return nil
}
