package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const usage = `scan a page for links, then open or bookmark them

Sources (pick one; stdin is read when none is given):
  --url URL          fetch a page over HTTP (--article keeps the main content)
  --file PATH        read a text or HTML file
  --clipboard        read the clipboard
  --tab              read the active tab of a browser started with
                     --remote-debugging-port (see --debug-addr)

Panel keys:
  j/k         Move down/up
  space       Toggle link (or all, on the first row)
  a           Toggle all
  o           Open checked links in the browser
  s           Bookmark checked links
  f           Bookmark checked links into a folder
                /  filter folders   Enter on "Create a New Folder" names one
  y/Y         Copy link under cursor / checked links
  q/Esc       Quit`

func main() {
	app := &cli.App{
		Name:        "linkscan",
		Usage:       "find the links on a page and bookmark them",
		Description: usage,
		Flags:       append(globalFlags(), sourceFlags()...),
		Action:      scanAction,
		Commands: []*cli.Command{
			{
				Name:   "scan",
				Usage:  "scan a page and pick links interactively (default)",
				Flags:  sourceFlags(),
				Action: scanAction,
			},
			{
				Name:  "extract",
				Usage: "print the links found on a page",
				Flags: append(sourceFlags(), &cli.BoolFlag{
					Name:  "json",
					Usage: "print a JSON array",
				}),
				Action: extractAction,
			},
			{
				Name:      "save",
				Usage:     "bookmark links from a page without the panel",
				ArgsUsage: " ",
				Flags: append(sourceFlags(),
					&cli.StringFlag{Name: "folder", Usage: "existing folder `ID`"},
					&cli.StringFlag{Name: "new-folder", Usage: "create a folder with `TITLE` first"},
					&cli.BoolFlag{Name: "all", Usage: "save every link found"},
					&cli.StringFlag{Name: "select", Usage: "save links by 1-based `N,N,...` as listed by extract"},
				),
				Action: saveAction,
			},
			{
				Name:  "folders",
				Usage: "list bookmark folders (id, title)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "filter", Usage: "fuzzy filter on folder titles"},
				},
				Action: foldersAction,
			},
			{
				Name:      "import",
				Usage:     "import bookmarks from Netscape HTML",
				ArgsUsage: "<file.html>",
				Action:    importAction,
			},
			{
				Name:      "export",
				Usage:     "export bookmarks to Netscape HTML",
				ArgsUsage: "[path]",
				Action:    exportAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "config file `PATH` (default ~/.config/linkscan/config.yaml)",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "bookmark store `PATH`, overrides storage.path",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
		},
	}
}

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "url", Usage: "fetch page `URL`"},
		&cli.StringFlag{Name: "file", Usage: "read page text from `PATH` (- for stdin)"},
		&cli.BoolFlag{Name: "clipboard", Usage: "read page text from the clipboard"},
		&cli.BoolFlag{Name: "tab", Usage: "read the active browser tab over the DevTools protocol"},
		&cli.StringFlag{Name: "debug-addr", Usage: "DevTools `HOST:PORT` for --tab"},
		&cli.BoolFlag{Name: "article", Usage: "with --url, scan only the main article content"},
	}
}
