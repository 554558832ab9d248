// Package writer saves a batch of URLs as bookmarks.
package writer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nikbrunner/linkscan/internal/logger"
	"github.com/nikbrunner/linkscan/internal/model"
)

// Store is the bookmark store a Writer creates items in.
type Store interface {
	CreateFolder(ctx context.Context, title string) (string, error)
	CreateBookmark(ctx context.Context, params model.CreateBookmarkParams) (string, error)
}

// Status summarizes a batch.
type Status int

const (
	NothingToDo Status = iota // no store calls were made
	Success                   // every bookmark was created
	Partial                   // some bookmarks failed
	Failed                    // no bookmark was created
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Partial:
		return "partial"
	case Failed:
		return "failed"
	default:
		return "nothing to do"
	}
}

// Reason explains a NothingToDo outcome.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoSelection
	ReasonInvalidFolderTitle
)

// Created is a bookmark the store accepted.
type Created struct {
	URL string
	ID  string
}

// Failure is a URL the store rejected.
type Failure struct {
	URL string
	Err error
}

// Outcome reports a batch. Created and Failed keep input order.
// FolderID is set when the batch created a folder.
type Outcome struct {
	Status   Status
	Reason   Reason
	FolderID string
	Created  []Created
	Failed   []Failure
}

// Writer creates bookmarks for selected URLs.
type Writer struct {
	store       Store
	concurrency int
	log         logger.Logger
}

// Params holds parameters for creating a new Writer.
type Params struct {
	Store       Store
	Concurrency int           // parallel bookmark creations, defaults to 4
	Logger      logger.Logger // optional
}

// New creates a Writer.
func New(params Params) *Writer {
	concurrency := params.Concurrency
	if concurrency < 1 {
		concurrency = 4
	}
	log := params.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Writer{store: params.Store, concurrency: concurrency, log: log}
}

// Write creates one bookmark per URL under target, titled with the URL.
//
// For a new-folder target the folder is created first and its ID becomes
// the parent of every bookmark; no bookmark is attempted before the folder
// exists. An empty URL list, or a new-folder title that is blank after
// trimming, makes no store calls. Failures are isolated per URL and
// nothing is rolled back.
func (w *Writer) Write(ctx context.Context, urls []string, target model.FolderTarget) Outcome {
	if len(urls) == 0 {
		return Outcome{Status: NothingToDo, Reason: ReasonNoSelection}
	}

	log := w.log.With(logger.String("target", target.Kind.String()), logger.Int("urls", len(urls)))

	var out Outcome
	switch target.Kind {
	case model.TargetNew:
		title := strings.TrimSpace(target.Title)
		if title == "" {
			return Outcome{Status: NothingToDo, Reason: ReasonInvalidFolderTitle}
		}

		folderID, err := w.createFolder(ctx, title)
		if err != nil {
			log.Error("folder create failed", logger.String("title", title), logger.Error(err))
			return failAll(urls, err)
		}
		out = w.populate(ctx, folderID, urls)
		out.FolderID = folderID

	case model.TargetExisting:
		out = w.populate(ctx, target.ID, urls)

	default:
		out = w.populate(ctx, "", urls)
	}

	for _, f := range out.Failed {
		log.Warn("bookmark create failed", logger.String("url", f.URL), logger.Error(f.Err))
	}
	log.Info("bookmarks written",
		logger.String("status", out.Status.String()),
		logger.Int("created", len(out.Created)),
		logger.Int("failed", len(out.Failed)),
	)

	return out
}

// createFolder is step one of a new-folder batch.
func (w *Writer) createFolder(ctx context.Context, title string) (string, error) {
	id, err := w.store.CreateFolder(ctx, title)
	if err != nil {
		return "", fmt.Errorf("create folder %q: %w", title, err)
	}
	return id, nil
}

// populate creates a bookmark for each URL under parentID ("" = default
// location) on a bounded worker pool.
func (w *Writer) populate(ctx context.Context, parentID string, urls []string) Outcome {
	ids := make([]string, len(urls))
	errs := make([]error, len(urls))

	jobs := make(chan int, len(urls))
	for i := range urls {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for n := 0; n < min(w.concurrency, len(urls)); n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					errs[idx] = err
					continue
				}
				ids[idx], errs[idx] = w.store.CreateBookmark(ctx, model.CreateBookmarkParams{
					ParentID: parentID,
					Title:    urls[idx],
					URL:      urls[idx],
				})
			}
		}()
	}
	wg.Wait()

	var out Outcome
	for i, u := range urls {
		if errs[i] != nil {
			out.Failed = append(out.Failed, Failure{URL: u, Err: errs[i]})
			continue
		}
		out.Created = append(out.Created, Created{URL: u, ID: ids[i]})
	}
	out.Status = status(len(out.Created), len(out.Failed))
	return out
}

func failAll(urls []string, err error) Outcome {
	out := Outcome{Status: Failed}
	for _, u := range urls {
		out.Failed = append(out.Failed, Failure{URL: u, Err: err})
	}
	return out
}

func status(created, failed int) Status {
	switch {
	case failed == 0:
		return Success
	case created == 0:
		return Failed
	default:
		return Partial
	}
}
