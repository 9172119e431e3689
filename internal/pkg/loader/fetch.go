package loader

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/HenrikSjoe/yh-kollen/internal/pkg/logger"
)

type FetchConfig struct {
	Enabled  bool
	IndexURL string
}

// ensureSources downloads any configured workbook that is missing from the
// data directory, resolving download links from the publication index page.
// Every failure is logged and swallowed: a missing file just means that year
// stays out of the dataset.
func ensureSources(ctx context.Context, cfg Config) {
	missing := missingWorkbooks(cfg)
	if len(missing) == 0 {
		return
	}

	links, err := resolveWorkbookLinks(ctx, cfg.Fetch.IndexURL)
	if err != nil {
		logger.Warnf(ctx, "resolveWorkbookLinks: %s", err.Error())
		return
	}

	for _, name := range missing {
		link, ok := links[name]
		if !ok {
			logger.Warnf(ctx, "no published link for %s", name)
			continue
		}
		if err := download(ctx, link, filepath.Join(cfg.Dir, name)); err != nil {
			logger.Warnf(ctx, "download %s: %s", name, err.Error())
			continue
		}
		logger.Infof(ctx, "fetched %s", name)
	}
}

func missingWorkbooks(cfg Config) []string {
	var names []string
	for _, year := range cfg.CourseYears {
		names = append(names, courseFile(year))
	}
	for _, year := range cfg.ProgramYears {
		file, _, _ := programSource(year)
		names = append(names, file)
	}

	var missing []string
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(cfg.Dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// resolveWorkbookLinks scrapes the index page for .xlsx links, keyed by file
// name. Relative hrefs are resolved against the index URL.
func resolveWorkbookLinks(ctx context.Context, indexURL string) (map[string]string, error) {
	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}

	var resp *http.Response
	err = backoff.Retry(
		func() error {
			var httpErr error

			resp, httpErr = http.Get(indexURL)
			if httpErr != nil {
				return fmt.Errorf("http.Get: %w", httpErr)
			}
			if resp.StatusCode != http.StatusOK {
				_ = resp.Body.Close()
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 5),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	links := make(map[string]string)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || path.Ext(href) != ".xlsx" {
			return
		}
		ref, parseErr := url.Parse(href)
		if parseErr != nil {
			return
		}
		abs := base.ResolveReference(ref)
		links[path.Base(abs.Path)] = abs.String()
	})

	return links, nil
}

func download(ctx context.Context, link, dest string) (err error) {
	var resp *http.Response
	err = backoff.Retry(
		func() error {
			var httpErr error

			resp, httpErr = http.Get(link)
			if httpErr != nil {
				return fmt.Errorf("http.Get: %w", httpErr)
			}
			if resp.StatusCode != http.StatusOK {
				_ = resp.Body.Close()
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 5),
			ctx,
		),
	)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := resp.Body.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close body: %w", closeErr)
		}
	}()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.ReadFrom(resp.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	return os.Rename(tmp.Name(), dest)
}
