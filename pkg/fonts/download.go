package fonts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sina-salahshour/homer/internal/logger"
)

// ErrMissingContentLength is returned when the archive response does not
// declare its size.
var ErrMissingContentLength = errors.New("server did not report a content length")

const chunkSize = 32 * 1024

// Downloader streams release archives to the local cache.
type Downloader struct {
	client   *http.Client
	baseURL  string
	format   string
	progress io.Writer
}

// NewDownloader builds a downloader for archives of the given format hosted
// under baseURL. Progress bars are drawn on progress.
func NewDownloader(baseURL, format string, progress io.Writer) *Downloader {
	return &Downloader{
		client:   defaultClient,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		format:   format,
		progress: progress,
	}
}

// Format is the archive extension without the leading dot.
func (d *Downloader) Format() string {
	return d.format
}

// URL returns the release asset location for folderName at version.
func (d *Downloader) URL(folderName, version string) string {
	return fmt.Sprintf("%s/v%s/%s.%s", d.baseURL, version, folderName, d.format)
}

// Download fetches the archive for folderName into destPath, truncating any
// earlier partial file. A failure leaves whatever was written in place.
func (d *Downloader) Download(ctx context.Context, folderName, version, destPath string) error {
	url := d.URL(folderName, version)
	logger.Debug("[DEBUG] Fetching %s\n", url)

	resp, err := httpGet(ctx, d.client, url)
	if err != nil {
		return fmt.Errorf("downloading font %q: %w", folderName, err)
	}
	defer resp.Body.Close()

	total := resp.ContentLength
	if total < 0 {
		return fmt.Errorf("downloading font %q: %w", folderName, ErrMissingContentLength)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating file for font %q: %w", folderName, err)
	}
	defer out.Close()

	bar := d.newBar(folderName, total)

	var written int64
	buf := make([]byte, chunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := out.Write(buf[:n]); err != nil {
				return fmt.Errorf("saving font %q to %s: %w", folderName, destPath, err)
			}
			written = min(written+int64(n), total)
			_ = bar.Set64(written)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("receiving font %q: %w", folderName, readErr)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("saving font %q to %s: %w", folderName, destPath, err)
	}

	_ = bar.Finish()
	fmt.Fprintf(d.progress, "Downloaded %s to %s\n", folderName, destPath)
	return nil
}

func (d *Downloader) newBar(folderName string, total int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(d.progress),
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", folderName)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(d.progress)
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "#",
			SaucerHead:    ">",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
