package report

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"csekit/internal/config"
	"csekit/internal/cse"
	apperrors "csekit/internal/errors"
	"csekit/internal/logger"
	"csekit/internal/store"
)

// Downloader fetches announcement documents from the CSE CDN into the
// reports directory. Transient failures are retried with backoff; the API
// envelope itself stays retry-free.
type Downloader struct {
	httpClient *http.Client
	cdnBase    string
	userAgent  string
	reportsDir string
	retry      *RetryConfig
	delay      time.Duration
	log        logger.Logger
}

// NewDownloader creates a downloader from API and download configuration.
func NewDownloader(api *config.APIConfig, dl *config.DownloadConfig, reportsDir string) *Downloader {
	retry := DefaultRetryConfig()
	if dl != nil {
		if dl.MaxRetries > 0 {
			retry.MaxRetries = dl.MaxRetries
		}
		if dl.InitialWait > 0 {
			retry.InitialWait = dl.InitialWait
		}
		if dl.MaxWait > 0 {
			retry.MaxWait = dl.MaxWait
		}
	}

	delay := time.Second
	if dl != nil && dl.Delay > 0 {
		delay = dl.Delay
	}

	return &Downloader{
		httpClient: &http.Client{Timeout: api.Timeout},
		cdnBase:    api.CDNBaseURL,
		userAgent:  api.UserAgent,
		reportsDir: reportsDir,
		retry:      retry,
		delay:      delay,
		log:        logger.Default().WithField("component", "downloader"),
	}
}

// DownloadOptions narrows which announcements get downloaded.
type DownloadOptions struct {
	Limit         int      // 0 means no limit
	CompanyFilter string   // substring of the company name
	Symbols       []string // restrict to these symbols
	Folder        string   // subfolder under the reports directory
}

// DownloadResult records the outcome of one document download.
type DownloadResult struct {
	Success        bool   `json:"success"`
	AnnouncementID int64  `json:"announcement_id"`
	CompanyName    string `json:"company_name"`
	Symbol         string `json:"symbol"`
	FileText       string `json:"file_text"`
	UploadedDate   string `json:"uploaded_date"`
	Filename       string `json:"filename,omitempty"`
	LocalPath      string `json:"local_path,omitempty"`
	FileSize       int64  `json:"file_size,omitempty"`
	URL            string `json:"url"`
	Error          string `json:"error,omitempty"`
}

// SanitizeFilename replaces characters that are invalid in filenames.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		}
		return r
	}, name)
}

// Filter applies the options to an announcement list.
func (o *DownloadOptions) Filter(announcements []cse.FinancialAnnouncement) []cse.FinancialAnnouncement {
	filtered := announcements

	if o.CompanyFilter != "" {
		needle := strings.ToLower(o.CompanyFilter)
		var kept []cse.FinancialAnnouncement
		for _, a := range filtered {
			if strings.Contains(strings.ToLower(a.Name), needle) {
				kept = append(kept, a)
			}
		}
		filtered = kept
	}

	if len(o.Symbols) > 0 {
		var kept []cse.FinancialAnnouncement
		for _, a := range filtered {
			for _, symbol := range o.Symbols {
				if strings.Contains(strings.ToUpper(a.Symbol), strings.ToUpper(symbol)) {
					kept = append(kept, a)
					break
				}
			}
		}
		filtered = kept
	}

	if o.Limit > 0 && len(filtered) > o.Limit {
		filtered = filtered[:o.Limit]
	}

	return filtered
}

// DownloadReports downloads the documents of the given announcements and
// writes a JSON download log next to them. Individual failures are recorded,
// not fatal.
func (d *Downloader) DownloadReports(ctx context.Context, announcements []cse.FinancialAnnouncement, opts DownloadOptions) ([]DownloadResult, error) {
	announcements = opts.Filter(announcements)

	folderName := opts.Folder
	if folderName == "" {
		folderName = "all_reports"
	}
	folder, err := store.EnsureDir(d.reportsDir, folderName)
	if err != nil {
		return nil, apperrors.WrapError(err, apperrors.ErrCodeDownload, "failed to create download folder")
	}

	results := make([]DownloadResult, 0, len(announcements))
	for i, announcement := range announcements {
		result := d.downloadFile(ctx, announcement, folder)
		results = append(results, result)

		if result.Success {
			d.log.Info("downloaded report",
				"company", announcement.Name,
				"symbol", announcement.Symbol,
				"file", result.Filename,
				"bytes", result.FileSize,
			)
		} else {
			d.log.Warn("download failed",
				"company", announcement.Name,
				"symbol", announcement.Symbol,
				"error", result.Error,
			)
		}

		// Stay polite to the CDN between files.
		if i < len(announcements)-1 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(d.delay):
			}
		}
	}

	logPath := filepath.Join(d.reportsDir, fmt.Sprintf("download_log_%s.json", time.Now().Format("20060102_150405")))
	if err := WriteJSON(logPath, results); err != nil {
		d.log.Warn("failed to write download log", "error", err)
	}

	return results, nil
}

func (d *Downloader) downloadFile(ctx context.Context, announcement cse.FinancialAnnouncement, folder string) DownloadResult {
	result := DownloadResult{
		AnnouncementID: announcement.ID,
		CompanyName:    announcement.Name,
		Symbol:         announcement.Symbol,
		FileText:       announcement.FileText,
		UploadedDate:   announcement.UploadedDate,
	}

	fullURL, err := joinURL(d.cdnBase, announcement.Path)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.URL = fullURL

	ext := filepath.Ext(announcement.Path)
	if ext == "" {
		ext = ".pdf"
	}
	filename := fmt.Sprintf("%s_%s_%s_%s%s",
		SanitizeFilename(announcement.Name),
		SanitizeFilename(announcement.Symbol),
		SanitizeFilename(announcement.FileText),
		time.Now().Format("20060102_150405"),
		ext,
	)
	localPath := filepath.Join(folder, filename)

	var body []byte
	err = withRetry(ctx, d.retry, func(ctx context.Context) (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return false, err
		}
		req.Header.Set("User-Agent", d.userAgent)

		resp, err := d.httpClient.Do(req)
		if err != nil {
			return true, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
			return retryable, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, fullURL)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return true, err
		}
		return false, nil
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if err := os.WriteFile(localPath, body, 0644); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	result.Filename = filename
	result.LocalPath = localPath
	result.FileSize = int64(len(body))
	return result
}

func joinURL(base, path string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	return u.ResolveReference(ref).String(), nil
}
