package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/logger"
)

const (
	// DefaultTimeout is the HTTP request timeout for API calls.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxFileSize is the per-blob size cap in bytes.
	// Blobs above the cap are skipped.
	DefaultMaxFileSize = 1024 * 1024
)

// Config selects the repository slice to fetch.
type Config struct {
	// Repo is the repository reference as "owner/name".
	Repo string

	// Branch overrides the repository's default branch.
	Branch string

	// FilePatterns are glob patterns narrowing fetched paths.
	// Empty fetches every file.
	FilePatterns []string

	// MaxFileSize caps blob size in bytes. Zero applies DefaultMaxFileSize.
	MaxFileSize int64
}

// Fetcher downloads repository files and shapes them into ingestion
// inputs. One fetch covers one repository tree.
type Fetcher struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewFetcher creates a fetcher authenticated with a personal access
// token. An empty token works for public repositories at the lower
// anonymous rate limit.
func NewFetcher(ctx context.Context, token string) *Fetcher {
	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	httpClient.Timeout = DefaultTimeout
	return NewFetcherWithClient(httpClient)
}

// NewFetcherWithClient creates a fetcher on a caller-supplied
// http.Client.
func NewFetcherWithClient(httpClient *http.Client) *Fetcher {
	return &Fetcher{
		gh:          gh.NewClient(httpClient),
		rateLimiter: NewRateLimiter(),
	}
}

// Fetch walks the repository tree and returns one ingestion input per
// readable file, each carrying the given ownership tags. Binary files,
// blobs over the size cap and paths outside the configured patterns
// are skipped. File names keep their full repository path so files
// with the same base name in different directories stay distinct.
func (f *Fetcher) Fetch(ctx context.Context, cfg Config, tags domain.TenantTags) ([]domain.IngestInput, error) {
	owner, name, err := splitRepo(cfg.Repo)
	if err != nil {
		return nil, err
	}

	branch := cfg.Branch
	if branch == "" {
		branch, err = f.defaultBranch(ctx, owner, name)
		if err != nil {
			return nil, err
		}
	}

	tree, err := f.tree(ctx, owner, name, branch)
	if err != nil {
		return nil, err
	}

	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	inputs := make([]domain.IngestInput, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}

		path := entry.GetPath()
		if !matchesPatterns(path, cfg.FilePatterns) {
			continue
		}
		if isBinaryExtension(path) {
			continue
		}
		if int64(entry.GetSize()) > maxSize {
			logger.Debug("Skipping %s: %d bytes over the size cap", path, entry.GetSize())
			continue
		}

		content, err := f.blobContent(ctx, owner, name, entry.GetSHA())
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Unreadable blobs are skipped, not fatal
			logger.Warn("Skipping %s: %v", path, err)
			continue
		}

		inputs = append(inputs, domain.IngestInput{
			FileName: path,
			Content:  content,
			Tags:     tags,
		})
	}

	logger.Info("Fetched %d file(s) from %s@%s", len(inputs), cfg.Repo, branch)
	return inputs, nil
}

// defaultBranch looks up the repository's default branch.
func (f *Fetcher) defaultBranch(ctx context.Context, owner, name string) (string, error) {
	if err := f.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := f.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", f.wrapError(err, "get repo")
	}

	f.updateRateLimitFromResponse(resp)
	return repository.GetDefaultBranch(), nil
}

// tree fetches the repository tree recursively, so every file path
// arrives in one API call.
func (f *Fetcher) tree(ctx context.Context, owner, name, ref string) (*gh.Tree, error) {
	if err := f.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, resp, err := f.gh.Git.GetTree(ctx, owner, name, ref, true)
	if err != nil {
		return nil, f.wrapError(err, "get tree")
	}

	f.updateRateLimitFromResponse(resp)
	return tree, nil
}

// blobContent fetches a blob by SHA and decodes it.
func (f *Fetcher) blobContent(ctx context.Context, owner, name, sha string) ([]byte, error) {
	if err := f.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	blob, resp, err := f.gh.Git.GetBlob(ctx, owner, name, sha)
	if err != nil {
		return nil, f.wrapError(err, "get blob")
	}

	f.updateRateLimitFromResponse(resp)

	if blob.GetEncoding() == "base64" {
		// The API wraps base64 content in newlines
		content := strings.ReplaceAll(blob.GetContent(), "\n", "")
		return base64.StdEncoding.DecodeString(content)
	}

	return []byte(blob.GetContent()), nil
}

// updateRateLimitFromResponse updates the rate limiter from response
// headers.
func (f *Fetcher) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	f.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to this package's error types.
func (f *Fetcher) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			URL:        ghErr.Response.Request.URL.String(),
		}
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   f.rateLimiter.ResetTime(),
			Remaining: f.rateLimiter.Remaining(),
			Limit:     f.rateLimiter.Limit(),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
