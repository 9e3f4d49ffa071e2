// Package github fetches repository files for batch ingestion.
//
// A Fetcher walks one repository tree via the recursive Trees API,
// downloads each blob that passes the path patterns, the binary
// extension filter and the size cap, and shapes the results into
// ingestion inputs tagged with the caller's ownership tags. File names
// keep their full repository path.
//
// # Authentication
//
// A personal access token (classic or fine-grained) raises the rate
// limit to 5,000 requests per hour and grants access to private
// repositories. An empty token works for public repositories at the
// anonymous limit of 60 per hour.
//
// # Rate Limiting
//
// Requests pass through a dual-strategy limiter: a proactive token
// bucket at roughly 1.2 requests per second, plus reactive tracking of
// the X-RateLimit-Remaining and X-RateLimit-Reset headers. When the
// remaining quota runs low the limiter waits for the reset time.
package github
