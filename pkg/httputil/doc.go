// Package httputil provides the HTTP client shared by every remote
// [storage.Source].
//
// # Overview
//
//   - [Client]: GET with default headers, status classification and
//     optional retry
//   - [Retry]: Automatic retry with exponential backoff
//
// # Status Handling
//
// [Client] maps responses onto two sentinel errors:
//
//   - 404 Not Found: [ErrNotFound]
//   - every other non-2xx status and transport failures: [ErrNetwork]
//
// 5xx responses and transport failures are additionally wrapped in
// [RetryableError] so that [Retry] attempts them again.
//
// # Retry
//
// Retries are opt-in. A Client built with [NewClient] performs exactly one
// attempt per call; [Client.WithRetry] enables exponential backoff:
//
//	client := httputil.NewClient(nil).WithRetry(3, 200*time.Millisecond)
//	data, err := client.GetBytes(ctx, url)
//
// # Configuration
//
// Default settings:
//
//   - Request timeout: 10 seconds
//   - Attempts: 1
//   - Maximum body size: 32 MiB
//
// [storage.Source]: github.com/matzehuels/layoutcfg/pkg/storage.Source
package httputil
