// Package manager owns the host sessions lingod creates: at most one per
// feature for the language detector and summarizer, and one per
// (source, target) pair for the translator. It is structured into small files
// by concern:
//
//   - manager.go: core Manager type, constructor, session listing.
//   - config.go: Config and package defaults; New applies defaults.
//   - types.go: Key and session bookkeeping types.
//   - errors.go: error types and helpers (IsFeatureUnavailable, IsTooBusy).
//   - ensure.go: Ensure/Download and the lazy create + download path.
//   - admission.go: per-session queueing of invocations.
//   - invoke.go: Detect, Summarize and Translate entry points.
//   - metrics.go: Prometheus collectors.
//   - close.go: session release on shutdown.
//
// Sessions are created lazily on first use and then reused for the
// lifetime of the Manager. Concurrent ensures for the same key are coalesced
// so a host never sees duplicate creations. Callers never receive session
// handles; they invoke features through the Manager.
package manager
