// Package domain defines the core business entities and interfaces for shownotes.
//
// This package contains the show, watch-history and rating models, the
// collaborator interfaces for the tracking service and the notes vault,
// and the sync-state repository contract. Remote-facing interfaces accept
// context for cancellation and timeout support.
package domain
