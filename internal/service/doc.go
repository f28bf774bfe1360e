// Package service contains the sync business logic.
//
// SyncService orchestrates one sync pass: refresh the tracker session,
// fetch ratings and watched history, and per show build the canonical note,
// merge it into any stored note and persist the result. A failing show is
// logged and skipped so one bad entry cannot block the rest of the batch.
package service
