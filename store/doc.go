/*
Package store holds parsed lottery results in memory and persists them as
flat JSON snapshots.

# Aggregate

One Aggregate per source document: metadata, the entries of its single
format, and two derived lookup indexes (application code → position, masked
partial ID → position). Indexes are built eagerly at construction and after a
JSON load; they are never serialized.

# Store

The Store maps filename → Aggregate and keeps process-wide reverse indexes
(application code → filenames, masked partial ID → filenames):

	s, _ := store.New(dataDir)
	_ = s.LoadFromDisk()
	_ = s.AddDocument(agg)
	hits := s.FindByApplicationCode("8786101582146")

Re-adding a filename overwrites: the old aggregate's keys are pruned from the
reverse indexes and the running entry counter is netted.

# Persistence

One JSON file per document under <dataDir>/results, plus metadata.json with
last_update, total_entries, and total_files. Writes are fire-and-forget per
call; on reload the per-document files are the source of truth and counters
are recomputed from them.

# Concurrency

A single RWMutex serializes writes; lookups and statistics reads may run
concurrently with each other.
*/
package store
