// Package bots persists the client's bot list as a single JSON document in
// the local metadata store.
//
// # Data Model
//
// The whole list lives under one key ("bots") together with the time of the
// last write ("bots_saved_at", RFC 3339). Writes replace both keys inside one
// transaction. There is no per-user partitioning and no merge: when several
// client processes share a database the last writer wins.
//
// Typical Usage
//
//	repo := bots.NewSQLiteRepository(db)
//	list, _ := repo.Load(ctx)
//	_ = repo.Save(ctx, append(list, b))
package bots
