package ent

// The generated client is not checked in; internal/store builds its queries
// with ent's SQL builders and declares the matching tables in migrate.go.
//go:generate go run -mod=mod entgo.io/ent/cmd/ent generate ./schema
