package postgres

import "embed"

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"

// Migrations holds the goose migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
