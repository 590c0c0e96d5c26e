package main

import (
	"github.com/questx-lab/taskreward/migration"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	return migration.Migrate(s.ctx)
}
