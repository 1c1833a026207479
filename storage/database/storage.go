package database

import (
	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/school"
	"github.com/trezcool/masomo/storage/database/boltdb"
	"github.com/trezcool/masomo/storage/database/inmem"
	"github.com/trezcool/masomo/storage/database/sqlx"
)

// OpenStorage opens the configured storage engine. SQL databases are migrated first.
func OpenStorage(conf *core.Config) (school.Storage, error) {
	switch conf.Database.Engine {
	case core.EngineMemory:
		return inmemdb.NewSchoolRepository(inmemdb.Open()), nil
	case core.EngineBolt:
		return boltdb.Open(conf.Database.Path)
	case core.EngineSQLite, core.EnginePostgres:
		db, err := Open(conf)
		if err != nil {
			return nil, err
		}
		if err = Migrate(db, conf.Database.Engine); err != nil {
			_ = db.Close()
			return nil, err
		}
		return sqlxrepos.NewSchoolRepository(db), nil
	default:
		return nil, errors.Errorf("unknown database engine %q", conf.Database.Engine)
	}
}
