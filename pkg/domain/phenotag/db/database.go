package db

import (
	reviewdb "github.com/uw-gac/phenotag/pkg/domain/review/db"
	schemadb "github.com/uw-gac/phenotag/pkg/domain/schema/db"
	taggingdb "github.com/uw-gac/phenotag/pkg/domain/tagging/db"
	traitsdb "github.com/uw-gac/phenotag/pkg/domain/traits/db"
)

type Database interface {
	Tagging() taggingdb.Interface
	Review() reviewdb.Interface
	Traits() traitsdb.Interface
	Schema() schemadb.Interface
	Close() error
}
