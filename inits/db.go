package inits

import (
	"github.com/hashicorp/go-memdb"
)

const SessionTable = "form_session"

func DBInit() (*memdb.MemDB, error) {

	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			SessionTable: {
				Name: SessionTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:         "id",
						Unique:       true,
						Indexer:      &memdb.StringFieldIndex{Field: "ID"},
						AllowMissing: false,
					},
					"sid": {
						Name:         "sid",
						Unique:       false,
						Indexer:      &memdb.StringFieldIndex{Field: "SID"},
						AllowMissing: false,
					},
					"expiry": {
						Name:         "expiry",
						Unique:       false,
						Indexer:      &memdb.UintFieldIndex{Field: "ExpiresAt"},
						AllowMissing: false,
					},
				},
			},
		},
	}

	return memdb.NewMemDB(schema)
}
