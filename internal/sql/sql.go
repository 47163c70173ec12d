package sql

import "embed"

// Migrations holds the audit ledger schema, applied in filename order.
//
//go:embed migrations
var Migrations embed.FS

//go:embed queries/insert_run.sql
var InsertRun string

//go:embed queries/finish_run.sql
var FinishRun string

//go:embed queries/insert_document.sql
var InsertDocument string
