// Command migrate applies the database schema. It is idempotent and safe to
// re-run against an existing database.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/cash-advance-monitoring/cam-api/pkg/config"
	"github.com/cash-advance-monitoring/cam-api/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS staff (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	staff_code TEXT NOT NULL,
	job_role TEXT NOT NULL DEFAULT '',
	department TEXT,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	is_verified BOOLEAN NOT NULL DEFAULT FALSE,
	last_login TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS staff_email_unique ON staff (LOWER(email));
CREATE UNIQUE INDEX IF NOT EXISTS staff_staff_code_unique ON staff (UPPER(staff_code));

CREATE TABLE IF NOT EXISTS cash_advances (
	id UUID PRIMARY KEY,
	staff_id UUID NOT NULL,
	staff_name TEXT NOT NULL,
	staff_email TEXT NOT NULL,
	purpose TEXT NOT NULL,
	amount NUMERIC(14,2) NOT NULL,
	currency TEXT NOT NULL DEFAULT 'NGN',
	needed_by TIMESTAMPTZ NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	project_code TEXT,
	payment_method TEXT NOT NULL DEFAULT 'bank_transfer',
	status TEXT NOT NULL DEFAULT 'pending',
	approved_by UUID,
	approved_at TIMESTAMPTZ,
	rejection_reason TEXT,
	disbursed_at TIMESTAMPTZ,
	retired_at TIMESTAMPTZ,
	retirement_notes TEXT,
	attachments JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS cash_advances_staff_id_idx ON cash_advances (staff_id);
CREATE INDEX IF NOT EXISTS cash_advances_status_idx ON cash_advances (status);
CREATE INDEX IF NOT EXISTS cash_advances_created_at_idx ON cash_advances (created_at DESC);
`

func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "overall migration timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}
	log.Printf("schema applied to %s", cfg.Database.Name)
}
