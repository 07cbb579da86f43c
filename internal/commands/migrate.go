package commands

import (
	"fmt"
	"log"

	"foodzippy/backend/internal/pkg/repository/postgresql"
)

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            username text not null,
            password text not null,
            full_name text,
            role text not null,
            is_active boolean default true,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       2,
		Description: "Unique username for live accounts.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS users_username_live
            ON users (username)
            WHERE deleted_at IS NULL;`,
	},
	{
		Index:       3,
		Description: "Create table: vendors.",
		Query: `
        CREATE TABLE IF NOT EXISTS vendors (
            id serial primary key,
            name text not null,
            image jsonb,
            status text not null default 'pending',
            login_email text,
            full_address text not null,
            latitude double precision not null,
            longitude double precision not null,
            city text,
            services text[] default '{}',
            categories text[] default '{}',
            profile jsonb default '{}',

            review_follow_up_date timestamp,
            review_convincing_status text,
            review_behavior text,
            review_audio_url text,

            edit_requested boolean not null default false,
            edit_approved boolean not null default false,
            edit_request_date timestamp,
            edit_approval_date timestamp,
            edit_remark text not null default '',
            edit_seen_by_admin boolean not null default false,

            created_by_name text,
            created_by_user_id int,
            created_by_username text,
            created_by_role text,

            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       4,
		Description: "Sparse-unique login email across live vendors.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS vendors_login_email_live
            ON vendors (login_email)
            WHERE login_email IS NOT NULL AND deleted_at IS NULL;`,
	},
	{
		Index:       5,
		Description: "Create table: agent_attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS agent_attendance (
            id serial primary key,
            agent_id int not null references users(id),
            agent_name text,
            work_day timestamp not null,
            check_in timestamp not null,
            check_out timestamp,
            check_in_latitude double precision,
            check_in_longitude double precision,
            check_out_latitude double precision,
            check_out_longitude double precision,
            remark text,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       6,
		Description: "One session per agent per day.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS agent_attendance_agent_day
            ON agent_attendance (agent_id, work_day);`,
	},
	{
		Index:       7,
		Description: "Listing indexes for the admin views.",
		Query: `
        CREATE INDEX IF NOT EXISTS vendors_status_live
            ON vendors (status)
            WHERE deleted_at IS NULL;
        CREATE INDEX IF NOT EXISTS vendors_edit_pending
            ON vendors (edit_request_date DESC)
            WHERE edit_requested AND NOT edit_approved AND deleted_at IS NULL;
        CREATE INDEX IF NOT EXISTS agent_attendance_day
            ON agent_attendance (work_day);`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

// MigrateUP applies only the steps newer than the recorded version and
// remembers failures so a broken step is retried before moving on.
func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
