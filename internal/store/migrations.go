package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trips (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	cloud_id    TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL,
	destination TEXT NOT NULL DEFAULT '',
	start_date  INTEGER NOT NULL,
	end_date    INTEGER NOT NULL,
	budget      REAL NOT NULL DEFAULT 0,
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL,
	synced      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS activities (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	trip_id         INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
	cloud_id        TEXT NOT NULL DEFAULT '',
	title           TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	location        TEXT NOT NULL DEFAULT '',
	date_time       INTEGER NOT NULL,
	local_image_ref TEXT NOT NULL DEFAULT '',
	image_url       TEXT NOT NULL DEFAULT '',
	latitude        REAL NOT NULL DEFAULT 0,
	longitude       REAL NOT NULL DEFAULT 0,
	created_at      INTEGER NOT NULL,
	updated_at      INTEGER NOT NULL,
	synced          INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS expenses (
	id        TEXT PRIMARY KEY,
	trip_id   INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
	cloud_id  TEXT NOT NULL DEFAULT '',
	title     TEXT NOT NULL,
	amount    REAL NOT NULL DEFAULT 0,
	category  TEXT NOT NULL DEFAULT 'other',
	timestamp INTEGER NOT NULL,
	note      TEXT NOT NULL DEFAULT '',
	synced    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_activities_trip_id ON activities(trip_id);
CREATE INDEX IF NOT EXISTS idx_activities_synced ON activities(synced);
CREATE INDEX IF NOT EXISTS idx_expenses_trip_id ON expenses(trip_id);
CREATE INDEX IF NOT EXISTS idx_trips_synced ON trips(synced);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
