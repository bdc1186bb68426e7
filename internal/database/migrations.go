package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1HolidayYears,
}

// migrationV1HolidayYears stores each published year and its holidays.
//
// A year is always replaced as a whole: rows in holidays belong to exactly
// one holiday_years row and are deleted with it.
const migrationV1HolidayYears = `
CREATE TABLE IF NOT EXISTS holiday_years (
    year INTEGER PRIMARY KEY,
    holiday_count INTEGER NOT NULL,
    published_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS holidays (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    year INTEGER NOT NULL,

    -- Canonical YYYY-MM-DD; one holiday per date
    date TEXT NOT NULL UNIQUE,

    -- Swedish display name, e.g. 'påskdagen'
    name TEXT NOT NULL,

    kind TEXT NOT NULL CHECK (kind IN ('public', 'eve')),

    FOREIGN KEY (year) REFERENCES holiday_years(year) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_holidays_year ON holidays(year);
`
