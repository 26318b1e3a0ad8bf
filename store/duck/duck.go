// Package duck keeps login and logout activity in an in-memory duckdb for summaries.
package duck

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	_ "github.com/marcboeker/go-duckdb"

	nt "dasbor/entity"
)

const schema = `
	CREATE TABLE activity (
		id INTEGER,
		action VARCHAR NOT NULL,
		ts TIMESTAMP,
		device_info VARCHAR,
		device_class VARCHAR NOT NULL,
		ip_address VARCHAR,
		user_timezone VARCHAR
	)
`

type Duck struct {
	db     *sql.DB
	logger nt.Logger
}

func New(lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open memo duck")
		return
	}

	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		err = errors.Wrapf(err, "failed to create table")
		return
	}

	_, err = db.Exec("CREATE INDEX idx_ts ON activity(ts)")
	if err != nil {
		db.Close()
		err = errors.Wrapf(err, "failed to create index")
		return
	}

	dk = &Duck{
		db:     db,
		logger: lgr,
	}
	return
}

func (dk *Duck) Close() {
	dk.db.Close()
}

// Replace swaps the stored activity for entries.
func (dk *Duck) Replace(ctx context.Context, entries []nt.LogEntry) (err error) {

	tx, err := dk.db.BeginTx(ctx, nil)
	if err != nil {
		err = errors.Wrapf(err, "failed to begin tx")
		return
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, "DELETE FROM activity")
	if err != nil {
		err = errors.Wrapf(err, "failed to clear activity")
		return
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO activity (id, action, ts, device_info, device_class, ip_address, user_timezone)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		err = errors.Wrapf(err, "failed to prepare insert")
		return
	}
	defer stmt.Close()

	skipped := 0
	for _, entry := range entries {
		var ts any
		parsed, perr := nt.Value{Raw: entry.Timestamp}.Time()
		if perr == nil {
			ts = parsed.UTC()
		} else {
			skipped++
		}

		_, err = stmt.ExecContext(ctx,
			entry.Id,
			entry.Action,
			ts,
			entry.DeviceInfo,
			nt.DeviceClass(entry.DeviceInfo),
			entry.IpAddress,
			entry.UserTimezone,
		)
		if err != nil {
			err = errors.Wrapf(err, "failed to insert entry %d", entry.Id)
			return
		}
	}

	err = tx.Commit()
	if err != nil {
		err = errors.Wrapf(err, "failed to commit")
		return
	}

	dk.logger.Info(ctx, "activity loaded", "count", len(entries), "untimed", skipped)
	return
}

// ByAction returns entries for action, newest first.
func (dk *Duck) ByAction(ctx context.Context, action string) (entries []nt.LogEntry, err error) {

	rows, err := dk.db.QueryContext(ctx, `
		SELECT id, action, ts, device_info, ip_address, user_timezone
		FROM activity
		WHERE action = ?
		ORDER BY ts DESC NULLS LAST, id DESC
	`, action)
	if err != nil {
		err = errors.Wrapf(err, "failed to query activity")
		return
	}
	defer rows.Close()

	entries = []nt.LogEntry{}
	for rows.Next() {
		var entry nt.LogEntry
		var ts sql.NullTime
		var info, ip, tz sql.NullString

		err = rows.Scan(&entry.Id, &entry.Action, &ts, &info, &ip, &tz)
		if err != nil {
			err = errors.Wrapf(err, "failed to scan row")
			return
		}

		if ts.Valid {
			entry.Timestamp = ts.Time.UTC().Format(time.RFC3339)
		}
		entry.DeviceInfo = info.String
		entry.IpAddress = ip.String
		entry.UserTimezone = tz.String

		entries = append(entries, entry)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating rows")
	return
}

// Daily counts logins and logouts per day for the days ending with the day of now.
// Days without activity are included with zero counts, oldest first.
func (dk *Duck) Daily(ctx context.Context, now time.Time, days int) (counts []nt.DayCount, err error) {

	today := now.UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))

	rows, err := dk.db.QueryContext(ctx, `
		SELECT
			strftime(ts, '%Y-%m-%d') AS day,
			count(*) FILTER (WHERE action = 'login') AS login,
			count(*) FILTER (WHERE action = 'logout') AS logout
		FROM activity
		WHERE ts >= ? AND ts < ?
		GROUP BY day
	`, since, today.AddDate(0, 0, 1))
	if err != nil {
		err = errors.Wrapf(err, "failed to query daily activity")
		return
	}
	defer rows.Close()

	byDay := map[string]nt.DayCount{}
	for rows.Next() {
		var count nt.DayCount
		err = rows.Scan(&count.Day, &count.Login, &count.Logout)
		if err != nil {
			err = errors.Wrapf(err, "failed to scan row")
			return
		}
		byDay[count.Day] = count
	}
	err = rows.Err()
	if err != nil {
		err = errors.Wrapf(err, "error iterating rows")
		return
	}

	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format(time.DateOnly)
		count, ok := byDay[day]
		if !ok {
			count = nt.DayCount{Day: day}
		}
		counts = append(counts, count)
	}
	return
}

// Devices counts entries per device class, most common first.
func (dk *Duck) Devices(ctx context.Context) (counts []nt.DeviceCount, err error) {

	rows, err := dk.db.QueryContext(ctx, `
		SELECT device_class, count(*) AS n
		FROM activity
		GROUP BY device_class
		ORDER BY n DESC, device_class
	`)
	if err != nil {
		err = errors.Wrapf(err, "failed to query devices")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var count nt.DeviceCount
		err = rows.Scan(&count.Class, &count.Count)
		if err != nil {
			err = errors.Wrapf(err, "failed to scan row")
			return
		}
		counts = append(counts, count)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating rows")
	return
}
