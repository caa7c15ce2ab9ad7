package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	// sqlite driver.
	_ "modernc.org/sqlite"

	"github.com/esummer9/mykeyword/common/log"
	"github.com/esummer9/mykeyword/server/profile"
	"github.com/esummer9/mykeyword/server/version"
)

//go:embed migration
var migrationFS embed.FS

//go:embed seed
var seedFS embed.FS

type DB struct {
	// sqlite db connection instance
	DBInstance *sql.DB
	profile    *profile.Profile
}

// NewDB returns a new instance of DB associated with the given datasource name.
func NewDB(profile *profile.Profile) *DB {
	db := &DB{
		profile: profile,
	}
	return db
}

func (db *DB) Open(ctx context.Context) (err error) {
	// Ensure a DSN is set before attempting to open the database.
	if db.profile.DSN == "" {
		return fmt.Errorf("dsn required")
	}

	// Connect to the database with some sane settings:
	// - No shared-cache: it's obsolete; WAL journal mode is a better solution.
	// - Foreign key constraints are on so keyword rows cannot point to missing memos.
	// - Busy timeout lets concurrent writers wait instead of failing with SQLITE_BUSY.
	sqliteDB, err := sql.Open("sqlite", db.profile.DSN+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open db with dsn: %s, err: %w", db.profile.DSN, err)
	}
	db.DBInstance = sqliteDB

	if db.profile.Mode == "prod" {
		currentVersion := version.GetCurrentVersion(db.profile.Mode)
		_, err := os.Stat(db.profile.DSN)
		if err != nil {
			// If db file not exists, we should create a new one with latest schema.
			if errors.Is(err, os.ErrNotExist) {
				if err := db.applyLatestSchema(ctx); err != nil {
					return fmt.Errorf("failed to apply latest schema, err: %w", err)
				}
				// Upsert the newest version to migration_history.
				if _, err := db.UpsertMigrationHistory(ctx, &MigrationHistoryUpsert{
					Version: currentVersion,
				}); err != nil {
					return fmt.Errorf("failed to upsert migration history, err: %w", err)
				}
			} else {
				return fmt.Errorf("failed to get db file stat, err: %w", err)
			}
		} else {
			// If db file exists, we should check if we need to migrate the database.
			if err := db.ensureMigrationHistory(ctx); err != nil {
				return err
			}
			migrationHistoryList, err := db.FindMigrationHistoryList(ctx, &MigrationHistoryFind{})
			if err != nil {
				return fmt.Errorf("failed to find migration history, err: %w", err)
			}
			// A file without history predates versioning; it holds the first schema.
			latestMigrationHistoryVersion := "0.0.0"
			if len(migrationHistoryList) > 0 {
				migrationHistoryVersionList := []string{}
				for _, migrationHistory := range migrationHistoryList {
					migrationHistoryVersionList = append(migrationHistoryVersionList, migrationHistory.Version)
				}
				sort.Sort(version.SortVersion(migrationHistoryVersionList))
				latestMigrationHistoryVersion = migrationHistoryVersionList[len(migrationHistoryVersionList)-1]
			}

			if version.IsVersionGreaterThan(version.GetSchemaVersion(currentVersion), latestMigrationHistoryVersion) {
				if err := db.migrate(ctx, currentVersion, latestMigrationHistoryVersion); err != nil {
					return err
				}
			}
		}
	} else {
		// In non-prod mode, we should always migrate the database.
		if _, err := os.Stat(db.profile.DSN); errors.Is(err, os.ErrNotExist) {
			if err := db.applyLatestSchema(ctx); err != nil {
				return fmt.Errorf("failed to apply latest schema: %w", err)
			}
			// In demo mode, we should seed the database.
			if db.profile.Mode == "demo" {
				if err := db.seed(ctx); err != nil {
					return fmt.Errorf("failed to seed: %w", err)
				}
			}
		}
	}

	return nil
}

func (db *DB) migrate(ctx context.Context, currentVersion, latestMigrationHistoryVersion string) error {
	minorVersionList := getMinorVersionList()

	// backup the raw database file before migration
	rawBytes, err := os.ReadFile(db.profile.DSN)
	if err != nil {
		return fmt.Errorf("failed to read raw database file, err: %w", err)
	}
	backupDBFilePath := fmt.Sprintf("%s/mykeyword_%s_%d_backup.db", db.profile.Data, db.profile.Version, time.Now().Unix())
	if err := os.WriteFile(backupDBFilePath, rawBytes, 0644); err != nil {
		return fmt.Errorf("failed to write raw database file, err: %w", err)
	}
	log.Info("start migrate", zap.String("from", latestMigrationHistoryVersion), zap.String("to", currentVersion))

	for _, minorVersion := range minorVersionList {
		normalizedVersion := minorVersion + ".0"
		if version.IsVersionGreaterThan(normalizedVersion, latestMigrationHistoryVersion) && version.IsVersionGreaterOrEqualThan(currentVersion, normalizedVersion) {
			log.Info("applying migration", zap.String("version", normalizedVersion))
			if err := db.applyMigrationForMinorVersion(ctx, minorVersion); err != nil {
				return fmt.Errorf("failed to apply minor version migration: %w", err)
			}
		}
	}

	log.Info("end migrate")
	// remove the created backup db file after migrate succeed
	if err := os.Remove(backupDBFilePath); err != nil {
		log.Warn("failed to remove temp database file", zap.Error(err))
	}
	return nil
}

const (
	latestSchemaFileName = "LATEST__SCHEMA.sql"
)

func (db *DB) applyLatestSchema(ctx context.Context) error {
	schemaMode := "dev"
	if db.profile.Mode == "prod" {
		schemaMode = "prod"
	}
	latestSchemaPath := fmt.Sprintf("%s/%s/%s", "migration", schemaMode, latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return fmt.Errorf("failed to read latest schema %q, error %w", latestSchemaPath, err)
	}
	stmt := string(buf)
	if err := db.execute(ctx, stmt); err != nil {
		return fmt.Errorf("migrate error: statement:%s err=%w", stmt, err)
	}
	return nil
}

func (db *DB) applyMigrationForMinorVersion(ctx context.Context, minorVersion string) error {
	filenames, err := fs.Glob(migrationFS, fmt.Sprintf("%s/%s/*.sql", "migration/prod", minorVersion))
	if err != nil {
		return err
	}

	sort.Strings(filenames)

	// Loop over all migration files and execute them in order.
	for _, filename := range filenames {
		buf, err := migrationFS.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read minor version migration file, filename=%s err=%w", filename, err)
		}
		stmt := string(buf)
		if err := db.execute(ctx, stmt); err != nil {
			return fmt.Errorf("migrate error: statement:%s err=%w", stmt, err)
		}
	}

	tx, err := db.DBInstance.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if backfill, ok := migrationBackfillList[minorVersion]; ok {
		if err := backfill(ctx, tx, db.profile.Location()); err != nil {
			return fmt.Errorf("failed to backfill minor version %s, err: %w", minorVersion, err)
		}
	}

	// upsert the newest version to migration_history
	version := minorVersion + ".0"
	if _, err = upsertMigrationHistory(ctx, tx, &MigrationHistoryUpsert{
		Version: version,
	}); err != nil {
		return fmt.Errorf("failed to upsert migration history with version: %s, err: %w", version, err)
	}

	return tx.Commit()
}

// migrationBackfillList holds data fixes that need Go, run after the SQL of a minor version.
var migrationBackfillList = map[string]func(ctx context.Context, tx *sql.Tx, loc *time.Location) error{
	"0.3": backfillRegDateTime,
}

// backfillRegDateTime fills reg_dt and reg_tm of existing memos in the configured timezone.
func backfillRegDateTime(ctx context.Context, tx *sql.Tx, loc *time.Location) error {
	rows, err := tx.QueryContext(ctx, `SELECT id, reg_ts FROM memo WHERE reg_ts > 0 AND reg_dt = ''`)
	if err != nil {
		return err
	}
	type regTime struct {
		id    int
		regTs int64
	}
	list := []regTime{}
	for rows.Next() {
		var item regTime
		if err := rows.Scan(&item.id, &item.regTs); err != nil {
			rows.Close()
			return err
		}
		list = append(list, item)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, item := range list {
		t := time.UnixMilli(item.regTs).In(loc)
		if _, err := tx.ExecContext(ctx, `UPDATE memo SET reg_dt = ?, reg_tm = ? WHERE id = ?`, t.Format("2006-01-02"), t.Format("15:04:05"), item.id); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) seed(ctx context.Context) error {
	filenames, err := fs.Glob(seedFS, fmt.Sprintf("%s/*.sql", "seed"))
	if err != nil {
		return fmt.Errorf("failed to read seed files, err: %w", err)
	}

	sort.Strings(filenames)

	// Loop over all seed files and execute them in order.
	for _, filename := range filenames {
		buf, err := seedFS.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read seed file, filename=%s err=%w", filename, err)
		}
		stmt := string(buf)
		if err := db.execute(ctx, stmt); err != nil {
			return fmt.Errorf("seed error: statement:%s %w", stmt, err)
		}
	}
	return nil
}

// execute runs a single SQL statement within a transaction.
func (db *DB) execute(ctx context.Context, stmt string) error {
	tx, err := db.DBInstance.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}

	return tx.Commit()
}

// minorDirRegexp is a regular expression for minor version directory.
var minorDirRegexp = regexp.MustCompile(`^migration/prod/[0-9]+\.[0-9]+$`)

func getMinorVersionList() []string {
	minorVersionList := []string{}

	if err := fs.WalkDir(migrationFS, "migration/prod", func(path string, file fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if file.IsDir() && minorDirRegexp.MatchString(path) {
			minorVersionList = append(minorVersionList, file.Name())
		}

		return nil
	}); err != nil {
		panic(err)
	}

	sort.Sort(version.SortVersion(minorVersionList))

	return minorVersionList
}
