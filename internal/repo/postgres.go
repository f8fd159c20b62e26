package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ManivannanSenthilrajan/issueboard/internal/config"
	"github.com/ManivannanSenthilrajan/issueboard/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type DB struct {
	Pool *pgxpool.Pool
	log  zerolog.Logger
}

func MustOpen(ctx context.Context, cfg config.Config, log zerolog.Logger) *DB {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil { log.Fatal().Err(err).Msg("db connect failed") }
	ctx2, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(ctx2); err != nil { log.Fatal().Err(err).Msg("db ping failed") }
	return &DB{Pool: pool, log: log}
}

func (d *DB) Close() { d.Pool.Close() }

// Repository is an optional snapshot cache for fetched issues plus sync-run
// bookkeeping. The dashboard works without it; a nil *Repository is valid.
type Repository struct {
	db  *DB
	log zerolog.Logger
}

func NewRepository(d *DB, log zerolog.Logger) *Repository { return &Repository{db: d, log: log} }

func (r *Repository) TryAdvisoryLock(ctx context.Context, key int64) (bool, error) {
	var ok bool
	err := r.db.Pool.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", key).Scan(&ok)
	return ok, err
}

func (r *Repository) AdvisoryUnlock(ctx context.Context, key int64) error {
	var ok bool
	err := r.db.Pool.QueryRow(ctx, "SELECT pg_advisory_unlock($1)", key).Scan(&ok)
	if !ok && err == nil { return errors.New("advisory unlock returned false") }
	return err
}

// UpsertIssues writes the normalized snapshot, keyed by iid.
func (r *Repository) UpsertIssues(ctx context.Context, issues []domain.Issue) error {
	if len(issues) == 0 { return nil }
	batch := &pgx.Batch{}
	const q = `
        INSERT INTO issues(iid, gid, title, state, labels, team, status, sprint,
            workstream, project, author, assignee, created_at_gl, updated_at_gl,
            due_date, web_url)
        VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        ON CONFLICT(iid) DO UPDATE SET
            gid=EXCLUDED.gid,
            title=EXCLUDED.title,
            state=EXCLUDED.state,
            labels=EXCLUDED.labels,
            team=EXCLUDED.team,
            status=EXCLUDED.status,
            sprint=EXCLUDED.sprint,
            workstream=EXCLUDED.workstream,
            project=EXCLUDED.project,
            author=EXCLUDED.author,
            assignee=EXCLUDED.assignee,
            created_at_gl=EXCLUDED.created_at_gl,
            updated_at_gl=EXCLUDED.updated_at_gl,
            due_date=EXCLUDED.due_date,
            web_url=EXCLUDED.web_url`
	for _, i := range issues {
		var due any
		if strings.TrimSpace(i.DueDate) != "" { due = i.DueDate }
		batch.Queue(q, i.IID, i.ID, i.Title, i.State, i.Labels,
			i.Fields.Team, i.Fields.Status, i.Fields.Sprint, i.Fields.Workstream, i.Fields.Project,
			i.Author, i.Assignee, i.CreatedAt, i.UpdatedAt, due, i.WebURL)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range issues {
		if _, err := br.Exec(); err != nil { return err }
	}
	return nil
}

// Sync runs
func (r *Repository) StartSyncRun(ctx context.Context) (int64, error) {
	const q = `INSERT INTO sync_runs(started_at, success) VALUES(now(), false) RETURNING id`
	var id int64
	if err := r.db.Pool.QueryRow(ctx, q).Scan(&id); err != nil { return 0, err }
	return id, nil
}

func (r *Repository) FinishSyncRun(ctx context.Context, id int64, issuesFetched int, success bool, errStr string) error {
	const q = `UPDATE sync_runs SET finished_at=now(), issues_fetched=$2, success=$3, error=$4 WHERE id=$1`
	_, err := r.db.Pool.Exec(ctx, q, id, issuesFetched, success, errStr)
	return err
}

type LastSync struct {
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`
	IssuesFetched int        `json:"issues_fetched"`
	Success       bool       `json:"success"`
	Error         string     `json:"error"`
}

func (r *Repository) GetLastSync(ctx context.Context) (*LastSync, error) {
	const q = `SELECT started_at, finished_at, coalesce(issues_fetched,0),
        coalesce(success,false), coalesce(error,'')
        FROM sync_runs ORDER BY id DESC LIMIT 1`
	row := r.db.Pool.QueryRow(ctx, q)
	ls := &LastSync{}
	if err := row.Scan(&ls.StartedAt, &ls.FinishedAt, &ls.IssuesFetched, &ls.Success, &ls.Error); err != nil {
		return nil, err
	}
	return ls, nil
}
