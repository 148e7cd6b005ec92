// Package pgxcasbin stores casbin policy lines in a PostgreSQL table through
// pgx and propagates policy changes between processes with LISTEN/NOTIFY.
package pgxcasbin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/persist"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
	"go.uber.org/atomic"
)

const (
	// DefaultTableName matches the migration that creates the rule table.
	DefaultTableName = "admin_casbin_rules"

	fieldCount = 6
)

var (
	ErrRuleEmpty   = errors.New("pgxcasbin: rule is empty")
	ErrRuleTooLong = errors.New("pgxcasbin: rule exceeds field count")
	ErrEmptyPtype  = errors.New("pgxcasbin: ptype is empty")
	ErrFilterType  = errors.New("pgxcasbin: unsupported filter type")
)

// DB is the subset of pgxpool.Pool the adapter needs.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithTableName overrides DefaultTableName.
func WithTableName(name string) Option {
	return func(a *Adapter) {
		if name != "" {
			a.table = lo.SnakeCase(name)
		}
	}
}

// Filter selects the rows of one ptype whose fields starting at FieldIndex
// equal Values. Empty values match anything.
type Filter struct {
	Ptype      string
	FieldIndex int
	Values     []string
}

// Adapter implements persist.Adapter, persist.BatchAdapter and
// persist.FilteredAdapter.
type Adapter struct {
	db       DB
	table    string
	filtered *atomic.Bool
}

var (
	_ persist.Adapter         = (*Adapter)(nil)
	_ persist.BatchAdapter    = (*Adapter)(nil)
	_ persist.FilteredAdapter = (*Adapter)(nil)
)

func NewAdapter(db DB, opts ...Option) *Adapter {
	a := &Adapter{db: db, table: DefaultTableName, filtered: atomic.NewBool(false)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func columns() string {
	return strings.Join(lo.Times(fieldCount, func(i int) string { return "v" + strconv.Itoa(i) }), ", ")
}

func placeholders(offset int) string {
	return strings.Join(lo.Times(fieldCount+1, func(i int) string { return "$" + strconv.Itoa(i+offset) }), ", ")
}

func equalities(offset int) string {
	return strings.Join(lo.Times(fieldCount, func(i int) string {
		return "v" + strconv.Itoa(i) + " = $" + strconv.Itoa(i+offset)
	}), " and ")
}

// LoadPolicy reads every row into m.
func (a *Adapter) LoadPolicy(m model.Model) error {
	a.filtered.Store(false)
	return a.load(m, fmt.Sprintf("select ptype, %s from %s order by id", columns(), a.table))
}

// LoadFilteredPolicy reads only the rows matched by filter, which must be a
// Filter or a []Filter. A nil filter loads everything.
func (a *Adapter) LoadFilteredPolicy(m model.Model, filter any) error {
	var filters []Filter
	switch f := filter.(type) {
	case nil:
		return a.LoadPolicy(m)
	case Filter:
		filters = []Filter{f}
	case []Filter:
		filters = f
	default:
		return fmt.Errorf("%w: %T", ErrFilterType, filter)
	}

	for _, f := range filters {
		where, args, err := a.where(f.Ptype, f.FieldIndex, f.Values)
		if err != nil {
			return err
		}
		query := fmt.Sprintf("select ptype, %s from %s where %s order by id", columns(), a.table, where)
		if err := a.load(m, query, args...); err != nil {
			return err
		}
	}

	a.filtered.Store(true)
	return nil
}

// IsFiltered reports whether the last load was partial. Casbin refuses to
// SavePolicy from a partial model.
func (a *Adapter) IsFiltered() bool {
	return a.filtered.Load()
}

func (a *Adapter) load(m model.Model, query string, args ...any) error {
	ctx := context.Background()

	rows, err := a.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("pgxcasbin: load: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		row := make([]string, fieldCount+1)
		dest := lo.Map(row, func(_ string, i int) any { return &row[i] })
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("pgxcasbin: scan: %w", err)
		}
		if err := persist.LoadPolicyArray(trimTrailingEmpty(row), m); err != nil {
			return err
		}
	}

	return rows.Err()
}

// SavePolicy replaces the table content with the policy held by m.
func (a *Adapter) SavePolicy(m model.Model) (err error) {
	var lines [][]string
	for _, sec := range []string{"p", "g"} {
		for ptype, ast := range m[sec] {
			for _, rule := range ast.Policy {
				lines = append(lines, append([]string{ptype}, rule...))
			}
		}
	}

	ctx := context.Background()
	tx, err := a.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, rbErr)
		}
	}()

	if _, err = tx.Exec(ctx, "delete from "+a.table); err != nil {
		return err
	}
	for _, line := range lines {
		if err = a.insert(ctx, tx, line[0], line[1:]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (a *Adapter) AddPolicy(_ string, ptype string, rule []string) error {
	return a.insert(context.Background(), a.db, ptype, rule)
}

func (a *Adapter) RemovePolicy(_ string, ptype string, rule []string) error {
	return a.delete(context.Background(), a.db, ptype, rule)
}

// AddPolicies inserts all rules in one transaction.
func (a *Adapter) AddPolicies(_ string, ptype string, rules [][]string) error {
	return a.inTx(context.Background(), func(ctx context.Context, tx pgx.Tx) error {
		for _, rule := range rules {
			if err := a.insert(ctx, tx, ptype, rule); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *Adapter) RemovePolicies(_ string, ptype string, rules [][]string) error {
	return a.inTx(context.Background(), func(ctx context.Context, tx pgx.Tx) error {
		for _, rule := range rules {
			if err := a.delete(ctx, tx, ptype, rule); err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveFilteredPolicy deletes rows whose fields starting at fieldIndex
// match fieldValues. Empty values match anything.
func (a *Adapter) RemoveFilteredPolicy(_ string, ptype string, fieldIndex int, fieldValues ...string) error {
	where, args, err := a.where(ptype, fieldIndex, fieldValues)
	if err != nil {
		return err
	}
	_, err = a.db.Exec(context.Background(), "delete from "+a.table+" where "+where, args...)
	return err
}

// where builds the condition shared by filtered loads and deletes.
func (a *Adapter) where(ptype string, fieldIndex int, values []string) (string, []any, error) {
	if ptype == "" {
		return "", nil, ErrEmptyPtype
	}
	if fieldIndex < 0 || fieldIndex+len(values) > fieldCount {
		return "", nil, fmt.Errorf("%w: index %d with %d values", ErrRuleTooLong, fieldIndex, len(values))
	}

	conds := []string{"ptype = $1"}
	args := []any{ptype}
	for i, v := range values {
		if v == "" {
			continue
		}
		args = append(args, v)
		conds = append(conds, "v"+strconv.Itoa(fieldIndex+i)+" = $"+strconv.Itoa(len(args)))
	}

	return strings.Join(conds, " and "), args, nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (a *Adapter) insert(ctx context.Context, db execer, ptype string, rule []string) error {
	row, err := ruleRow(ptype, rule)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("insert into %s (ptype, %s) values (%s) on conflict do nothing", a.table, columns(), placeholders(1))
	_, err = db.Exec(ctx, query, row...)
	return err
}

func (a *Adapter) delete(ctx context.Context, db execer, ptype string, rule []string) error {
	row, err := ruleRow(ptype, rule)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("delete from %s where ptype = $1 and %s", a.table, equalities(2))
	_, err = db.Exec(ctx, query, row...)
	return err
}

func (a *Adapter) inTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) (err error) {
	tx, err := a.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, rbErr)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ruleRow pads rule to the fixed column count and prefixes ptype.
func ruleRow(ptype string, rule []string) ([]any, error) {
	if ptype == "" {
		return nil, ErrEmptyPtype
	}
	if len(rule) == 0 {
		return nil, ErrRuleEmpty
	}
	if len(rule) > fieldCount {
		return nil, fmt.Errorf("%w: %d > %d", ErrRuleTooLong, len(rule), fieldCount)
	}

	padded := make([]string, fieldCount)
	copy(padded, rule)

	return lo.ToAnySlice(append([]string{ptype}, padded...)), nil
}

func trimTrailingEmpty(rule []string) []string {
	last := len(rule) - 1
	for last >= 0 && rule[last] == "" {
		last--
	}
	return rule[:last+1]
}
