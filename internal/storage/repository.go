// Package storage implements the store ports on SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mdfinancas/internal/core"
	"mdfinancas/internal/store"

	_ "modernc.org/sqlite"
)

const (
	dateLayout = "2006-01-02"
	tsLayout   = time.RFC3339
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Months

func (r *SQLiteRepository) ListMonths(ctx context.Context) ([]core.Month, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, year, status, final_balance_cents, created_at
		 FROM months ORDER BY year DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list months: %w", err)
	}
	defer rows.Close()

	var out []core.Month
	for rows.Next() {
		m, err := scanMonth(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetMonth(ctx context.Context, id int64) (core.Month, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, year, status, final_balance_cents, created_at
		 FROM months WHERE id = ?`, id)
	m, err := scanMonth(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Month{}, fmt.Errorf("month %d: %w", id, core.ErrNotFound)
	}
	return m, err
}

func (r *SQLiteRepository) FindMonth(ctx context.Context, name string, year int) (core.Month, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, year, status, final_balance_cents, created_at
		 FROM months WHERE name = ? AND year = ?`, name, year)
	m, err := scanMonth(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Month{}, fmt.Errorf("month %s/%d: %w", name, year, core.ErrNotFound)
	}
	return m, err
}

func (r *SQLiteRepository) CreateMonth(ctx context.Context, m core.Month) (core.Month, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO months (name, year, status, final_balance_cents, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Year, string(m.Status), nullCents(m.FinalBalance), m.CreatedAt.Format(tsLayout))
	if err != nil {
		if isStatusCheckViolation(err) {
			return core.Month{}, fmt.Errorf("insert month %s/%d: %w", m.Name, m.Year, store.ErrStatusRejected)
		}
		return core.Month{}, fmt.Errorf("insert month %s/%d: %w", m.Name, m.Year, err)
	}
	m.ID, err = res.LastInsertId()
	if err != nil {
		return core.Month{}, fmt.Errorf("month insert id: %w", err)
	}
	return m, nil
}

func (r *SQLiteRepository) SetMonthStatus(ctx context.Context, id int64, status core.MonthStatus, finalBalance *core.Money) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE months SET status = ?, final_balance_cents = ? WHERE id = ?`,
		string(status), nullCents(finalBalance), id)
	if err != nil {
		return fmt.Errorf("update month %d status: %w", id, err)
	}
	return requireRow(res, "month", id)
}

// Revenues

func (r *SQLiteRepository) ListRevenues(ctx context.Context, monthID int64) ([]core.RevenueEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, month_id, description, amount_cents, date, created_at
		 FROM revenues WHERE month_id = ? ORDER BY date`, monthID)
	if err != nil {
		return nil, fmt.Errorf("list revenues: %w", err)
	}
	defer rows.Close()

	var out []core.RevenueEntry
	for rows.Next() {
		var (
			e        core.RevenueEntry
			date, ts string
		)
		if err := rows.Scan(&e.ID, &e.MonthID, &e.Description, &e.Amount.Cents, &date, &ts); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		e.Date, e.CreatedAt = parseDate(date), parseTS(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateRevenue(ctx context.Context, e core.RevenueEntry) (core.RevenueEntry, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO revenues (month_id, description, amount_cents, date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.MonthID, e.Description, e.Amount.Cents, e.Date.Format(dateLayout), e.CreatedAt.Format(tsLayout))
	if err != nil {
		return core.RevenueEntry{}, fmt.Errorf("insert revenue: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return e, nil
}

func (r *SQLiteRepository) UpdateRevenue(ctx context.Context, e core.RevenueEntry) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE revenues SET description = ?, amount_cents = ?, date = ? WHERE id = ?`,
		e.Description, e.Amount.Cents, e.Date.Format(dateLayout), e.ID)
	if err != nil {
		return fmt.Errorf("update revenue %d: %w", e.ID, err)
	}
	return requireRow(res, "revenue", e.ID)
}

func (r *SQLiteRepository) DeleteRevenue(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM revenues WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete revenue %d: %w", id, err)
	}
	return requireRow(res, "revenue", id)
}

// Fixed expenses

func (r *SQLiteRepository) ListFixedExpenses(ctx context.Context, monthID int64) ([]core.FixedExpense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, month_id, description, amount_cents, paid, date, created_at
		 FROM fixed_expenses WHERE month_id = ? ORDER BY date`, monthID)
	if err != nil {
		return nil, fmt.Errorf("list fixed expenses: %w", err)
	}
	defer rows.Close()

	var out []core.FixedExpense
	for rows.Next() {
		var (
			e        core.FixedExpense
			date, ts string
		)
		if err := rows.Scan(&e.ID, &e.MonthID, &e.Description, &e.Amount.Cents, &e.Paid, &date, &ts); err != nil {
			return nil, fmt.Errorf("scan fixed expense: %w", err)
		}
		e.Date, e.CreatedAt = parseDate(date), parseTS(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateFixedExpense(ctx context.Context, e core.FixedExpense) (core.FixedExpense, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO fixed_expenses (month_id, description, amount_cents, paid, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.MonthID, e.Description, e.Amount.Cents, e.Paid, e.Date.Format(dateLayout), e.CreatedAt.Format(tsLayout))
	if err != nil {
		return core.FixedExpense{}, fmt.Errorf("insert fixed expense: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return e, nil
}

func (r *SQLiteRepository) UpdateFixedExpense(ctx context.Context, e core.FixedExpense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fixed_expenses SET description = ?, amount_cents = ?, paid = ?, date = ? WHERE id = ?`,
		e.Description, e.Amount.Cents, e.Paid, e.Date.Format(dateLayout), e.ID)
	if err != nil {
		return fmt.Errorf("update fixed expense %d: %w", e.ID, err)
	}
	return requireRow(res, "fixed expense", e.ID)
}

func (r *SQLiteRepository) DeleteFixedExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fixed_expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete fixed expense %d: %w", id, err)
	}
	return requireRow(res, "fixed expense", id)
}

func (r *SQLiteRepository) SetFixedExpensePaid(ctx context.Context, id int64, paid bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE fixed_expenses SET paid = ? WHERE id = ?`, paid, id)
	if err != nil {
		return fmt.Errorf("set fixed expense %d paid: %w", id, err)
	}
	return requireRow(res, "fixed expense", id)
}

// Pix credit expenses

func (r *SQLiteRepository) ListPixExpenses(ctx context.Context, monthID int64) ([]core.PixCreditExpense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, month_id, description, original_amount_cents, surcharge_pct, final_amount_cents, paid, date, created_at
		 FROM pix_expenses WHERE month_id = ? ORDER BY date`, monthID)
	if err != nil {
		return nil, fmt.Errorf("list pix expenses: %w", err)
	}
	defer rows.Close()

	var out []core.PixCreditExpense
	for rows.Next() {
		var (
			e             core.PixCreditExpense
			pct, date, ts string
		)
		if err := rows.Scan(&e.ID, &e.MonthID, &e.Description, &e.OriginalAmount.Cents, &pct,
			&e.FinalAmount.Cents, &e.Paid, &date, &ts); err != nil {
			return nil, fmt.Errorf("scan pix expense: %w", err)
		}
		e.SurchargePct, err = core.PercentFromString(pct)
		if err != nil {
			return nil, fmt.Errorf("pix expense %d surcharge %q: %w", e.ID, pct, err)
		}
		e.Date, e.CreatedAt = parseDate(date), parseTS(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetPixExpense(ctx context.Context, id int64) (core.PixCreditExpense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, month_id, description, original_amount_cents, surcharge_pct, final_amount_cents, paid, date, created_at
		 FROM pix_expenses WHERE id = ?`, id)
	var (
		e             core.PixCreditExpense
		pct, date, ts string
	)
	err := row.Scan(&e.ID, &e.MonthID, &e.Description, &e.OriginalAmount.Cents, &pct,
		&e.FinalAmount.Cents, &e.Paid, &date, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return core.PixCreditExpense{}, fmt.Errorf("pix expense %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.PixCreditExpense{}, fmt.Errorf("get pix expense %d: %w", id, err)
	}
	e.SurchargePct, err = core.PercentFromString(pct)
	if err != nil {
		return core.PixCreditExpense{}, fmt.Errorf("pix expense %d surcharge %q: %w", id, pct, err)
	}
	e.Date, e.CreatedAt = parseDate(date), parseTS(ts)
	return e, nil
}

func (r *SQLiteRepository) CreatePixExpense(ctx context.Context, e core.PixCreditExpense) (core.PixCreditExpense, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO pix_expenses (month_id, description, original_amount_cents, surcharge_pct, final_amount_cents, paid, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.MonthID, e.Description, e.OriginalAmount.Cents, e.SurchargePct.String(),
		e.FinalAmount.Cents, e.Paid, e.Date.Format(dateLayout), e.CreatedAt.Format(tsLayout))
	if err != nil {
		return core.PixCreditExpense{}, fmt.Errorf("insert pix expense: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return e, nil
}

func (r *SQLiteRepository) UpdatePixExpense(ctx context.Context, e core.PixCreditExpense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pix_expenses SET description = ?, original_amount_cents = ?, surcharge_pct = ?, final_amount_cents = ?, paid = ?, date = ?
		 WHERE id = ?`,
		e.Description, e.OriginalAmount.Cents, e.SurchargePct.String(), e.FinalAmount.Cents,
		e.Paid, e.Date.Format(dateLayout), e.ID)
	if err != nil {
		return fmt.Errorf("update pix expense %d: %w", e.ID, err)
	}
	return requireRow(res, "pix expense", e.ID)
}

func (r *SQLiteRepository) DeletePixExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pix_expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pix expense %d: %w", id, err)
	}
	return requireRow(res, "pix expense", id)
}

func (r *SQLiteRepository) SetPixExpensePaid(ctx context.Context, id int64, paid bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE pix_expenses SET paid = ? WHERE id = ?`, paid, id)
	if err != nil {
		return fmt.Errorf("set pix expense %d paid: %w", id, err)
	}
	return requireRow(res, "pix expense", id)
}

// Card statement expenses

func (r *SQLiteRepository) ListCardExpenses(ctx context.Context, monthID int64) ([]core.CardStatementExpense, error) {
	return r.queryCardExpenses(ctx,
		`SELECT id, month_id, card_id, description, amount_cents, paid, date, created_at
		 FROM card_expenses WHERE month_id = ? ORDER BY date`, monthID)
}

func (r *SQLiteRepository) ListCardExpensesByCard(ctx context.Context, monthID, cardID int64) ([]core.CardStatementExpense, error) {
	return r.queryCardExpenses(ctx,
		`SELECT id, month_id, card_id, description, amount_cents, paid, date, created_at
		 FROM card_expenses WHERE month_id = ? AND card_id = ? ORDER BY date`, monthID, cardID)
}

func (r *SQLiteRepository) queryCardExpenses(ctx context.Context, query string, args ...any) ([]core.CardStatementExpense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list card expenses: %w", err)
	}
	defer rows.Close()

	var out []core.CardStatementExpense
	for rows.Next() {
		var (
			e        core.CardStatementExpense
			date, ts string
		)
		if err := rows.Scan(&e.ID, &e.MonthID, &e.CardID, &e.Description, &e.Amount.Cents, &e.Paid, &date, &ts); err != nil {
			return nil, fmt.Errorf("scan card expense: %w", err)
		}
		e.Date, e.CreatedAt = parseDate(date), parseTS(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateCardExpense(ctx context.Context, e core.CardStatementExpense) (core.CardStatementExpense, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO card_expenses (month_id, card_id, description, amount_cents, paid, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.MonthID, e.CardID, e.Description, e.Amount.Cents, e.Paid, e.Date.Format(dateLayout), e.CreatedAt.Format(tsLayout))
	if err != nil {
		return core.CardStatementExpense{}, fmt.Errorf("insert card expense: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return e, nil
}

func (r *SQLiteRepository) UpdateCardExpense(ctx context.Context, e core.CardStatementExpense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE card_expenses SET description = ?, amount_cents = ?, paid = ?, date = ? WHERE id = ?`,
		e.Description, e.Amount.Cents, e.Paid, e.Date.Format(dateLayout), e.ID)
	if err != nil {
		return fmt.Errorf("update card expense %d: %w", e.ID, err)
	}
	return requireRow(res, "card expense", e.ID)
}

func (r *SQLiteRepository) DeleteCardExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM card_expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete card expense %d: %w", id, err)
	}
	return requireRow(res, "card expense", id)
}

func (r *SQLiteRepository) SetCardExpensePaid(ctx context.Context, id int64, paid bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE card_expenses SET paid = ? WHERE id = ?`, paid, id)
	if err != nil {
		return fmt.Errorf("set card expense %d paid: %w", id, err)
	}
	return requireRow(res, "card expense", id)
}

// Installment plans

func (r *SQLiteRepository) ListInstallments(ctx context.Context, monthID int64) ([]core.InstallmentPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, month_id, description, installment_amount_cents, current_installment, total_installments, created_at
		 FROM installment_plans WHERE month_id = ? ORDER BY created_at DESC`, monthID)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()

	var out []core.InstallmentPlan
	for rows.Next() {
		var (
			p  core.InstallmentPlan
			ts string
		)
		if err := rows.Scan(&p.ID, &p.MonthID, &p.Description, &p.InstallmentAmount.Cents, &p.Current, &p.Total, &ts); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		p.CreatedAt = parseTS(ts)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateInstallment(ctx context.Context, p core.InstallmentPlan) (core.InstallmentPlan, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO installment_plans (month_id, description, installment_amount_cents, current_installment, total_installments, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.MonthID, p.Description, p.InstallmentAmount.Cents, p.Current, p.Total, p.CreatedAt.Format(tsLayout))
	if err != nil {
		return core.InstallmentPlan{}, fmt.Errorf("insert installment: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	return p, nil
}

func (r *SQLiteRepository) UpdateInstallment(ctx context.Context, p core.InstallmentPlan) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE installment_plans SET description = ?, installment_amount_cents = ?, current_installment = ?, total_installments = ?
		 WHERE id = ?`,
		p.Description, p.InstallmentAmount.Cents, p.Current, p.Total, p.ID)
	if err != nil {
		return fmt.Errorf("update installment %d: %w", p.ID, err)
	}
	return requireRow(res, "installment", p.ID)
}

func (r *SQLiteRepository) DeleteInstallment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM installment_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete installment %d: %w", id, err)
	}
	return requireRow(res, "installment", id)
}

// Cards

func (r *SQLiteRepository) ListCards(ctx context.Context) ([]core.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, aggregate_only FROM cards ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var out []core.Card
	for rows.Next() {
		var c core.Card
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.AggregateOnly); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetCard(ctx context.Context, id int64) (core.Card, error) {
	var c core.Card
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, color, aggregate_only FROM cards WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Color, &c.AggregateOnly)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Card{}, fmt.Errorf("card %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Card{}, fmt.Errorf("get card %d: %w", id, err)
	}
	return c, nil
}

func (r *SQLiteRepository) CreateCard(ctx context.Context, c core.Card) (core.Card, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (name, color, aggregate_only) VALUES (?, ?, ?)`,
		c.Name, c.Color, c.AggregateOnly)
	if err != nil {
		return core.Card{}, fmt.Errorf("insert card: %w", err)
	}
	c.ID, _ = res.LastInsertId()
	return c, nil
}

func (r *SQLiteRepository) DeleteCard(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("card %d: %w", id, core.ErrCardInUse)
		}
		return fmt.Errorf("delete card %d: %w", id, err)
	}
	return requireRow(res, "card", id)
}

// Settings

func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %q: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// helpers

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMonth(row rowScanner) (core.Month, error) {
	var (
		m       core.Month
		status  string
		balance sql.NullInt64
		ts      string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Year, &status, &balance, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Month{}, err
		}
		return core.Month{}, fmt.Errorf("scan month: %w", err)
	}
	m.Status = core.MonthStatus(status)
	if balance.Valid {
		m.FinalBalance = &core.Money{Cents: balance.Int64}
	}
	m.CreatedAt = parseTS(ts)
	return m, nil
}

func nullCents(m *core.Money) any {
	if m == nil {
		return nil
	}
	return m.Cents
}

func requireRow(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d rows affected: %w", entity, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, core.ErrNotFound)
	}
	return nil
}

func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseTS(s string) time.Time {
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func isStatusCheckViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "CHECK constraint failed") && strings.Contains(msg, "status")
}

func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
