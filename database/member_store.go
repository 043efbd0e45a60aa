package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"member-profile/models"

	"github.com/jmoiron/sqlx"
)

// ErrMemberNotFound is returned when no row matches a lookup.
var ErrMemberNotFound = errors.New("member not found")

const memberColumns = "iid, nm, birth, blood, phone, email, idno, pwd"

// Querier is satisfied by *sqlx.DB, *sqlx.Tx and *sqlx.Conn.
type Querier interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// MemberStore reads and writes the member table over a single handle.
type MemberStore struct {
	q Querier
}

func NewMemberStore(q Querier) *MemberStore {
	return &MemberStore{q: q}
}

// FindByName returns the member with the given display name. Duplicate names
// resolve to the lowest iid.
func (s *MemberStore) FindByName(ctx context.Context, name string) (*models.Member, error) {
	var m models.Member
	query := "SELECT " + memberColumns + " FROM member WHERE nm = ? ORDER BY iid LIMIT 1"
	if err := sqlx.GetContext(ctx, s.q, &m, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to query member by name: %w", err)
	}
	return &m, nil
}

// FindByCredentials matches login id and password exactly. The password is
// compared as plaintext.
func (s *MemberStore) FindByCredentials(ctx context.Context, idno, pwd string) (*models.Member, error) {
	var m models.Member
	query := "SELECT " + memberColumns + " FROM member WHERE idno = ? AND pwd = ? ORDER BY iid LIMIT 1"
	if err := sqlx.GetContext(ctx, s.q, &m, query, idno, pwd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to query member by credentials: %w", err)
	}
	return &m, nil
}

// Update overwrites all mutable columns of the row identified by iid.
// Zero matched rows is not an error.
func (s *MemberStore) Update(ctx context.Context, iid int64, f models.MemberFields) error {
	_, err := s.q.ExecContext(ctx,
		"UPDATE member SET nm = ?, birth = ?, blood = ?, phone = ?, email = ?, idno = ?, pwd = ? WHERE iid = ?",
		f.Name, f.Birth, f.Blood, f.Phone, f.Email, f.IDNo, f.Pwd, iid)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return nil
}

// Create inserts a member and returns its iid.
func (s *MemberStore) Create(ctx context.Context, f models.MemberFields) (int64, error) {
	result, err := s.q.ExecContext(ctx,
		"INSERT INTO member (nm, birth, blood, phone, email, idno, pwd) VALUES (?, ?, ?, ?, ?, ?, ?)",
		f.Name, f.Birth, f.Blood, f.Phone, f.Email, f.IDNo, f.Pwd)
	if err != nil {
		return 0, fmt.Errorf("failed to insert member: %w", err)
	}
	iid, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read member id: %w", err)
	}
	return iid, nil
}
