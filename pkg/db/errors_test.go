package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationPgx(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}

	if !IsUniqueViolation(err, "") {
		t.Fatal("expected unique violation without constraint filter")
	}
	if !IsUniqueViolation(err, "users_username_key") {
		t.Fatal("expected unique violation with matching constraint")
	}
	if IsUniqueViolation(err, "users_email_key") {
		t.Fatal("expected mismatch for different constraint")
	}
}

func TestIsUniqueViolationPgxOtherCode(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "orders_user_id_fkey"}
	if IsUniqueViolation(err, "") {
		t.Fatal("foreign key violation must not count as unique violation")
	}
}

func TestIsUniqueViolationSQLite(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: shop_reviews.shop_id, shop_reviews.user_id")

	if !IsUniqueViolation(err, "") {
		t.Fatal("expected sqlite unique violation detected")
	}
	if !IsUniqueViolation(err, "shop_reviews") {
		t.Fatal("expected sqlite unique violation with table filter")
	}
}

func TestIsUniqueViolationWrapped(t *testing.T) {
	inner := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	err := fmt.Errorf("create user: %w", inner)

	if !IsUniqueViolation(err, "users_email_key") {
		t.Fatal("expected wrapped pg error detected")
	}
}

func TestIsUniqueViolationNil(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error is not a violation")
	}
}
