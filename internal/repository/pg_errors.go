package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes of the integrity violations the repositories translate
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// violatesConstraint reports whether err is a Postgres error carrying code on a
// constraint whose name contains fragment. Names are compared case-insensitively.
func violatesConstraint(err error, code, fragment string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(fragment))
}

func isDuplicateKeyError(err error, constraintFragment string) bool {
	return violatesConstraint(err, uniqueViolation, constraintFragment)
}

// constraintRule maps violations of matching constraints onto a domain error
type constraintRule struct {
	code     string
	fragment string
	err      error
}

// translate returns the domain error of the first matching rule, or err unchanged
func translate(err error, rules []constraintRule) error {
	for _, rule := range rules {
		if violatesConstraint(err, rule.code, rule.fragment) {
			return rule.err
		}
	}
	return err
}
