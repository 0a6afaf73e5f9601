package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies a business error. The HTTP boundary maps each kind to a
// status code; the core never looks at status codes.
type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindForbidden
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

type BusinessError struct {
	Kind Kind
	Code string

	// concealed marks tenant boundary violations. They are Forbidden inside
	// the core but must look exactly like NotFound to the caller.
	concealed bool
}

func (e BusinessError) Error() string {
	return e.Code
}

func (e BusinessError) Concealed() bool {
	return e.concealed
}

// ErrBusiness mantém a assinatura antiga: regra de negócio violada = validação.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrForbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

// ErrConcealed reports an entity that exists but belongs to another tenant
// (or another customer). The code is the same one used for "not found".
func ErrConcealed(entity string) error {
	return BusinessError{Kind: KindForbidden, Code: entity + "_not_found", concealed: true}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrUnauthorized(code string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf returns 0 for errors that are not business errors.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}

const sqlStateExclusionViolation = "23P01"

// IsExclusionConflict detecta violação da constraint de sobreposição
// (EXCLUDE USING gist) do Postgres.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateExclusionViolation
	}
	return false
}
