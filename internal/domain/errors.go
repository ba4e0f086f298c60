package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "não encontrado"
	}
	return fmt.Sprintf("%s não encontrado", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("%s inválido", e.Field)
	}
	return "dados inválidos"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("conflito em %s", e.Resource)
	default:
		return "conflito"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// DependencyError blocks destructive operations while dependent rows
// (vendas, registros, viagens, caixas) still reference the target.
type DependencyError struct {
	Resource string
	Msg      string
	Err      error
}

func (e DependencyError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Resource != "" {
		return fmt.Sprintf("%s possui registros vinculados e não pode ser excluído", e.Resource)
	}
	return "registro possui vínculos e não pode ser excluído"
}

func (e DependencyError) Unwrap() error { return e.Err }

type AuthorizationError struct {
	Msg string
	Err error
}

func (e AuthorizationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "acesso negado"
}

func (e AuthorizationError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "erro interno"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsDependency(err error) bool {
	var target DependencyError
	return errors.As(err, &target)
}

func IsAuthorization(err error) bool {
	var target AuthorizationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
