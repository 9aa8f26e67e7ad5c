package db

import "errors"

// ErrNotFound — запись по id не нашлась (ни активная, ни удалённая).
var ErrNotFound = errors.New("запись не найдена")

// ValidationError — нарушение бизнес-правила; текст показывается
// пользователю как есть.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
