package review_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("review_reservation: reservation not found")

	// ErrForbidden возвращается, когда пользователь не владелец пространства
	ErrForbidden = errors.New("review_reservation: only space owners can review reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("review_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("review_reservation: internal error")
)
