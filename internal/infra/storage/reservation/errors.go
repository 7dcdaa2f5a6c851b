package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrStateChanged возвращается, когда состояние бронирования изменилось с момента чтения
	ErrStateChanged = errors.New("reservation.repository: reservation state changed concurrently")

	// ErrLockSpace возвращается, когда не удалось захватить блокировку пространства
	ErrLockSpace = errors.New("reservation.repository: failed to lock space")

	// ErrSnapshot возвращается при ошибке сериализации снимка правил
	ErrSnapshot = errors.New("reservation.repository: invalid policy snapshot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
