package policy

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда пространство не найдено
	ErrSpaceNotFound = errors.New("policy.service: space not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец пространства
	ErrAccessDenied = errors.New("policy.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных (формат, бизнес-лимиты)
	ErrInvalidInput = errors.New("policy.service: invalid input data")

	// ErrInvalidPolicy возвращается, когда правила не проходят проверку согласованности.
	// Причины доступны через engine.ValidationReasons.
	ErrInvalidPolicy = errors.New("policy.service: invalid policy")

	// ErrPolicyNotFound возвращается при сбросе правил, которые не были сохранены
	ErrPolicyNotFound = errors.New("policy.service: policy not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("policy.service: internal error")
)
