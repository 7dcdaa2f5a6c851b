package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	SpaceID     int64 // ID пространства
	HorizonDays int   // Горизонт перебора для правил без ограничения; 0 - значение из конфигурации
	Limit       int   // Максимум слотов в ответе; 0 - значение из конфигурации
}

// Response модель ответа со списком доступных слотов
type Response struct {
	SpaceID      int64
	UsesDefaults bool // У пространства нет своих правил, применены значения по умолчанию
	StayUnit     string
	Slots        []Slot
	GeneratedAt  time.Time
}

// Slot модель свободного окна
type Slot struct {
	Start time.Time
	End   time.Time
	Units int // Часы или ночи, в зависимости от StayUnit
}
