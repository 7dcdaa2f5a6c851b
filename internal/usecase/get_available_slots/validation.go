package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxHorizonDays, maxSlots int) error {
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	if req.HorizonDays < 0 || req.HorizonDays > maxHorizonDays {
		return fmt.Errorf("%w: horizonDays must be between 0 and %d", ErrInvalidInput, maxHorizonDays)
	}

	if req.Limit < 0 || req.Limit > maxSlots {
		return fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidInput, maxSlots)
	}

	return nil
}
